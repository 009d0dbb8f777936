package model

type Cafe struct {
	ID           uint    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string  `json:"name" gorm:"size:250;unique;not null"`
	MapURL       string  `json:"map_url" gorm:"size:500;not null"`
	ImgURL       string  `json:"img_url" gorm:"size:500;not null"`
	Location     string  `json:"location" gorm:"size:250;not null;index"`
	Seats        string  `json:"seats" gorm:"size:250;not null"`
	HasToilet    bool    `json:"has_toilet" gorm:"not null"`
	HasWifi      bool    `json:"has_wifi" gorm:"not null"`
	HasSockets   bool    `json:"has_sockets" gorm:"not null"`
	CanTakeCalls bool    `json:"can_take_calls" gorm:"not null"`
	CoffeePrice  *string `json:"coffee_price" gorm:"size:250"`
}

func (Cafe) TableName() string {
	return "cafe"
}
