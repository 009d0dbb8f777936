package database

import (
	"cafeapi/model"
	"context"
	"errors"
	"fmt"
	"math/rand"

	"gorm.io/gorm"
)

var (
	ErrCafeNotFound  = errors.New("cafe not found")
	ErrDuplicateCafe = errors.New("a cafe with that name already exists")
)

type CafeRepository interface {
	Count(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id uint) (*model.Cafe, error)
	GetAll(ctx context.Context) ([]model.Cafe, error)
	GetByLocation(ctx context.Context, location string) ([]model.Cafe, error)
	Random(ctx context.Context) (*model.Cafe, error)
	InsertBlank(ctx context.Context) (*model.Cafe, error)
	Insert(ctx context.Context, cafe *model.Cafe) error
	InsertMany(ctx context.Context, cafes []model.Cafe) error
	UpdatePrice(ctx context.Context, id uint, price *string) error
	DeleteByID(ctx context.Context, id uint) error
}

type cafeRepository struct {
	db *gorm.DB
}

func NewCafeRepository(db *gorm.DB) CafeRepository {
	return &cafeRepository{db: db}
}

func (r *cafeRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Cafe{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count cafes: %w", err)
	}
	return n, nil
}

func (r *cafeRepository) GetByID(ctx context.Context, id uint) (*model.Cafe, error) {
	return getByID(r.db.WithContext(ctx), id)
}

func getByID(tx *gorm.DB, id uint) (*model.Cafe, error) {
	var cafe model.Cafe
	if err := tx.First(&cafe, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCafeNotFound
		}
		return nil, fmt.Errorf("get cafe %d: %w", id, err)
	}
	return &cafe, nil
}

func (r *cafeRepository) GetAll(ctx context.Context) ([]model.Cafe, error) {
	var cafes []model.Cafe
	if err := r.db.WithContext(ctx).Order("id").Find(&cafes).Error; err != nil {
		return nil, fmt.Errorf("list cafes: %w", err)
	}
	return cafes, nil
}

func (r *cafeRepository) GetByLocation(ctx context.Context, location string) ([]model.Cafe, error) {
	var cafes []model.Cafe
	if err := r.db.WithContext(ctx).Where("location = ?", location).Order("id").Find(&cafes).Error; err != nil {
		return nil, fmt.Errorf("list cafes at %q: %w", location, err)
	}
	return cafes, nil
}

// Random picks uniformly among the ids that currently exist, so gaps left
// by deletions are never selected.
func (r *cafeRepository) Random(ctx context.Context) (*model.Cafe, error) {
	var cafe *model.Cafe
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uint
		if err := tx.Model(&model.Cafe{}).Pluck("id", &ids).Error; err != nil {
			return fmt.Errorf("list cafe ids: %w", err)
		}
		if len(ids) == 0 {
			return ErrCafeNotFound
		}

		found, err := getByID(tx, ids[rand.Intn(len(ids))])
		if err != nil {
			return err
		}
		cafe = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cafe, nil
}

func (r *cafeRepository) InsertBlank(ctx context.Context) (*model.Cafe, error) {
	cafe := &model.Cafe{}
	if err := r.Insert(ctx, cafe); err != nil {
		return nil, err
	}
	return cafe, nil
}

func (r *cafeRepository) Insert(ctx context.Context, cafe *model.Cafe) error {
	cafe.ID = 0
	if err := r.db.WithContext(ctx).Create(cafe).Error; err != nil {
		return translateWriteError("insert cafe", err)
	}
	return nil
}

func (r *cafeRepository) InsertMany(ctx context.Context, cafes []model.Cafe) error {
	if len(cafes) == 0 {
		return nil
	}
	for i := range cafes {
		cafes[i].ID = 0
	}

	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("begin transaction: %w", tx.Error)
	}
	if err := tx.Create(&cafes).Error; err != nil {
		tx.Rollback()
		return translateWriteError("insert cafes", err)
	}
	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("commit cafes: %w", err)
	}
	return nil
}

func (r *cafeRepository) UpdatePrice(ctx context.Context, id uint, price *string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cafe, err := getByID(tx, id)
		if err != nil {
			return err
		}
		var value any
		if price != nil {
			value = *price
		}
		if err := tx.Model(cafe).Update("coffee_price", value).Error; err != nil {
			return fmt.Errorf("update price of cafe %d: %w", id, err)
		}
		return nil
	})
}

func (r *cafeRepository) DeleteByID(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Cafe{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete cafe %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCafeNotFound
	}
	return nil
}

func translateWriteError(op string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateCafe
	}
	return fmt.Errorf("%s: %w", op, err)
}
