package controller

import (
	"cafeapi/database"
	"cafeapi/model"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CafeController struct {
	cafes  database.CafeRepository
	policy StatusPolicy
}

func NewCafeController(cafes database.CafeRepository, policy StatusPolicy) *CafeController {
	return &CafeController{cafes: cafes, policy: policy}
}

func (h *CafeController) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", nil)
}

func (h *CafeController) RandomCafe(c *gin.Context) {
	cafe, err := h.cafes.Random(c.Request.Context())
	if err != nil {
		if errors.Is(err, database.ErrCafeNotFound) {
			h.policy.fail(c, kindNotFound, msgNoCafes)
			return
		}
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cafe": CafeResponse(*cafe)})
}

func (h *CafeController) AllCafes(c *gin.Context) {
	cafes, err := h.cafes.GetAll(c.Request.Context())
	if err != nil {
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"all_cafes": cafesByName(cafes)})
}

func (h *CafeController) SearchCafes(c *gin.Context) {
	location, ok := c.GetQuery("loc")
	if !ok {
		h.policy.fail(c, kindEmpty, msgNoCafeAtLocation)
		return
	}

	cafes, err := h.cafes.GetByLocation(c.Request.Context(), location)
	if err != nil {
		h.internalError(c, err)
		return
	}
	if len(cafes) == 0 {
		h.policy.fail(c, kindEmpty, msgNoCafeAtLocation)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cafes": cafesByName(cafes)})
}

type cafeInput struct {
	Name         string  `form:"name" json:"name" binding:"required"`
	MapURL       string  `form:"map_url" json:"map_url" binding:"required"`
	ImgURL       string  `form:"img_url" json:"img_url" binding:"required"`
	Location     string  `form:"loc" json:"loc" binding:"required"`
	Seats        string  `form:"seats" json:"seats" binding:"required"`
	HasToilet    bool    `form:"has_toilet" json:"has_toilet"`
	HasWifi      bool    `form:"has_wifi" json:"has_wifi"`
	HasSockets   bool    `form:"has_sockets" json:"has_sockets"`
	CanTakeCalls bool    `form:"can_take_calls" json:"can_take_calls"`
	CoffeePrice  *string `form:"coffee_price" json:"coffee_price"`
}

func (in cafeInput) toModel() model.Cafe {
	return model.Cafe{
		Name:         in.Name,
		MapURL:       in.MapURL,
		ImgURL:       in.ImgURL,
		Location:     in.Location,
		Seats:        in.Seats,
		HasToilet:    in.HasToilet,
		HasWifi:      in.HasWifi,
		HasSockets:   in.HasSockets,
		CanTakeCalls: in.CanTakeCalls,
		CoffeePrice:  in.CoffeePrice,
	}
}

func (h *CafeController) AddCafe(c *gin.Context) {
	var input cafeInput
	if err := c.ShouldBind(&input); err != nil {
		h.policy.fail(c, kindInvalid, "Invalid cafe: "+err.Error())
		return
	}

	cafe := input.toModel()
	if err := h.cafes.Insert(c.Request.Context(), &cafe); err != nil {
		if errors.Is(err, database.ErrDuplicateCafe) {
			h.policy.fail(c, kindConflict, msgDuplicateCafe)
			return
		}
		h.internalError(c, err)
		return
	}

	success(c, "Successfully added the new cafe.")
}

func (h *CafeController) UpdatePrice(c *gin.Context) {
	id, ok := parseCafeID(c)
	if !ok {
		h.policy.fail(c, kindNotFound, msgCafeNotFound)
		return
	}

	var price *string
	if p, exists := c.GetQuery("new_price"); exists {
		price = &p
	}

	if err := h.cafes.UpdatePrice(c.Request.Context(), id, price); err != nil {
		if errors.Is(err, database.ErrCafeNotFound) {
			h.policy.fail(c, kindNotFound, msgCafeNotFound)
			return
		}
		h.internalError(c, err)
		return
	}

	success(c, "Successfully updated the price.")
}

// ReportClosed deletes a cafe. The moderator credential is checked by
// middleware before this runs.
func (h *CafeController) ReportClosed(c *gin.Context) {
	id, ok := parseCafeID(c)
	if !ok {
		h.policy.fail(c, kindNotFound, msgCafeNotFound)
		return
	}

	if err := h.cafes.DeleteByID(c.Request.Context(), id); err != nil {
		if errors.Is(err, database.ErrCafeNotFound) {
			h.policy.fail(c, kindNotFound, msgCafeNotFound)
			return
		}
		h.internalError(c, err)
		return
	}

	log.Printf("Cafe %d reported closed and deleted (auth: %s)", id, c.GetString("auth_method"))
	success(c, "Successfully deleted the specified cafe.")
}

func (h *CafeController) internalError(c *gin.Context, err error) {
	log.Printf("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
	h.policy.fail(c, kindInternal, "Something went wrong, please try again later.")
}

func parseCafeID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
