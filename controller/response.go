package controller

import (
	"cafeapi/model"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	msgCafeNotFound     = "Sorry, a cafe with that id was not found in the database."
	msgNoCafeAtLocation = "Sorry, we don't have a cafe at that location."
	msgNoCafes          = "Sorry, we don't have any cafes in the database."
	msgDuplicateCafe    = "Sorry, a cafe with that name already exists."
)

type errorKind int

const (
	kindNotFound errorKind = iota
	kindEmpty
	kindUnauthorized
	kindInvalid
	kindConflict
	kindInternal
)

// StatusPolicy decides the HTTP status of error payloads. The compatibility
// policy answers 200 for everything but internal failures, as existing
// clients expect; the strict one uses conventional codes.
type StatusPolicy struct {
	Strict bool
}

func (p StatusPolicy) status(kind errorKind) int {
	if kind == kindInternal {
		return http.StatusInternalServerError
	}
	if !p.Strict {
		return http.StatusOK
	}
	switch kind {
	case kindNotFound, kindEmpty:
		return http.StatusNotFound
	case kindUnauthorized:
		return http.StatusForbidden
	case kindInvalid:
		return http.StatusBadRequest
	case kindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// Unauthorized is the status used for rejected moderator credentials.
func (p StatusPolicy) Unauthorized() int {
	return p.status(kindUnauthorized)
}

func (p StatusPolicy) fail(c *gin.Context, kind errorKind, message string) {
	var label string
	switch kind {
	case kindNotFound, kindEmpty:
		label = "Not Found"
	case kindInvalid:
		label = "Bad Request"
	case kindConflict:
		label = "Conflict"
	case kindUnauthorized:
		c.JSON(p.status(kind), gin.H{"error": message})
		return
	default:
		label = "Internal Server Error"
	}
	c.JSON(p.status(kind), gin.H{"error": gin.H{label: message}})
}

func success(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"response": gin.H{"success": message}})
}

// CafeResponse maps a stored cafe to its response fields. The location is
// exposed as "loc".
func CafeResponse(cafe model.Cafe) gin.H {
	var price any
	if cafe.CoffeePrice != nil {
		price = *cafe.CoffeePrice
	}
	return gin.H{
		"id":             cafe.ID,
		"name":           cafe.Name,
		"map_url":        cafe.MapURL,
		"img_url":        cafe.ImgURL,
		"loc":            cafe.Location,
		"seats":          cafe.Seats,
		"has_toilet":     cafe.HasToilet,
		"has_wifi":       cafe.HasWifi,
		"has_sockets":    cafe.HasSockets,
		"can_take_calls": cafe.CanTakeCalls,
		"coffee_price":   price,
	}
}

// cafesByName keys each cafe by its name followed by a space, the shape
// existing clients parse.
func cafesByName(cafes []model.Cafe) gin.H {
	out := make(gin.H, len(cafes))
	for _, cafe := range cafes {
		out[cafe.Name+" "] = CafeResponse(cafe)
	}
	return out
}
