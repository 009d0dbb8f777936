package controller

import (
	"cafeapi/database"
	"cafeapi/model"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const importSheet = "Sheet1"

// Sheet columns, after a header row:
// name, map_url, img_url, location, seats, has_toilet, has_wifi,
// has_sockets, can_take_calls, coffee_price
const (
	colName = iota
	colMapURL
	colImgURL
	colLocation
	colSeats
	colHasToilet
	colHasWifi
	colHasSockets
	colCanTakeCalls
	colCoffeePrice
)

func (h *CafeController) BulkAddCafes(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.policy.fail(c, kindInvalid, "Excel file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.policy.fail(c, kindInvalid, "Unable to open Excel file")
		return
	}
	defer file.Close()

	xl, err := excelize.OpenReader(file)
	if err != nil {
		h.policy.fail(c, kindInvalid, "Failed to parse Excel file")
		return
	}
	defer xl.Close()

	rows, err := xl.GetRows(importSheet)
	if err != nil || len(rows) < 2 {
		h.policy.fail(c, kindInvalid, "Excel must have at least one row of data")
		return
	}

	cafes, skipped := parseCafeRows(rows)
	if len(cafes) == 0 {
		h.policy.fail(c, kindInvalid, "No valid rows found")
		return
	}

	if err := h.cafes.InsertMany(c.Request.Context(), cafes); err != nil {
		if errors.Is(err, database.ErrDuplicateCafe) {
			h.policy.fail(c, kindConflict, msgDuplicateCafe)
			return
		}
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"response": gin.H{"success": fmt.Sprintf("Successfully added %d cafes.", len(cafes))},
		"skipped":  skipped,
	})
}

// parseCafeRows converts sheet rows (header first) into cafes. Rows that
// cannot be used are reported by their 1-based sheet row number.
func parseCafeRows(rows [][]string) ([]model.Cafe, []int) {
	cafes := []model.Cafe{}
	skipped := []int{}
	seen := map[string]bool{}

	for i, row := range rows[1:] {
		rowNum := i + 2

		if len(row) <= colSeats {
			log.Printf("Import row %d skipped: incomplete row", rowNum)
			skipped = append(skipped, rowNum)
			continue
		}

		cafe := model.Cafe{
			Name:     strings.TrimSpace(row[colName]),
			MapURL:   strings.TrimSpace(row[colMapURL]),
			ImgURL:   strings.TrimSpace(row[colImgURL]),
			Location: strings.TrimSpace(row[colLocation]),
			Seats:    strings.TrimSpace(row[colSeats]),
		}
		if cafe.Name == "" || cafe.MapURL == "" || cafe.ImgURL == "" || cafe.Location == "" || cafe.Seats == "" {
			log.Printf("Import row %d skipped: missing required field", rowNum)
			skipped = append(skipped, rowNum)
			continue
		}
		if seen[cafe.Name] {
			log.Printf("Import row %d skipped: duplicate name %q in sheet", rowNum, cafe.Name)
			skipped = append(skipped, rowNum)
			continue
		}

		flags := []*bool{&cafe.HasToilet, &cafe.HasWifi, &cafe.HasSockets, &cafe.CanTakeCalls}
		valid := true
		for j, flag := range flags {
			v, ok := sheetBool(cell(row, colHasToilet+j))
			if !ok {
				log.Printf("Import row %d skipped: invalid yes/no value %q", rowNum, cell(row, colHasToilet+j))
				valid = false
				break
			}
			*flag = v
		}
		if !valid {
			skipped = append(skipped, rowNum)
			continue
		}

		if price := strings.TrimSpace(cell(row, colCoffeePrice)); price != "" {
			cafe.CoffeePrice = &price
		}

		seen[cafe.Name] = true
		cafes = append(cafes, cafe)
	}
	return cafes, skipped
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func sheetBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "0", "false", "no", "n":
		return false, true
	case "1", "true", "yes", "y", "x":
		return true, true
	}
	return false, false
}
