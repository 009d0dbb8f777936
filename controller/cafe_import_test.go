package controller

import (
	"bytes"
	"cafeapi/database"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/xuri/excelize/v2"
)

var importHeader = []string{"name", "map_url", "img_url", "location", "seats", "has_toilet", "has_wifi", "has_sockets", "can_take_calls", "coffee_price"}

func TestParseCafeRows(t *testing.T) {
	rows := [][]string{
		importHeader,
		{"Joe's", "m", "i", "Downtown", "10", "yes", "1", "", "TRUE", "£2.40"},
		{"Short", "m", "i"},
		{"", "m", "i", "Downtown", "10"},
		{"Bad Flag", "m", "i", "Downtown", "10", "maybe"},
		{"Joe's", "m", "i", "Elsewhere", "5"},
		{" Minimal ", "m", "i", "Peckham", "20-30"},
	}

	cafes, skipped := parseCafeRows(rows)
	if len(cafes) != 2 {
		t.Fatalf("expected 2 cafes, got %d: %+v", len(cafes), cafes)
	}
	wantSkipped := []int{3, 4, 5, 6}
	if len(skipped) != len(wantSkipped) {
		t.Fatalf("expected skipped %v, got %v", wantSkipped, skipped)
	}
	for i := range wantSkipped {
		if skipped[i] != wantSkipped[i] {
			t.Fatalf("expected skipped %v, got %v", wantSkipped, skipped)
		}
	}

	joes := cafes[0]
	if !joes.HasToilet || !joes.HasWifi || joes.HasSockets || !joes.CanTakeCalls {
		t.Fatalf("unexpected flags: %+v", joes)
	}
	if joes.CoffeePrice == nil || *joes.CoffeePrice != "£2.40" {
		t.Fatalf("unexpected price: %v", joes.CoffeePrice)
	}

	minimal := cafes[1]
	if minimal.Name != "Minimal" || minimal.CoffeePrice != nil || minimal.HasWifi {
		t.Fatalf("unexpected minimal cafe: %+v", minimal)
	}
}

func workbook(t *testing.T, rows [][]string) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow("Sheet1", cellName, &values); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf
}

func multipartUpload(t *testing.T, field string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	if field != "" {
		part, err := w.CreateFormFile(field, "cafes.xlsx")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	return body, w.FormDataContentType()
}

func TestBulkAddCafes(t *testing.T) {
	repo := &fakeRepository{}
	router := newTestRouter(repo, StatusPolicy{})

	xlsx := workbook(t, [][]string{
		importHeader,
		{"Joe's", "m", "i", "Downtown", "10", "yes", "yes", "no", "no", "£2.40"},
		{"Broken"},
		{"Bean There", "m", "i", "Peckham", "20"},
	})
	body, contentType := multipartUpload(t, "file", xlsx.Bytes())

	status, payload := doRequest(t, router, http.MethodPost, "/add/excel", body, contentType)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, payload)
	}
	resp, _ := payload["response"].(map[string]any)
	if resp["success"] != "Successfully added 2 cafes." {
		t.Fatalf("unexpected payload: %v", payload)
	}
	skipped, _ := payload["skipped"].([]any)
	if len(skipped) != 1 || skipped[0] != float64(3) {
		t.Fatalf("expected row 3 skipped, got %v", payload["skipped"])
	}
	if len(repo.inserted) != 2 || repo.inserted[1].Name != "Bean There" {
		t.Fatalf("unexpected inserted cafes: %+v", repo.inserted)
	}
}

func TestBulkAddCafesRejected(t *testing.T) {
	headerOnly := workbook(t, [][]string{importHeader})
	noValid := workbook(t, [][]string{importHeader, {"Broken"}})

	tests := []struct {
		name    string
		field   string
		content []byte
		label   string
	}{
		{"missing file", "", nil, "Bad Request"},
		{"not a workbook", "file", []byte("name,loc\n"), "Bad Request"},
		{"header only", "file", headerOnly.Bytes(), "Bad Request"},
		{"no valid rows", "file", noValid.Bytes(), "Bad Request"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepository{}
			router := newTestRouter(repo, StatusPolicy{Strict: true})
			body, contentType := multipartUpload(t, tt.field, tt.content)

			status, payload := doRequest(t, router, http.MethodPost, "/add/excel", body, contentType)
			if status != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", status)
			}
			if errorLabel(payload, tt.label) == "" {
				t.Fatalf("unexpected payload: %v", payload)
			}
			if repo.insertCalls != 0 {
				t.Fatal("rejected upload must not reach storage")
			}
		})
	}
}

func TestBulkAddCafesDuplicate(t *testing.T) {
	repo := &fakeRepository{err: database.ErrDuplicateCafe}
	router := newTestRouter(repo, StatusPolicy{Strict: true})

	xlsx := workbook(t, [][]string{importHeader, {"Joe's", "m", "i", "Downtown", "10"}})
	body, contentType := multipartUpload(t, "file", xlsx.Bytes())

	status, payload := doRequest(t, router, http.MethodPost, "/add/excel", body, contentType)
	if status != http.StatusConflict {
		t.Fatalf("expected 409, got %d", status)
	}
	if errorLabel(payload, "Conflict") != msgDuplicateCafe {
		t.Fatalf("unexpected payload: %v", payload)
	}
}
