package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"schedparse/app"
	"schedparse/domain/core"
	"schedparse/internal/config"
	"schedparse/internal/extract"
	"schedparse/internal/testkit"
	"schedparse/ports"
)

type fakeRepo struct {
	created []*ports.ParseRun
}

func (f *fakeRepo) Create(ctx context.Context, run *ports.ParseRun) error {
	f.created = append(f.created, run)
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id core.ParseRunID) (*ports.ParseRun, error) {
	for _, run := range f.created {
		if run.ID == id {
			return run, nil
		}
	}
	return nil, core.ErrParseRunNotFound
}

func (f *fakeRepo) List(ctx context.Context, limit, offset int) ([]*ports.ParseRun, error) {
	return f.created, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id core.ParseRunID) error {
	for i, run := range f.created {
		if run.ID == id {
			f.created = append(f.created[:i], f.created[i+1:]...)
			return nil
		}
	}
	return core.ErrParseRunNotFound
}

func newTestApp(repo ports.ScheduleRepository) *App {
	parser := extract.NewParser(nil, extract.Options{})
	svc := app.NewParseService(parser, nil, repo, config.EnhancerConfig{Mode: config.EnhancerModeFallback})
	return NewApp(svc, 10<<20)
}

// scheduleWorkbookBytes builds a minimal real workbook with a title row,
// a header row and one product row.
func scheduleWorkbookBytes(t *testing.T) []byte {
	sheet := testkit.NewSheet("Finishes").
		Row(1, "Ground Floor Finishes Schedule").
		Row(2, "Spec Code", "Item & Location", "Specifications", "Qty").
		Row(3, "FCA-01", "Lounge Floor", "PRODUCT: ICONIC\nCOLOUR: SILVER SHADOW", "1")
	return testkit.XLSXBytes(t, sheet)
}

func multipartUpload(t *testing.T, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("schedule", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	writer.Close()
	return body, writer.FormDataContentType()
}

// TestHealth tests the liveness endpoint.
func TestHealth(t *testing.T) {
	app := newTestApp(nil)

	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

// TestParseUpload tests the upload endpoint end to end with a real
// workbook and a repository.
func TestParseUpload(t *testing.T) {
	repo := &fakeRepo{}
	app := newTestApp(repo)

	body, contentType := multipartUpload(t, "ground_floor.xlsx", scheduleWorkbookBytes(t))
	req := httptest.NewRequest(http.MethodPost, "/api/schedules/parse", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp parseResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ScheduleName != "Ground Floor Finishes Schedule" {
		t.Errorf("unexpected schedule name: %q", resp.ScheduleName)
	}
	if resp.ProductCount != 1 {
		t.Fatalf("expected 1 product, got %d", resp.ProductCount)
	}
	product := resp.Products[0]
	if product.DocCode == nil || *product.DocCode != "FCA-01" {
		t.Errorf("unexpected doc_code: %v", product.DocCode)
	}
	if product.Colour == nil || *product.Colour != "SILVER SHADOW" {
		t.Errorf("unexpected colour: %v", product.Colour)
	}
	if resp.RunID == "" {
		t.Error("expected a run ID with repository configured")
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected 1 stored run, got %d", len(repo.created))
	}
}

// TestParseUploadMissingFile tests the missing form field case.
func TestParseUploadMissingFile(t *testing.T) {
	app := newTestApp(nil)

	body, contentType := multipartUpload(t, "ignored.txt", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/api/schedules/parse", body)
	// wrong content type: plain body, no multipart boundary
	_ = contentType
	req.Header.Set("Content-Type", "application/octet-stream")

	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

// TestParseUploadBadWorkbook tests that junk bytes are rejected with 422.
func TestParseUploadBadWorkbook(t *testing.T) {
	app := newTestApp(nil)

	junk := bytes.Repeat([]byte("not a spreadsheet "), 32)
	body, contentType := multipartUpload(t, "junk.xlsx", junk)
	req := httptest.NewRequest(http.MethodPost, "/api/schedules/parse", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
}

// TestRunLifecycle tests list, get and delete over a stored run.
func TestRunLifecycle(t *testing.T) {
	repo := &fakeRepo{}
	app := newTestApp(repo)

	body, contentType := multipartUpload(t, "ground_floor.xlsx", scheduleWorkbookBytes(t))
	req := httptest.NewRequest(http.MethodPost, "/api/schedules/parse", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("upload failed: %d", rec.Code)
	}
	var resp parseResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	rec = httptest.NewRecorder()
	app.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list failed: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	app.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs/"+resp.RunID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get failed: %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	app.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/runs/"+resp.RunID, nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete failed: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	app.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs/"+resp.RunID, nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

// TestRunsWithoutRepository tests that run endpoints degrade cleanly when
// persistence is not configured.
func TestRunsWithoutRepository(t *testing.T) {
	app := newTestApp(nil)

	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}
