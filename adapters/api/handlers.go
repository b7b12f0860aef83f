package api

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"schedparse/adapters/excel"
	"schedparse/domain/core"
	"schedparse/domain/schedule"
	apperrors "schedparse/internal/errors"
	"schedparse/ports"
)

// parseResponse is the payload returned for a successful upload.
type parseResponse struct {
	RunID        string             `json:"run_id,omitempty"`
	ScheduleName string             `json:"schedule_name"`
	ProductCount int                `json:"product_count"`
	Products     []schedule.Product `json:"products"`
}

// handleParseUpload accepts a multipart workbook upload and returns the
// extracted products.
func (a *App) handleParseUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.maxFileBytes)

	file, header, err := r.FormFile("schedule")
	if err != nil {
		writeError(w, apperrors.UploadInvalid("missing schedule file field"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, apperrors.UploadInvalid(fmt.Sprintf("read upload: %v", err)))
		return
	}

	wb, err := excel.LoadWorkbook(data)
	if err != nil {
		writeError(w, err)
		return
	}
	defer wb.Close()

	scheduleName := excel.ScheduleName(wb, header.Filename)
	log.Printf("[API] parsing %q (%d bytes)", header.Filename, len(data))

	result, run, err := a.parseService.ParseAndStore(r.Context(), wb, scheduleName, header.Filename)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := parseResponse{
		ScheduleName: result.ScheduleName,
		ProductCount: len(result.Products),
		Products:     result.Products,
	}
	if run != nil {
		resp.RunID = run.ID.String()
	}
	writeJSON(w, http.StatusOK, resp)
}

// runSummary omits the full product list when listing runs.
type runSummary struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	ScheduleName string `json:"schedule_name"`
	ProductCount int    `json:"product_count"`
	CreatedAt    string `json:"created_at"`
}

func toRunSummary(run *ports.ParseRun) runSummary {
	return runSummary{
		ID:           run.ID.String(),
		Filename:     run.Filename,
		ScheduleName: run.ScheduleName,
		ProductCount: run.ProductCount,
		CreatedAt:    run.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func (a *App) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	runs, err := a.parseService.ListRuns(r.Context(), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}

	summaries := make([]runSummary, len(runs))
	for i, run := range runs {
		summaries[i] = toRunSummary(run)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"runs": summaries})
}

func (a *App) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseParseRunID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, core.ErrParseRunNotFound)
		return
	}

	run, err := a.parseService.GetRun(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"run":    toRunSummary(run),
		"result": run.Result,
	})
}

func (a *App) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseParseRunID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, core.ErrParseRunNotFound)
		return
	}

	if err := a.parseService.DeleteRun(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
