package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"schedparse/app"
	"schedparse/domain/core"
	apperrors "schedparse/internal/errors"
)

// App is the HTTP surface over the parse service.
type App struct {
	router       *chi.Mux
	parseService *app.ParseService
	maxFileBytes int64
}

// NewApp builds the router and wires all routes.
func NewApp(parseService *app.ParseService, maxFileBytes int64) *App {
	a := &App{
		router:       chi.NewRouter(),
		parseService: parseService,
		maxFileBytes: maxFileBytes,
	}
	a.setupMiddleware()
	a.setupRoutes()
	return a
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/healthz", a.handleHealth)

	a.router.Post("/api/schedules/parse", a.handleParseUpload)
	a.router.Get("/api/runs", a.handleListRuns)
	a.router.Get("/api/runs/{id}", a.handleGetRun)
	a.router.Delete("/api/runs/{id}", a.handleDeleteRun)
}

// Router exposes the handler for serving and for tests.
func (a *App) Router() http.Handler {
	return a.router
}

// Start starts the HTTP server
func (a *App) Start(addr string) error {
	log.Printf("[API] listening on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[API] encode response: %v", err)
	}
}

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// writeError maps domain errors onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := "internal"

	switch {
	case errors.Is(err, core.ErrParseRunNotFound), core.IsNotFoundError(err):
		status = http.StatusNotFound
		code = "not_found"
	case errors.Is(err, core.ErrEmptyFile),
		errors.Is(err, core.ErrInvalidFormat),
		errors.Is(err, core.ErrEncrypted):
		status = http.StatusUnprocessableEntity
		code = "unreadable_workbook"
	case errors.Is(err, core.ErrRepositoryUnavailable):
		status = http.StatusServiceUnavailable
		code = "no_persistence"
	case apperrors.Code(err) == "UPLOAD_INVALID":
		status = http.StatusBadRequest
		code = "invalid_upload"
	}

	writeJSON(w, status, errorResponse{Error: code, Detail: err.Error()})
}
