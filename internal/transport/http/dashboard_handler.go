package http

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "reclamos/internal/errors"
	"reclamos/internal/infrastructure"
	"reclamos/pkg/contracts/domain"
)

// datasetIDPattern matches the hex SHA-256 content address of a blob.
var datasetIDPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

const queryDateLayout = "2006-01-02"

// DashboardHandler handles dataset and dashboard HTTP requests.
type DashboardHandler struct {
	service      DashboardServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
	maxUpload    int64
}

// NewDashboardHandler creates a dashboard handler.
func NewDashboardHandler(service DashboardServiceInterface, maxUpload int64, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
		validate:     validator.New(),
		maxUpload:    maxUpload,
	}
}

// Routes returns the dataset routes.
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateDataset)
	r.Post("/source", h.LoadSource)

	r.Route("/{id}", func(r chi.Router) {
		r.Use(h.DatasetCtx)
		r.Get("/dashboard", h.GetDashboard)
		r.Get("/export", h.ExportCSV)
	})

	return r
}

// DatasetCtx middleware validates the dataset id parameter.
func (h *DashboardHandler) DatasetCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if !datasetIDPattern.MatchString(id) {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("id", "Invalid dataset id format"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CreateDataset handles POST /api/datasets: a multipart spreadsheet upload.
func (h *DashboardHandler) CreateDataset(w http.ResponseWriter, r *http.Request) {
	reqID := infrastructure.GetTraceID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("file", "Invalid multipart upload"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("file", "Missing file field"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	sheet := r.FormValue("sheet")

	h.logger.InfoContext(r.Context(), "dataset upload received",
		slog.String("request_id", reqID),
		slog.String("filename", header.Filename),
		slog.Int("bytes", len(data)))

	info, err := h.service.RegisterUpload(r.Context(), header.Filename, data, sheet)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   info,
	})
}

// sourceRequest selects a non-upload data source.
type sourceRequest struct {
	Source string `json:"source" validate:"required,oneof=bundled remote"`
	Sheet  string `json:"sheet" validate:"omitempty,max=64"`
}

// LoadSource handles POST /api/datasets/source: register the bundled file or
// the configured remote URL as a dataset.
func (h *DashboardHandler) LoadSource(w http.ResponseWriter, r *http.Request) {
	var req sourceRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("source", err.Error()))
		return
	}

	info, err := h.service.LoadSource(r.Context(), req.Source, req.Sheet)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   info,
	})
}

// GetDashboard handles GET /api/datasets/{id}/dashboard.
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	sheet, filter, err := h.parseQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	dashboard, err := h.service.Dashboard(r.Context(), id, sheet, filter)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   dashboard,
	})
}

// ExportCSV handles GET /api/datasets/{id}/export: the filtered view as a
// BOM-prefixed CSV attachment.
func (h *DashboardHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	sheet, filter, err := h.parseQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	data, filename, err := h.service.ExportCSV(r.Context(), id, sheet, filter)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// dashboardQuery carries the validated filter selection from query params.
type dashboardQuery struct {
	Sheet string `validate:"omitempty,max=64"`
	From  string `validate:"omitempty,datetime=2006-01-02"`
	To    string `validate:"omitempty,datetime=2006-01-02"`
	TopN  int    `validate:"omitempty,min=5,max=30"`
}

// parseQuery extracts sheet and filter selection from the request query.
// Repeatable params: airline, category.
func (h *DashboardHandler) parseQuery(r *http.Request) (string, domain.Filter, error) {
	q := r.URL.Query()

	query := dashboardQuery{
		Sheet: q.Get("sheet"),
		From:  q.Get("from"),
		To:    q.Get("to"),
	}
	if raw := q.Get("top_n"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return "", domain.Filter{}, apierrors.ErrValidation("top_n", "must be an integer")
		}
		query.TopN = n
	}

	if err := h.validate.Struct(query); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field := verrs[0].Field()
			return "", domain.Filter{}, apierrors.ErrValidation(field, fmt.Sprintf("invalid value for %s", field))
		}
		return "", domain.Filter{}, apierrors.ErrValidationFailed
	}

	filter := domain.Filter{
		Airlines:   q["airline"],
		Categories: q["category"],
		TopN:       query.TopN,
	}
	if query.From != "" {
		t, _ := time.Parse(queryDateLayout, query.From)
		filter.From = &t
	}
	if query.To != "" {
		t, _ := time.Parse(queryDateLayout, query.To)
		filter.To = &t
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return "", domain.Filter{}, apierrors.ErrValidation("to", "date range end precedes start")
	}

	return query.Sheet, filter, nil
}
