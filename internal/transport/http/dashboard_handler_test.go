package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "reclamos/internal/errors"
	"reclamos/internal/services"
	"reclamos/pkg/contracts/domain"
)

const testDatasetID = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"

// fakeService lets each test script the service layer.
type fakeService struct {
	registerUpload func(ctx context.Context, filename string, data []byte, sheet string) (*services.DatasetInfo, error)
	loadSource     func(ctx context.Context, source, sheet string) (*services.DatasetInfo, error)
	dashboard      func(ctx context.Context, datasetID, sheet string, f domain.Filter) (*domain.Dashboard, error)
	exportCSV      func(ctx context.Context, datasetID, sheet string, f domain.Filter) ([]byte, string, error)
}

func (s *fakeService) RegisterUpload(ctx context.Context, filename string, data []byte, sheet string) (*services.DatasetInfo, error) {
	return s.registerUpload(ctx, filename, data, sheet)
}

func (s *fakeService) LoadSource(ctx context.Context, source, sheet string) (*services.DatasetInfo, error) {
	return s.loadSource(ctx, source, sheet)
}

func (s *fakeService) Dashboard(ctx context.Context, datasetID, sheet string, f domain.Filter) (*domain.Dashboard, error) {
	return s.dashboard(ctx, datasetID, sheet, f)
}

func (s *fakeService) ExportCSV(ctx context.Context, datasetID, sheet string, f domain.Filter) ([]byte, string, error) {
	return s.exportCSV(ctx, datasetID, sheet, f)
}

func newTestRouter(svc DashboardServiceInterface) chi.Router {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewDashboardHandler(svc, 1<<20, logger, apierrors.NewErrorHandler(logger, false))

	r := chi.NewRouter()
	r.Mount("/api/datasets", h.Routes())
	return r
}

func multipartUpload(t *testing.T, filename string, content []byte, sheet string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	if sheet != "" {
		require.NoError(t, w.WriteField("sheet", sheet))
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestCreateDataset(t *testing.T) {
	var gotFilename, gotSheet string
	svc := &fakeService{
		registerUpload: func(ctx context.Context, filename string, data []byte, sheet string) (*services.DatasetInfo, error) {
			gotFilename, gotSheet = filename, sheet
			return &services.DatasetInfo{ID: testDatasetID, Rows: 2, Columns: domain.CoreColumns}, nil
		},
	}
	router := newTestRouter(svc)

	body, contentType := multipartUpload(t, "reclamos.csv", []byte("nid\n1\n"), "Hoja1")
	req := httptest.NewRequest(http.MethodPost, "/api/datasets/", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "reclamos.csv", gotFilename)
	assert.Equal(t, "Hoja1", gotSheet)

	var resp struct {
		Status string               `json:"status"`
		Data   services.DatasetInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, testDatasetID, resp.Data.ID)
	assert.Equal(t, 2, resp.Data.Rows)
}

func TestCreateDatasetMissingFile(t *testing.T) {
	svc := &fakeService{}
	router := newTestRouter(svc)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("sheet", "Hoja1"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/datasets/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateDatasetUnreadable(t *testing.T) {
	svc := &fakeService{
		registerUpload: func(ctx context.Context, filename string, data []byte, sheet string) (*services.DatasetInfo, error) {
			return nil, apierrors.NewParsingError("file could not be read", nil)
		},
	}
	router := newTestRouter(svc)

	body, contentType := multipartUpload(t, "roto.csv", []byte{0x00}, "")
	req := httptest.NewRequest(http.MethodPost, "/api/datasets/", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var problem map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
	assert.Equal(t, apierrors.TypeUnreadableFile, problem["type"])
}

func TestLoadSource(t *testing.T) {
	svc := &fakeService{
		loadSource: func(ctx context.Context, source, sheet string) (*services.DatasetInfo, error) {
			assert.Equal(t, "bundled", source)
			return &services.DatasetInfo{ID: testDatasetID, Rows: 5}, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/datasets/source",
		strings.NewReader(`{"source":"bundled"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestLoadSourceRejectsUnknown(t *testing.T) {
	router := newTestRouter(&fakeService{})

	req := httptest.NewRequest(http.MethodPost, "/api/datasets/source",
		strings.NewReader(`{"source":"ftp"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetDashboard(t *testing.T) {
	var gotFilter domain.Filter
	svc := &fakeService{
		dashboard: func(ctx context.Context, datasetID, sheet string, f domain.Filter) (*domain.Dashboard, error) {
			gotFilter = f
			return &domain.Dashboard{KPIs: domain.KPIs{Total: 3}}, nil
		},
	}
	router := newTestRouter(svc)

	url := "/api/datasets/" + testDatasetID + "/dashboard" +
		"?airline=Alfa&airline=Beta&category=Retraso&from=2024-01-01&to=2024-01-31&top_n=10"
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, []string{"Alfa", "Beta"}, gotFilter.Airlines)
	assert.Equal(t, []string{"Retraso"}, gotFilter.Categories)
	assert.Equal(t, 10, gotFilter.TopN)
	require.NotNil(t, gotFilter.From)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *gotFilter.From)
	require.NotNil(t, gotFilter.To)
}

func TestGetDashboardQueryValidation(t *testing.T) {
	router := newTestRouter(&fakeService{})

	tests := []struct {
		name  string
		query string
	}{
		{"top_n below minimum", "?top_n=3"},
		{"top_n above maximum", "?top_n=50"},
		{"top_n not a number", "?top_n=muchos"},
		{"malformed from", "?from=enero"},
		{"inverted range", "?from=2024-02-01&to=2024-01-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet,
				"/api/datasets/"+testDatasetID+"/dashboard"+tt.query, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestGetDashboardInvalidID(t *testing.T) {
	router := newTestRouter(&fakeService{})

	req := httptest.NewRequest(http.MethodGet, "/api/datasets/no-es-un-id/dashboard", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetDashboardNotFound(t *testing.T) {
	svc := &fakeService{
		dashboard: func(ctx context.Context, datasetID, sheet string, f domain.Filter) (*domain.Dashboard, error) {
			return nil, apierrors.NewNotFoundError("dataset")
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/datasets/"+testDatasetID+"/dashboard", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportCSVDownload(t *testing.T) {
	payload := append([]byte{0xEF, 0xBB, 0xBF}, []byte("nid,fecha\n1,2024-01-05\n")...)
	svc := &fakeService{
		exportCSV: func(ctx context.Context, datasetID, sheet string, f domain.Filter) ([]byte, string, error) {
			return payload, "reclamos_filtrado.csv", nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/datasets/"+testDatasetID+"/export", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "reclamos_filtrado.csv")
	assert.Equal(t, payload, w.Body.Bytes())
}
