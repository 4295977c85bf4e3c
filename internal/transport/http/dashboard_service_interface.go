package http

import (
	"context"

	"reclamos/internal/services"
	"reclamos/pkg/contracts/domain"
)

// DashboardServiceInterface is what the handlers need from the service
// layer; the concrete implementation lives in internal/services.
type DashboardServiceInterface interface {
	RegisterUpload(ctx context.Context, filename string, data []byte, sheet string) (*services.DatasetInfo, error)
	LoadSource(ctx context.Context, source, sheet string) (*services.DatasetInfo, error)
	Dashboard(ctx context.Context, datasetID, sheet string, f domain.Filter) (*domain.Dashboard, error)
	ExportCSV(ctx context.Context, datasetID, sheet string, f domain.Filter) ([]byte, string, error)
}
