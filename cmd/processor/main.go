// Command processor runs the complaint pipeline offline: it loads one
// spreadsheet, computes every summary and writes them as CSV files, so the
// same numbers the dashboard serves can be produced in batch.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"reclamos/internal/analytics"
	"reclamos/internal/dataprocessing"
	"reclamos/internal/exporter"
	"reclamos/internal/validation"
	"reclamos/pkg/contracts/domain"
)

func main() {
	inPath := flag.String("in", "", "spreadsheet to process (.xlsx or .csv)")
	outDir := flag.String("out", "output", "directory for the generated CSV files")
	sheet := flag.String("sheet", "", "worksheet to read (name, zero-based index, or empty for the first)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	if err := run(context.Background(), logger, *inPath, *outDir, *sheet); err != nil {
		logger.Error("processing failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, inPath, outDir, sheet string) error {
	if inPath == "" {
		return fmt.Errorf("missing required flag -in")
	}

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateFile(inPath); err != nil {
		return err
	}

	data, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	loader := dataprocessing.NewLoader(logger)
	set, err := loader.Load(ctx, data, sheet)
	if err != nil {
		return err
	}
	for _, w := range set.Warnings {
		logger.Warn("data quality warning",
			slog.String("code", w.Code),
			slog.String("message", w.Message),
			slog.Int("count", w.Count))
	}

	aggregator := analytics.NewAggregator(logger)
	dashboard := aggregator.Aggregate(ctx, set, domain.Filter{})

	logger.Info("dataset processed",
		slog.String("input", inPath),
		slog.Int("rows", dashboard.KPIs.Total),
		slog.Int("airlines", dashboard.KPIs.Aerolineas),
		slog.Int("categories", dashboard.KPIs.Categorias))

	writer := exporter.NewCSVWriter(outDir, logger)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		return writer.WriteView("reclamos_filtrado.csv", dashboard.Rows)
	})
	for _, s := range []domain.Summary{
		dashboard.ByAirline,
		dashboard.ByWeekday,
		dashboard.ByMonth,
		dashboard.TopRoutes,
		dashboard.TopDestinos,
		dashboard.TopOrigenes,
		dashboard.ByScope,
	} {
		if !s.Available {
			logger.Info("summary unavailable, skipping", slog.String("summary", s.Name))
			continue
		}
		g.Go(func() error {
			return writer.WriteSummary(s)
		})
	}
	return g.Wait()
}
