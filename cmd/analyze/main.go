package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"fpl-transfer-lab/internal/analysis"
	"fpl-transfer-lab/internal/observability"
	"fpl-transfer-lab/internal/reporting"
	"fpl-transfer-lab/internal/storage"
	chstore "fpl-transfer-lab/internal/storage/clickhouse"
	"fpl-transfer-lab/internal/storage/csvfile"
	"fpl-transfer-lab/internal/storage/migrations"
	pgstore "fpl-transfer-lab/internal/storage/postgres"
)

func main() {
	// Optional .env for scheduler environments
	_ = godotenv.Load()

	csvPath := flag.String("csv-file", envOr("FPL_TRANSFERS_CSV", "fpl_transfers_log.csv"), "Snapshot log CSV path")
	predPath := flag.String("pred-file", envOr("FPL_PREDICTIONS_CSV", "fpl_predictions_log.csv"), "Prediction log CSV path")
	summaryPath := flag.String("summary-file", envOr("FPL_SUMMARY_CSV", "fpl_summary.csv"), "Movers summary CSV path")
	riseThreshold := flag.Float64("rise-threshold", analysis.DefaultThreshold, "Net transfers/hour at or above which a player is a predicted riser")
	fallThreshold := flag.Float64("fall-threshold", -analysis.DefaultThreshold, "Net transfers/hour at or below which a player is a predicted faller")
	topN := flag.Int("top", 10, "How many risers and fallers to print")
	summarySize := flag.Int("summary-size", 20, "How many movers to keep in the summary file")
	postgresDSN := flag.String("postgres-dsn", envOr("POSTGRES_DSN", ""), "Optional PostgreSQL prediction mirror DSN")
	clickhouseDSN := flag.String("clickhouse-dsn", envOr("CLICKHOUSE_DSN", ""), "Read snapshots from this ClickHouse mirror instead of the CSV log")
	metricsAddr := flag.String("metrics-addr", envOr("METRICS_ADDR", ""), "Prometheus metrics HTTP address (empty to disable)")
	flag.Parse()

	logger := log.New(os.Stdout, "[analyze] ", log.LstdFlags|log.Lshortfile)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var metrics *observability.Metrics
	if *metricsAddr != "" {
		metrics = observability.NewMetrics("")
		go serveMetrics(logger, *metricsAddr)
	}

	// Snapshot source: the CSV log unless a ClickHouse mirror is given
	var snapshots storage.SnapshotStore = csvfile.NewSnapshotStore(*csvPath)
	if *clickhouseDSN != "" {
		conn, err := chstore.NewConn(ctx, *clickhouseDSN)
		if err != nil {
			logger.Fatalf("Error: %v", err)
		}
		defer conn.Close()
		snapshots = chstore.NewSnapshotStore(conn)
	}

	predStores := []storage.PredictionStore{csvfile.NewPredictionStore(*predPath)}
	if *postgresDSN != "" {
		pool, err := pgstore.NewPool(ctx, *postgresDSN)
		if err != nil {
			logger.Fatalf("Error: %v", err)
		}
		defer pool.Close()
		if err := migrations.RunPostgres(ctx, pool); err != nil {
			logger.Fatalf("Error: %v", err)
		}
		predStores = append(predStores, pgstore.NewPredictionStore(pool))
	}

	cfg := analysis.Config{
		RiseThreshold: *riseThreshold,
		FallThreshold: *fallThreshold,
	}
	analyzer := analysis.NewAnalyzer(snapshots, cfg).WithMetrics(metrics)

	preds, err := analyzer.Run(ctx)
	if err != nil {
		logger.Fatalf("Error: %v", err)
	}
	if len(preds) == 0 {
		logger.Println("No players with two snapshots yet; nothing to append")
		return
	}

	for _, store := range predStores {
		if err := store.InsertBulk(ctx, preds); err != nil {
			logger.Fatalf("Error: append predictions: %v", err)
		}
	}

	summary := reporting.BuildSummary(preds, *summarySize)
	if err := csvfile.NewSummaryStore(*summaryPath).Replace(ctx, summary); err != nil {
		logger.Fatalf("Error: write summary: %v", err)
	}

	if metrics != nil {
		metrics.PredictionsAppended.Add(float64(len(preds)))
		metrics.LastSuccessfulAnalyze.SetToCurrentTime()
	}

	if err := reporting.RenderTable(os.Stdout, "Top Rising Candidates", reporting.TopRisers(preds, *topN)); err != nil {
		logger.Fatalf("Error: %v", err)
	}
	if err := reporting.RenderTable(os.Stdout, "Top Falling Candidates", reporting.TopFallers(preds, *topN)); err != nil {
		logger.Fatalf("Error: %v", err)
	}

	logger.Printf("Appended %d prediction rows to %s, %d movers to %s",
		len(preds), *predPath, len(summary), *summaryPath)
}

// envOr returns the environment value for key, or fallback when unset.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// serveMetrics exposes /metrics and /health for the duration of the run.
func serveMetrics(logger *log.Logger, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", observability.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	logger.Printf("Starting metrics server on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
		logger.Printf("Metrics server error: %v", err)
	}
}
