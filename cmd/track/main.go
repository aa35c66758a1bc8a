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

	"fpl-transfer-lab/internal/collector"
	"fpl-transfer-lab/internal/fpl"
	"fpl-transfer-lab/internal/observability"
	"fpl-transfer-lab/internal/storage"
	chstore "fpl-transfer-lab/internal/storage/clickhouse"
	"fpl-transfer-lab/internal/storage/csvfile"
	"fpl-transfer-lab/internal/storage/migrations"
	pgstore "fpl-transfer-lab/internal/storage/postgres"
)

func main() {
	// Optional .env for scheduler environments
	_ = godotenv.Load()

	baseURL := flag.String("base-url", envOr("FPL_BASE_URL", ""), "FPL API base URL (empty for the public endpoint)")
	csvPath := flag.String("csv-file", envOr("FPL_TRANSFERS_CSV", "fpl_transfers_log.csv"), "Snapshot log CSV path")
	timeout := flag.Duration("timeout", fpl.DefaultTimeout, "HTTP fetch timeout")
	postgresDSN := flag.String("postgres-dsn", envOr("POSTGRES_DSN", ""), "Optional PostgreSQL mirror DSN")
	clickhouseDSN := flag.String("clickhouse-dsn", envOr("CLICKHOUSE_DSN", ""), "Optional ClickHouse mirror DSN")
	metricsAddr := flag.String("metrics-addr", envOr("METRICS_ADDR", ""), "Prometheus metrics HTTP address (empty to disable)")
	flag.Parse()

	logger := log.New(os.Stdout, "[track] ", log.LstdFlags|log.Lshortfile)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var metrics *observability.Metrics
	if *metricsAddr != "" {
		metrics = observability.NewMetrics("")
		go serveMetrics(logger, *metricsAddr)
	}

	primary := csvfile.NewSnapshotStore(*csvPath)
	var mirrors []storage.SnapshotStore

	if *postgresDSN != "" {
		pool, err := pgstore.NewPool(ctx, *postgresDSN)
		if err != nil {
			logger.Fatalf("Error: %v", err)
		}
		defer pool.Close()
		if err := migrations.RunPostgres(ctx, pool); err != nil {
			logger.Fatalf("Error: %v", err)
		}
		mirrors = append(mirrors, pgstore.NewSnapshotStore(pool))
	}

	if *clickhouseDSN != "" {
		conn, err := chstore.NewConn(ctx, *clickhouseDSN)
		if err != nil {
			logger.Fatalf("Error: %v", err)
		}
		defer conn.Close()
		if err := migrations.RunClickhouse(ctx, conn); err != nil {
			logger.Fatalf("Error: %v", err)
		}
		mirrors = append(mirrors, chstore.NewSnapshotStore(conn))
	}

	client := fpl.NewClient(*baseURL, fpl.WithTimeout(*timeout))
	col := collector.NewCollector(client, primary, mirrors...).WithMetrics(metrics)

	n, err := col.Run(ctx)
	if err != nil {
		logger.Fatalf("Error: %v", err)
	}
	logger.Printf("Appended %d snapshot rows to %s", n, *csvPath)
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
