package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rocjay1/card-advisor/internal/catalog"
	"github.com/rocjay1/card-advisor/internal/config"
	"github.com/rocjay1/card-advisor/internal/handler"
	"github.com/rocjay1/card-advisor/internal/recommend"
	"github.com/rocjay1/card-advisor/internal/services"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		slog.Error("Failed to load category catalog", "error", err)
		os.Exit(1)
	}

	engine := recommend.NewEngine(cat, cfg.Thresholds)
	slog.Info("recommendation engine ready", "rules", engine.Rules(), "limit", cfg.Thresholds.Limit)

	deps := &handler.Dependencies{
		Engine: engine,
		Settings: handler.Settings{
			BatchContainer:      cfg.BatchContainer,
			BatchQueue:          cfg.BatchQueue,
			ReportEmail:         cfg.ReportEmail,
			ReportRetentionDays: cfg.ReportRetentionDays,
		},
	}

	batchEnabled := cfg.BatchEnabled()
	if batchEnabled {
		if err := initBatchServices(cfg, deps); err != nil {
			slog.Error("Failed to init batch services", "error", err)
			os.Exit(1)
		}
	} else {
		slog.Warn("storage service URLs not set; batch analysis disabled")
	}

	mux := http.NewServeMux()

	limiter := httprate.LimitByIP(cfg.RateLimitPerMinute, time.Minute)
	analyze := http.Handler(http.HandlerFunc(deps.HandleAnalyze))
	if cfg.RateLimitPerMinute > 0 {
		analyze = limiter(analyze)
	}
	mux.Handle("POST /analyze", analyze)
	mux.Handle("POST /api/analyze", analyze)

	if batchEnabled {
		mux.HandleFunc("POST /api/upload", deps.HandleUpload)
		mux.HandleFunc("GET /api/reports", deps.HandleReports)
		mux.HandleFunc("/ProcessQueue", deps.ProcessQueue)
		mux.HandleFunc("/RetentionTrigger", deps.HandleRetentionTrigger)
	} else {
		unavailable := handler.Unavailable("batch analysis")
		mux.HandleFunc("POST /api/upload", unavailable)
		mux.HandleFunc("GET /api/reports", unavailable)
		mux.HandleFunc("/ProcessQueue", unavailable)
		mux.HandleFunc("/RetentionTrigger", unavailable)
	}

	mux.HandleFunc("/HttpTrigger", handler.HandleHttpTrigger(mux))

	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           corsHandler(loggingMiddleware(mux)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("Starting server", "port", cfg.Port, "batch_enabled", batchEnabled)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func initBatchServices(cfg *config.Config, deps *handler.Dependencies) error {
	reports, err := services.NewReportStore(cfg.TableServiceURL, cfg.ReportsTable)
	if err != nil {
		return err
	}
	blob, err := services.NewBlobService(cfg.BlobServiceURL)
	if err != nil {
		return err
	}
	queue, err := services.NewQueueService(cfg.QueueServiceURL)
	if err != nil {
		return err
	}

	deps.Reports = reports
	deps.Blob = blob
	deps.Queue = queue

	if cfg.ReportEmail != "" {
		email, err := services.NewEmailService(cfg.CommunicationEndpoint, cfg.SenderEmail, nil)
		if err != nil {
			slog.Warn("Failed to init EmailService (continuing without batch emails)", "error", err)
		} else {
			deps.Email = email
		}
	}
	return nil
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rw, r)

		slog.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.status,
			"remote_addr", r.RemoteAddr,
			"duration", time.Since(start),
		)
	})
}
