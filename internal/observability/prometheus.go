package observability

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	apperrors "resumescore/internal/errors"
)

// NewPrometheusExporter creates an OTel reader backed by a private
// Prometheus registry, plus the handler that serves it. The registry also
// carries the Go runtime and process collectors.
func NewPrometheusExporter() (sdkmetric.Reader, http.Handler, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
	return exporter, handler, nil
}

// StartPrometheusServer serves handler on its own port until ctx is
// cancelled.
func StartPrometheusServer(ctx context.Context, handler http.Handler, port, path string, logger *apperrors.Logger) error {
	if handler == nil {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle(path, handler)

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return apperrors.NewNetworkError("METRICS_LISTEN_FAILED", "failed to listen for Prometheus scrapes", err).
			WithContext("addr", server.Addr)
	}
	logger.Info("Prometheus metrics server started", "addr", ln.Addr().String(), "path", path)

	go func() {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.LogError(err, "Prometheus server error")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	return nil
}
