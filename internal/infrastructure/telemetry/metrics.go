// Package telemetry provides the bot's Prometheus metrics and the /metrics server.
package telemetry

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once sync.Once

	LinesReceived     *prometheus.CounterVec
	CommandsExecuted  *prometheus.CounterVec
	BatchesSent       *prometheus.CounterVec
	BatchesDropped    *prometheus.CounterVec
	LinesSent         *prometheus.CounterVec
	SessionReconnects *prometheus.CounterVec
	StoreErrors       *prometheus.CounterVec
)

// Init registers metrics (idempotent). Until it runs every Observe* helper is a no-op.
func Init() {
	once.Do(func() {
		LinesReceived = promauto.NewCounterVec(prometheus.CounterOpts{Name: "chatbot_lines_received_total", Help: "Raw lines received from the chat transport"}, []string{"channel"})
		CommandsExecuted = promauto.NewCounterVec(prometheus.CounterOpts{Name: "chatbot_commands_executed_total", Help: "Command handlers executed"}, []string{"command"})
		BatchesSent = promauto.NewCounterVec(prometheus.CounterOpts{Name: "chatbot_outbound_batches_sent_total", Help: "Reply batches admitted by the outbound window"}, []string{"channel"})
		BatchesDropped = promauto.NewCounterVec(prometheus.CounterOpts{Name: "chatbot_outbound_batches_dropped_total", Help: "Reply batches rejected by the outbound window"}, []string{"channel"})
		LinesSent = promauto.NewCounterVec(prometheus.CounterOpts{Name: "chatbot_outbound_lines_sent_total", Help: "Reply lines written to the transport"}, []string{"channel"})
		SessionReconnects = promauto.NewCounterVec(prometheus.CounterOpts{Name: "chatbot_session_reconnects_total", Help: "Session reconnects by reason"}, []string{"channel", "reason"})
		StoreErrors = promauto.NewCounterVec(prometheus.CounterOpts{Name: "chatbot_store_errors_total", Help: "Absorbed persistence failures by operation"}, []string{"op"})
	})
}

func ObserveLine(channel string) {
	if LinesReceived != nil {
		LinesReceived.WithLabelValues(channel).Inc()
	}
}

func ObserveCommand(name string) {
	if CommandsExecuted != nil {
		CommandsExecuted.WithLabelValues(name).Inc()
	}
}

// ObserveBatch records one outbound batch of n lines.
func ObserveBatch(channel string, admitted bool, n int) {
	if BatchesSent == nil {
		return
	}
	if !admitted {
		BatchesDropped.WithLabelValues(channel).Inc()
		return
	}
	BatchesSent.WithLabelValues(channel).Inc()
	LinesSent.WithLabelValues(channel).Add(float64(n))
}

func ObserveReconnect(channel, reason string) {
	if SessionReconnects != nil {
		SessionReconnects.WithLabelValues(channel, reason).Inc()
	}
}

func ObserveStoreError(op string) {
	if StoreErrors != nil {
		StoreErrors.WithLabelValues(op).Inc()
	}
}

// Serve exposes /metrics on addr until ctx ends.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok " + strconv.FormatInt(time.Now().Unix(), 10)))
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("telemetry: metrics server listening", slog.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
