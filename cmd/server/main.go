package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pricebridge/internal/bridge"
	"pricebridge/internal/config"
	"pricebridge/internal/logger"
)

// priceLookup is what the handler needs from the bridge.
type priceLookup interface {
	Lookup(raw string) bridge.Result
}

type priceResponse struct {
	Ticker string  `json:"ticker"`
	Price  float64 `json:"price"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func main() {
	log := logger.GetLogger()

	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, using environment only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}
	logger.ApplyLevel(log, cfg.LogLevel)

	br := bridge.New(cfg.SessionOptions(),
		bridge.WithPollTimeout(cfg.PollTimeout()),
		bridge.WithLogger(log),
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           withJSONHeaders(recoverPanic(newMux(br))),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		// lookups poll the provider for up to several timeouts before replying
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func newMux(lk priceLookup) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/api/current_price", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
			return
		}
		handleCurrentPrice(w, r, lk)
	})
	return mux
}

// handleCurrentPrice serves GET /api/current_price?ticker=<string>.
func handleCurrentPrice(w http.ResponseWriter, r *http.Request, lk priceLookup) {
	raw := r.URL.Query().Get("ticker")
	if strings.TrimSpace(raw) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Ticker parameter is required"})
		return
	}

	res := lk.Lookup(raw)

	if res.Price != nil {
		used := res.Ticker
		if used == "" {
			used = raw
		}
		writeJSON(w, http.StatusOK, priceResponse{Ticker: used, Price: *res.Price})
		return
	}

	msg := res.Err
	if msg == "" {
		msg = fmt.Sprintf("Could not retrieve price for ticker %s", raw)
	}
	if res.Ticker != "" && res.Ticker != raw {
		msg += fmt.Sprintf(" (used ticker: %s)", res.Ticker)
	}
	writeJSON(w, http.StatusNotFound, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func withJSONHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// recoverPanic protects handlers from panics.
func recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
