package main

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"belote/internal/engine"
	"belote/internal/remote"
	"belote/internal/server"
	"belote/internal/session"
)

func main() {
	_ = godotenv.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	addr := envString("ADDR", ":8080")
	opts := server.Options{
		Logger:          log,
		TurnTimeout:     envDuration(log, "TURN_TIMEOUT", session.DefaultTurnTimeout),
		TargetScore:     envInt(log, "TARGET_SCORE", engine.DefaultTargetScore),
		BotFailureLimit: envInt(log, "BOT_FAILURE_LIMIT", session.DefaultFailureLimit),
	}

	// With BOT_SERVER_URL set, bot seats are played by an external bot
	// server over the HTTP protocol instead of the built-in bots.
	if botURL := os.Getenv("BOT_SERVER_URL"); botURL != "" {
		client := remote.NewClient(botURL)
		opts.Bots = func(seat engine.Seat, level string, seed int64) (session.Agent, error) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return remote.Dial(ctx, client, seat, strconv.FormatInt(seed, 10), log)
		}
		log.Info("using remote bot server", zap.String("url", botURL))
	}

	gw := server.NewGateway(opts)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", gw.WSHandler)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	log.Info("listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(log *zap.Logger, key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn("invalid integer, using default", zap.String("key", key), zap.String("value", v))
		return def
	}
	return n
}

func envDuration(log *zap.Logger, key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Warn("invalid duration, using default", zap.String("key", key), zap.String("value", v))
		return def
	}
	return d
}
