// Command hokmd runs the Hokm game server: a WebSocket endpoint backed
// by the in-memory room registry.
package main

import (
	"net/http"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/hokmlab/hokm/internal/config"
	"github.com/hokmlab/hokm/internal/history"
	"github.com/hokmlab/hokm/internal/room"
	"github.com/hokmlab/hokm/internal/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	log := logrus.New()
	log.SetOutput(os.Stdout)
	if cfg.LogJSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	} else {
		log.WithField("level", cfg.LogLevel).Warn("unknown log level, using info")
	}

	hist := history.New(cfg.RedisAddr, log)
	defer hist.Close()
	if hist != nil {
		log.WithField("addr", cfg.RedisAddr).Info("action history enabled")
	}

	mgr := room.NewManager(log, hist, cfg.BotDifficulty)
	gw := ws.New(mgr, log, cfg.Origins)

	mux := http.NewServeMux()
	mux.Handle("/ws", gw)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	log.WithField("addr", cfg.Addr).Info("server listening")
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
