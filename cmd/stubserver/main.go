// Command stubserver runs the in-memory stub backend for local
// development against the client.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/elikia/elikia-client/internal/logger"
	"github.com/elikia/elikia-client/internal/server"
)

func main() {
	var (
		addr          string
		adminEmail    string
		adminPassword string
		secret        string
		logLevel      string
	)
	flag.StringVar(&addr, "a", "localhost:8080", "run on ip:port")
	flag.StringVar(&adminEmail, "admin", "admin@elikia.org", "seeded admin email")
	flag.StringVar(&adminPassword, "password", "admin", "seeded admin password")
	flag.StringVar(&secret, "secret", "stub-secret", "token signing secret")
	flag.StringVar(&logLevel, "log", "info", "log level")
	flag.Parse()

	log, err := logger.New(logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to init logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	store := server.NewStore(adminEmail, adminPassword)
	handler := server.NewHandler(store, []byte(secret), log)

	// The client defaults to http://localhost:8080/api, matching the
	// real backend's base path.
	root := chi.NewRouter()
	root.Mount("/api", server.NewRouter(handler, []byte(secret), log))

	log.Info("starting stub server",
		zap.String("addr", addr),
		zap.String("admin", adminEmail),
	)
	if err := http.ListenAndServe(addr, root); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
