package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/FehCode/financeflow1/internal/activity"
	"github.com/FehCode/financeflow1/internal/assistant"
	"github.com/FehCode/financeflow1/internal/config"
	"github.com/FehCode/financeflow1/internal/database"
	"github.com/FehCode/financeflow1/internal/router"
	"github.com/FehCode/financeflow1/internal/session"
)

func main() {
	// load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// ensure basic directories exist
	if err := ensureDir(filepath.Dir(cfg.Database.Path)); err != nil {
		log.Fatalf("create data dir: %v", err)
	}
	if err := ensureDir(filepath.Dir(cfg.Log.File)); err != nil {
		log.Fatalf("create log dir: %v", err)
	}

	ctx := context.Background()

	// open the record store and run migrations; every feature depends on
	// this completing, so a failure here is fatal
	store, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer store.Close()

	var opts []session.Option
	if cfg.Auth.VerifyPassword {
		opts = append(opts, session.WithCredentialCheck())
	}
	if cfg.Auth.BcryptCost > 0 {
		opts = append(opts, session.WithBcryptCost(cfg.Auth.BcryptCost))
	}
	sessions := session.New(store, opts...)
	if err := sessions.Initialize(ctx); err != nil {
		log.Fatalf("initialize store: %v", err)
	}

	activities := activity.NewLogger(store)

	gateway, err := assistant.New(ctx, cfg.Assistant, cfg.AssistantTimeout())
	if err != nil {
		log.Fatalf("init assistant gateway: %v", err)
	}

	// setup router
	r := router.SetupRouter(cfg, router.Deps{
		Store:      store,
		Sessions:   sessions,
		Activities: activities,
		Gateway:    gateway,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
