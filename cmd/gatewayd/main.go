package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"k8s.io/klog/v2"

	"github.com/nookplot/gateway/dao/query"
	"github.com/nookplot/gateway/internal"
	"github.com/nookplot/gateway/internal/handler"
	"github.com/nookplot/gateway/pkg/config"
	"github.com/nookplot/gateway/pkg/credstore"
	"github.com/nookplot/gateway/pkg/githubclient"
	"github.com/nookplot/gateway/pkg/hostedcode"
	"github.com/nookplot/gateway/pkg/metrics"
	"github.com/nookplot/gateway/pkg/notify"
	"github.com/nookplot/gateway/pkg/retention"
)

var (
	readHeaderTimeout = 10 * time.Second
	cancelTimeout     = 10 * time.Second
)

// @title						Gateway API
// @version						1.0.0
// @description					Hosted code gateway: relational file store with atomic commits, reviews and GitHub export.
// @securityDefinitions.apikey	Bearer
// @in							header
// @name						Authorization
// @description					Fill in 'Bearer ${TOKEN}' to access protected endpoints.
func main() {
	if config.IsDebugMode() {
		if err := godotenv.Load(); err != nil {
			klog.Warningf("no .env file loaded: %v", err)
		}
	}
	cfg := config.GetConfig()

	db := query.GetDB()
	if err := query.Migrate(db); err != nil {
		klog.Fatalf("Failed to migrate database: %s", err)
	}

	vcs := githubclient.NewClient(cfg.GitHub.APIBaseURL)
	creds, err := credstore.New(db, cfg.CredentialKey)
	if err != nil {
		klog.Fatalf("Failed to init credential store: %s", err)
	}

	var notifier hostedcode.ReviewNotifier
	if mailer := notify.NewMailer(cfg); mailer.Enabled() {
		notifier = mailer
	}

	engine := hostedcode.NewEngine(db, vcs, notifier)
	store := hostedcode.NewStore(db)
	feed := hostedcode.NewFeed(db)
	bridge := hostedcode.NewBridge(db, store, vcs, creds, githubclient.ParseRepoURL)
	tasks := hostedcode.NewTasks(db)

	sweeper := retention.NewManager(db, cfg.Retention.ActivityDays, cfg.Retention.Spec)
	if err := sweeper.Start(); err != nil {
		klog.Fatalf("Failed to start retention sweeper: %s", err)
	}
	defer sweeper.Stop()

	go metrics.Serve(cfg.MetricsAddr)

	backend := internal.Register(&handler.RegisterConfig{
		DB:     db,
		Engine: engine,
		Store:  store,
		Feed:   feed,
		Bridge: bridge,
		Tasks:  tasks,
		Creds:  creds,
	})

	// reference: https://gin-gonic.com/en/docs/examples/graceful-restart-or-stop
	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           backend.R,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			klog.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	klog.Info("Shutdown Gin Server ...")

	ctx, cancel := context.WithTimeout(context.Background(), cancelTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		klog.Info("Gin Server Shutdown:", err)
	}
	klog.Info("Gin Server exiting")
}
