package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmhodges/clock"

	"healthnudge/internal/api"
	"healthnudge/internal/config"
	"healthnudge/internal/database"
	"healthnudge/internal/insights"
	"healthnudge/internal/mailer"
	"healthnudge/internal/scheduler"
	"healthnudge/internal/session"
	"healthnudge/internal/store"
	"healthnudge/internal/twilio"
	"healthnudge/internal/watcher"
)

func main() {
	logger := log.New(os.Stdout, "[healthnudge] ", log.LstdFlags|log.Lshortfile)
	cfg := config.Load()

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("database init failed: %v", err)
	}

	st := store.New(db)
	mail := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.EmailFrom)
	whatsApp := twilio.New(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppNumber)
	ai := insights.New(cfg.OpenAIAPIKey)
	sessions := session.NewManager(cfg.JWTSecret)
	clk := clock.New()

	sched := scheduler.New(cfg, st, mail, whatsApp, clk, logger)
	if err := sched.Start(); err != nil {
		logger.Fatalf("scheduler start: %v", err)
	}

	apiServer := api.New(st, sessions, ai, logger)
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: apiServer.Router(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Optional headless agent mode: run the client matcher against a remote
	// API with a pre-issued session token.
	if cfg.AgentAPIBase != "" && cfg.AgentToken != "" {
		source := watcher.NewHTTPSource(cfg.AgentAPIBase, cfg.AgentToken)
		w := watcher.New(
			source,
			&watcher.ConsoleDesktop{Logger: logger},
			&watcher.ConsoleInApp{Logger: logger},
			clk,
			logger,
			watcher.WithSessionToken(cfg.AgentToken),
		)
		go w.Run(ctx)
		logger.Printf("agent: watching medicines at %s", cfg.AgentAPIBase)
	}

	go func() {
		logger.Printf("server starting on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server error: %v", err)
		}
	}()

	waitForShutdown(server, sched, cancel, logger)
}

func waitForShutdown(server *http.Server, sched *scheduler.Scheduler, cancel context.CancelFunc, logger *log.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Println("shutting down...")
	cancel()

	ctx, cancelTimeout := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelTimeout()

	if err := server.Shutdown(ctx); err != nil {
		logger.Printf("server shutdown error: %v", err)
	}
	sched.Stop()
}
