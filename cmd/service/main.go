package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"gitlab.com/dirk.krummacker/contactbook-service/internal/config"
	"gitlab.com/dirk.krummacker/contactbook-service/internal/controller"
	"gitlab.com/dirk.krummacker/contactbook-service/internal/logger"
	"gitlab.com/dirk.krummacker/contactbook-service/internal/repository"
	"gitlab.com/dirk.krummacker/contactbook-service/internal/service"
	"gitlab.com/dirk.krummacker/contactbook-service/internal/upload"
)

// Usage example on the command line:
// > PORT=8080 DBUSER=dirk DBPWD=bullo92 GIN_MODE=release GIN_LOGGING=OFF go run main.go
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("could not load configuration", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.Production())
	if err != nil {
		fmt.Println("could not create logger", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Error("service stopped", "error", err)
		log.Sync()
		os.Exit(1)
	}
}

// run serves the REST API until SIGINT or SIGTERM is received, then drains open requests and
// waits for pending avatar removals.
func run(cfg *config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sqlDB, err := repository.CreateDatabase(cfg.Database)
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("connect to %s database: %w", cfg.Database.Driver, err)
	}
	repo, err := repository.NewContactRepository(sqlDB, cfg.Database.Driver)
	if err != nil {
		return err
	}
	store, err := upload.NewStore(cfg.Uploads.PublicDir, log)
	if err != nil {
		return err
	}

	contacts := controller.NewContactController(service.New(repo, store, log))
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      controller.SetupHttpRouter(cfg, contacts, store, log),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("contact book service listening", "addr", server.Addr, "driver", cfg.Database.Driver)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := store.Wait(shutdownCtx); err != nil {
		log.Warn("pending avatar removals abandoned", "error", err)
	}
	return nil
}
