package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gliderlabs/ssh"
	"github.com/qnkhuat/gestris/pkg"
	"github.com/qnkhuat/gestris/pkg/config"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "settings.json", "path to settings file")
	logPath := flag.String("log", "", "path to log file (overrides log.path)")
	addr := flag.String("addr", "", "listen address (overrides ssh.address)")
	flag.Parse()

	cfg, err := config.Load(*configPath, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "server:", err)
		os.Exit(1)
	}
	settings := cfg.Settings()

	if *logPath == "" {
		*logPath = settings.Log.Path
	}
	logger, err := pkg.InitLog(*logPath, settings.Log.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, "server: init log:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *addr != "" {
		settings.SSH.Address = *addr
	}

	// Every session runs the game against the same settings file.
	s, err := pkg.NewServer(settings.SSH, []string{"-config", cfg.Path()}, logger)
	if err != nil {
		logger.Fatal("failed to create server", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		logger.Info("shutting down", zap.Strings("sessions", s.Sessions()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", zap.String("address", settings.SSH.Address))
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
