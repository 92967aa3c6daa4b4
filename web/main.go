package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"skyraksys.com/hrm/config"
	"skyraksys.com/hrm/core"
	"skyraksys.com/hrm/directory"
	"skyraksys.com/hrm/infrastructure/devops"
	"skyraksys.com/hrm/infrastructure/filesystem"
	"skyraksys.com/hrm/timesheet"
	directoryapi "skyraksys.com/hrm/web/handlers/directory"
	timesheetapi "skyraksys.com/hrm/web/handlers/timesheet"
	"skyraksys.com/hrm/web/middlewares"
)

func main() {
	cfgPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}

	logger, err := core.NewLogger(&cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx := context.Background()

	if err := devops.ApplyDBConfig(ctx, &cfg.Database); err != nil {
		logger.Fatal("failed to load database credentials", zap.Error(err))
	}

	db, err := core.Connect(&cfg.Database, core.DatabaseLogLevel(&cfg.Log))
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := core.Migrate(db); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	store := timesheet.NewGormStore(db)
	dir := directory.New(db)
	svc := timesheet.NewService(store, dir, logger)

	var archive timesheetapi.Archiver
	if cfg.Storage.ExportBucket != "" {
		fs, err := filesystem.NewS3FileSystem(ctx, cfg.Storage.ExportBucket)
		if err != nil {
			logger.Warn("export archiving disabled", zap.Error(err))
		} else {
			archive = fs
		}
	}

	r := gin.Default()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	protected := r.Group("/api/hrm/v1.0")
	protected.Use(middlewares.Authentication(cfg.Auth.Secret))
	{
		timesheetapi.Register(protected, svc, logger, archive)
		directoryapi.Register(protected, dir)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("forced shutdown", zap.Error(err))
	}
	logger.Info("server exited")
}
