package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xwby268/BIO-LINK-2/auth"
	"github.com/xwby268/BIO-LINK-2/config"
	"github.com/xwby268/BIO-LINK-2/database"
	"github.com/xwby268/BIO-LINK-2/handlers"
	"github.com/xwby268/BIO-LINK-2/routes"
	"github.com/xwby268/BIO-LINK-2/uploader"
	"github.com/xwby268/BIO-LINK-2/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger is not up yet.
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := utils.InitLogger(cfg.LogLevel, cfg.LogPath); err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer utils.Logger.Sync()

	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	// Failing to reach the database at startup is fatal; the service never
	// starts degraded.
	connectCtx, connectCancel := context.WithTimeout(context.Background(), 15*time.Second)
	store, err := database.Connect(connectCtx, cfg.MongoURI, cfg.DBName)
	connectCancel()
	if err != nil {
		utils.Sugar.Fatalf("failed to connect to MongoDB: %v", err)
	}
	utils.Sugar.Info("connected to MongoDB")

	h := handlers.New(store, auth.NewSecretGate(cfg.AdminPassword), uploader.New(cfg.UploadURL))
	router := routes.SetupRouter(h, cfg.PublicDir)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		utils.Sugar.Infof("server running on port %s", cfg.Port)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			utils.Sugar.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.Sugar.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		utils.Sugar.Errorf("forced shutdown: %v", err)
	}

	if err := store.Close(shutdownCtx); err != nil {
		utils.Sugar.Errorf("disconnect from MongoDB: %v", err)
	}

	utils.Sugar.Info("server stopped gracefully")
}
