package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parking-app/config"
	"parking-app/database"
	routes "parking-app/internal/app/http"
	"parking-app/internal/app/http/middleware"
	"parking-app/internal/infra/logging"
	"parking-app/internal/jobs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadEnv()
	logging.Init("parking-app", config.LOG_LEVEL)
	database.InitDB()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	verifier, err := middleware.NewVerifier(ctx)
	if err != nil {
		logging.Logger.WithError(err).Fatal("Failed to set up token verification")
	}

	sweeper, err := jobs.Schedule(config.EXPIRY_SWEEP_SCHEDULE, jobs.NewExpirySweep(database.DB, time.Now))
	if err != nil {
		logging.Logger.WithError(err).Fatal("Failed to schedule expiry sweep cron")
	}
	sweeper.Start()

	r := gin.New()
	r.Use(gin.Recovery(), logging.RequestLogger())

	// CORS must be registered before the routes
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, verifier)

	srv := &http.Server{
		Addr:              ":" + config.PORT,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Logger.Infof("Starting parking-app on port: %s", config.PORT)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Logger.WithError(err).Fatal("parking-app failed to start")
		}
	}()

	<-ctx.Done()
	logging.Logger.Info("Shutting down")

	<-sweeper.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Logger.WithError(err).Error("Graceful shutdown failed")
	}
}
