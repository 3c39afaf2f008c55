package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"resto_pos_backend/internal/config"
	"resto_pos_backend/internal/database"
	"resto_pos_backend/internal/router"
	"resto_pos_backend/internal/tenant"
	"resto_pos_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	utils.InitLogger()
	cfg := config.Load()
	utils.InitJWT(cfg.App.JWTSecret)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	masterDB, err := database.Connect(ctx, cfg.Master.DSN(), cfg.Master.SchemaPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to master database")
	}
	defer masterDB.Close()

	pool := tenant.NewPool(cfg.Tenant.PoolIdleTTL)
	defer pool.Close()

	provisioner := tenant.NewProvisioner(masterDB, cfg.Tenant.URLTemplate, cfg.Tenant.SchemaPath)

	engine := gin.New()
	engine.Use(utils.RequestID())
	engine.Use(utils.GinLogger())
	engine.Use(gin.Recovery())
	engine.Use(cors.New(corsConfig(cfg.App.CORSAllowedOrigins)))

	router.Setup(engine, masterDB, pool, provisioner)

	srv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: engine,
	}

	go func() {
		log.Info().Str("port", cfg.App.Port).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}
	log.Info().Msg("Server stopped")
}

func corsConfig(allowedOrigins string) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", "x-restaurant-id")
	if allowedOrigins == "" {
		corsCfg.AllowAllOrigins = true
		return corsCfg
	}
	origins := strings.Split(allowedOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	corsCfg.AllowOrigins = origins
	return corsCfg
}
