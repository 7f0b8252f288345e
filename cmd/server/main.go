package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fichadoradamathias/Restaurante2/config"
	"github.com/fichadoradamathias/Restaurante2/internal/api/handler"
	"github.com/fichadoradamathias/Restaurante2/internal/api/router"
	"github.com/fichadoradamathias/Restaurante2/internal/repository"
	"github.com/fichadoradamathias/Restaurante2/internal/service"
	"github.com/fichadoradamathias/Restaurante2/pkg/clock"
	"github.com/fichadoradamathias/Restaurante2/pkg/database"
	"github.com/fichadoradamathias/Restaurante2/pkg/jwt"
	"github.com/fichadoradamathias/Restaurante2/pkg/logger"
	"github.com/fichadoradamathias/Restaurante2/pkg/redis"
)

func main() {
	configPath := flag.String("config", "", "ruta del archivo de configuración")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error de configuración: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error al inicializar el logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if cfg.Log.Format != "console" {
		gin.SetMode(gin.ReleaseMode)
	}

	// ── Base de datos ──
	db, err := database.NewDB(&cfg.Database, log)
	if err != nil {
		log.Fatal("no se pudo conectar a la base de datos", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("no se pudo obtener la conexión subyacente", zap.Error(err))
	}
	defer sqlDB.Close()

	if err := database.RunMigrations(sqlDB, log); err != nil {
		log.Fatal("error al migrar la base de datos", zap.Error(err))
	}
	if err := database.SeedAdmin(db, &cfg.Seed, log); err != nil {
		log.Fatal("error al crear el usuario admin inicial", zap.Error(err))
	}

	// ── Redis (opcional: sin Redis no hay lista negra de tokens) ──
	rdb, err := redis.NewClient(&cfg.Redis, log)
	if err != nil {
		log.Warn("Redis no disponible, el logout solo valdrá del lado del cliente", zap.Error(err))
		rdb = nil
	} else {
		defer rdb.Close()
	}

	// ── Armado de capas ──
	jwtMgr := jwt.NewManager(&cfg.Auth)
	clk := clock.New()
	repo := repository.NewRepository(db)
	svc := service.NewService(repo, jwtMgr, rdb, clk, cfg, log)
	h := handler.NewHandler(svc, log)
	r := router.New(cfg, h, svc, jwtMgr, rdb, log)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("servidor HTTP escuchando", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("error del servidor HTTP", zap.Error(err))
		}
	}()

	// ── Apagado ordenado ──
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("apagando el servidor")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("el apagado no terminó limpio", zap.Error(err))
	}
	log.Info("servidor detenido")
}
