package main

import (
	"context"
	"log"
	"time"

	"radlands/config"
	"radlands/controller"
	"radlands/engine"
	"radlands/logger"
	"radlands/middleware"
	"radlands/repository"
	"radlands/router"
	"radlands/service"
	"radlands/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("读取配置失败: %v", err)
	}
	lg, err := logger.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer lg.Sync()

	if err := repository.InitRedis(cfg, lg); err != nil {
		lg.Fatal("❌ 初始化 Redis 失败", zap.Error(err))
	}

	catalog, err := repository.OpenCatalog(cfg.CatalogDriver, cfg.CatalogDSN)
	if err != nil {
		lg.Fatal("❌ 打开卡牌目录失败", zap.Error(err))
	}
	defer catalog.Close()
	if cfg.CatalogSeed {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		n, err := catalog.Seed(ctx)
		cancel()
		if err != nil {
			lg.Fatal("❌ 写入卡牌数据失败", zap.Error(err))
		}
		lg.Info("🃏 卡牌目录就绪", zap.String("driver", cfg.CatalogDriver), zap.Int("seeded", n))
	}

	hub := ws.NewHub(lg.Named("ws"))
	svc := service.NewGameService(repository.NewGameStore(repository.Rdb), catalog, hub, lg.Named("game"), engine.Options{
		ManualReplenish:      cfg.ManualReplenish,
		AdvanceOnEventsEntry: cfg.AdvanceOnEventsEntry,
	})

	if !cfg.LogDevelopment {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(lg.Named("http")))

	// 设置 CORS 中间件，允许所有域名、所有方法、所有 header
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:   []string{"Content-Length"},
		MaxAge:          12 * time.Hour,
	}))

	router.InitRouter(r, router.Controllers{
		Games: controller.NewGameController(svc, hub),
		Cards: controller.NewCardController(svc),
	}, hub, svc, cfg.APIToken)

	lg.Info("🚀 服务启动", zap.String("addr", cfg.HTTPAddr))
	if err := r.Run(cfg.HTTPAddr); err != nil {
		lg.Fatal("❌ 服务退出", zap.Error(err))
	}
}
