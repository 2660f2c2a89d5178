// @title EduTech 后端 API
// @version 1.0
// @description 技能测验评分与学习方向推荐服务。

// @host localhost:5000
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"flag"
	"log"

	"edutech_backend/internal/app"
	"edutech_backend/internal/config"
	"edutech_backend/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	// 命令行参数
	configDir := flag.String("config", "configs", "配置文件目录")
	migrateOnly := flag.Bool("migrate-only", false, "只建立索引/执行迁移，完成后退出")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.MigrateOnly = *migrateOnly

	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	application, err := app.NewApp(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize application", zap.Error(err))
	}

	// 迁移在 NewApp 中完成，直接退出
	if cfg.MigrateOnly {
		application.Close(context.Background())
		logger.Log.Info("Migration completed, exiting")
		return
	}

	application.Run()
}
