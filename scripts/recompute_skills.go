// 手动重算技能快照脚本
//
// 计分规则调整后，用当前规则重新评估每个用户最近一次测验，并覆盖其 skills 字段。
// 测验结果本身不做修改。
//
// 用法: go run scripts/recompute_skills.go [-config configs/config.yaml]

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"edutech_backend/internal/config"
	"edutech_backend/internal/repository"
	"edutech_backend/internal/service"
	"edutech_backend/internal/util"
	"edutech_backend/pkg/database"
	"edutech_backend/pkg/logger"

	"gopkg.in/yaml.v3"
)

func main() {
	path := flag.String("config", "configs/config.yaml", "配置文件路径")
	flag.Parse()

	data, err := os.ReadFile(*path)
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}
	if uri := os.Getenv("MONGO_URI"); uri != "" {
		cfg.Database.Mongo.URI = uri
	}

	logger.InitLogger(&cfg)
	defer logger.Log.Sync()

	var (
		users   repository.UserRepository
		results repository.ResultRepository
	)
	switch cfg.Database.Driver {
	case util.DriverMySQL:
		db, err := database.InitMySQL(&cfg.Database.MySQL, false)
		if err != nil {
			log.Fatalf("数据库连接失败: %v", err)
		}
		users = repository.NewGormUserRepository(db)
		results = repository.NewGormResultRepository(db)
	default:
		client, db, err := database.InitMongo(&cfg.Database.Mongo)
		if err != nil {
			log.Fatalf("数据库连接失败: %v", err)
		}
		defer client.Disconnect(context.Background())
		users = repository.NewMongoUserRepository(db)
		results = repository.NewMongoResultRepository(db)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	log.Println("开始重算技能快照...")
	report, err := service.NewRecomputeService(users, results).Run(ctx)
	if err != nil {
		log.Fatalf("重算中断: %v", err)
	}
	log.Printf("完成！用户 %d，更新 %d，跳过 %d，失败 %d", report.Users, report.Updated, report.Skipped, report.Failures)
}
