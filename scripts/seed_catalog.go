// 手动写入课程目录种子数据
//
// 主应用启动时会在后台自动写入（可用 -no-seed 关闭）。
// 此脚本用于 release 部署或清库后手动补齐目录，重复执行不会产生重复数据。
//
// 用法: go run scripts/seed_catalog.go

package main

import (
	"codequest_backend/internal/config"
	"codequest_backend/pkg/database"
	"codequest_backend/pkg/logger"
	"context"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	// 环境变量优先于配置文件
	if v := os.Getenv("DATABASE_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("DATABASE_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}

	logger.InitLogger(&cfg)

	db, err := database.InitDB(&cfg.Database, true)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	log.Println("写入目录种子数据...")
	if err := database.SeedCatalog(ctx, db); err != nil {
		log.Fatalf("写入失败: %v", err)
	}
	log.Println("完成！如启用了 Redis 目录缓存，请等待缓存过期或重启服务。")
}
