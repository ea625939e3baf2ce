package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/blogicum/internal/app"
	"github.com/blogicum/internal/config"
	"github.com/blogicum/internal/logger"
	"github.com/blogicum/internal/models"
	"github.com/blogicum/internal/observability"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiDim   = "\033[2m"
	ansiCyan  = "\033[36m"

	envDefaultAdminUsername = "BLOGICUM_DEFAULT_ADMIN_USERNAME"
	envDefaultAdminPassword = "BLOGICUM_DEFAULT_ADMIN_PASSWORD"
)

func main() {
	var mode string
	flag.StringVar(&mode, "mode", app.ModeAll, "启动模式: all (默认), api, worker")
	flag.Parse()

	printStartupBanner(mode)

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if isWeakSecret(cfg.UserJWT.SecretKey) {
		if cfg.Server.Mode == "release" {
			stdLog.Fatalf("user_jwt.secret 过弱或仍为默认值，请在生产环境中配置强随机密钥")
		}
		stdLog.Printf("警告: user_jwt.secret 过弱或仍为默认值，建议在生产环境中更换")
	}

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("数据库初始化失败: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("数据库迁移失败: %v", err)
	}

	// 首次启动创建超级用户；release 模式必须显式提供密码
	adminUser := os.Getenv(envDefaultAdminUsername)
	adminPass := os.Getenv(envDefaultAdminPassword)
	if cfg.Server.Mode == "release" && adminPass == "" {
		stdLog.Printf("警告: 未设置 %s，已跳过默认超级用户初始化", envDefaultAdminPassword)
	} else if err := models.InitDefaultAdmin(adminUser, adminPass); err != nil {
		stdLog.Printf("警告: 初始化默认超级用户失败: %v", err)
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	shutdownTracing, err := observability.InitTracing(cfg.Tracing, cfg.Server.Mode)
	if err != nil {
		stdLog.Fatalf("链路追踪初始化失败: %v", err)
	}

	runErr := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(ctx); err != nil {
		logger.Warnw("tracing_shutdown_failed", "error", err)
	}
	if runErr != nil {
		stdLog.Fatalf("服务运行失败: %v", runErr)
	}
}

func printStartupBanner(mode string) {
	fmt.Println(ansiCyan + ansiBold + "blogicum" + ansiReset + ansiDim + " · mode=" + mode + ansiReset)
	fmt.Println(ansiDim + "--------------------------------------------------------------" + ansiReset)
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	return strings.Contains(normalized, "change-me") ||
		strings.Contains(normalized, "change-in-production") ||
		strings.Contains(normalized, "your-secret-key")
}
