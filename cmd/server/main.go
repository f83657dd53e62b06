package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/leon37/socializer/internal/api"
	"github.com/leon37/socializer/internal/api/controller"
	"github.com/leon37/socializer/internal/api/middleware"
	"github.com/leon37/socializer/internal/config"
	"github.com/leon37/socializer/internal/infrastructure/database"
	"github.com/leon37/socializer/internal/infrastructure/imagestore"
	"github.com/leon37/socializer/internal/repository"
	"github.com/leon37/socializer/internal/service"
)

// @title           Socializer API
// @version         1.0
// @description     基于 Go + Gin + MySQL + MinIO 的社交网络后端

// @host            localhost:8080
// @BasePath        /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 请在输入框中输入 "Bearer <token>" (浏览器端走 Cookie，不用填)

func main() {
	// 1. 初始化 Logger
	// JSONHandler 方便日志采集，AddSource 带上文件名和行号
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
		Level:     slog.LevelDebug, // 开发阶段设为 Debug，生产环境改为 Info
	}))
	slog.SetDefault(logger)

	slog.Info("Socializer 系统启动中...")

	conf, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("无法加载配置: %v", err)
	}
	log.Println("配置加载成功")

	// 2. Infra Initialization
	db := database.NewMySQLConnection(conf.Database.DSN) // 这里会自动建表

	store, err := imagestore.NewMinioStore(conf.Storage)
	if err != nil {
		log.Fatalf("Failed to init image store: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.EnsureBucket(ctx); err != nil {
		// bucket 建不出来后面传图必挂，直接崩盘退出
		log.Fatalf("Failed to init image bucket: %v", err)
	}

	if conf.Server.Port != ":8080" { // 简单的判断，生产环境建议用配置字段
		gin.SetMode(gin.ReleaseMode)
	}

	// 3. Layer Wiring (依赖注入)
	userRepo := repository.NewUserRepo(db)
	postRepo := repository.NewPostRepo(db)

	authSvc := service.NewAuthService(userRepo, store, conf.JWT)
	userSvc := service.NewUserService(userRepo, store)
	postSvc := service.NewPostService(postRepo, userRepo, store)

	userController := controller.NewUserController(authSvc, userSvc, conf.JWT)
	postController := controller.NewPostController(postSvc)

	// 4. Server Start
	r := gin.Default()
	r.Use(middleware.Cors())
	api.RegisterRoutes(r, authSvc, userController, postController)

	slog.Info("Socializer Web Server 启动中", "port", conf.Server.Port)
	if err := r.Run(conf.Server.Port); err != nil {
		slog.Error("服务器启动失败", "error", err)
	}
}
