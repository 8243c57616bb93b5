// Package main 是应用程序的入口点。
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"portfolio-ai-go/internal/cache"
	"portfolio-ai-go/internal/config"
	"portfolio-ai-go/internal/handler"
	"portfolio-ai-go/internal/middleware"
	"portfolio-ai-go/internal/model"
	"portfolio-ai-go/internal/pipeline"
	"portfolio-ai-go/internal/repository"
	"portfolio-ai-go/internal/service"
	"portfolio-ai-go/pkg/database"
	"portfolio-ai-go/pkg/embedding"
	"portfolio-ai-go/pkg/es"
	"portfolio-ai-go/pkg/kafka"
	"portfolio-ai-go/pkg/llm"
	"portfolio-ai-go/pkg/log"
	"portfolio-ai-go/pkg/mailer"
	"portfolio-ai-go/pkg/storage"
	"portfolio-ai-go/pkg/token"
	"portfolio-ai-go/pkg/websearch"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. 初始化配置
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	// 2. 初始化日志记录器
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync() // 确保在程序退出时刷新所有缓冲的日志条目
	log.Info("日志记录器初始化成功")

	// 3. 初始化数据库、Redis、MinIO、ES 与 Kafka
	database.InitMySQL(cfg.Database.MySQL.DSN)
	if err := database.DB.AutoMigrate(&model.ChatLog{}, &model.EmailRecord{}); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}
	database.InitRedis(cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB)
	storage.InitMinIO(cfg.MinIO)
	if err := es.InitES(cfg.Elasticsearch, cfg.Embedding.Dimensions); err != nil {
		log.Fatalf("es 初始化失败: %v", err)
	}
	kafka.InitProducer(cfg.Kafka)

	// 4. 初始化 Repository
	conversationRepo := repository.NewConversationRepository(database.RDB)
	chatLogRepo := repository.NewChatLogRepository(database.DB)
	emailRepo := repository.NewEmailRepository(database.DB)

	// 5. 初始化 Service (依赖注入)
	jwtManager := token.NewJWTManager(cfg.JWT.Secret, cfg.JWT.VisitorTokenExpireMinutes, cfg.JWT.AdminTokenExpireHours)
	embeddingClient := embedding.NewClient(cfg.Embedding)
	llmClient := llm.NewClient(cfg.LLM)
	searchClient := websearch.NewClient(cfg.Search)
	mailClient := mailer.NewClient(cfg.Mail)

	cacheTTL := time.Duration(cfg.Chat.CacheTTLMinutes) * time.Minute
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Minute
	}
	contextCache := cache.NewMemoryCache(cacheTTL)

	retrievalService := service.NewRetrievalService(embeddingClient, es.ESClient, cfg.Elasticsearch)
	chatService := service.NewChatService(retrievalService, llmClient, searchClient, contextCache, conversationRepo, service.NewKafkaEventPublisher())
	themeService := service.NewThemeService(retrievalService, llmClient)
	emailService := service.NewEmailService(llmClient, mailClient, emailRepo)
	adminService := service.NewAdminService(jwtManager, chatLogRepo, emailRepo, conversationRepo)

	// 6. 启动后台 Kafka 消费者，把对话事件落库
	recorder := pipeline.NewRecorder(chatLogRepo)
	go kafka.StartConsumer(cfg.Kafka, recorder)

	// 7. 设置 Gin 模式并创建路由引擎
	gin.SetMode(cfg.Server.Mode)
	r := gin.New() // 使用 New() 创建一个不带默认中间件的引擎
	r.Use(middleware.RequestLogger(), gin.Recovery())

	// 8. 注册路由
	chatHandler := handler.NewChatHandler(chatService, jwtManager)
	authHandler := handler.NewAuthHandler(jwtManager)
	emailHandler := handler.NewEmailHandler(emailService)
	themeHandler := handler.NewThemeHandler(themeService)
	resumeHandler := handler.NewResumeHandler()
	adminHandler := handler.NewAdminHandler(adminService)

	// CORS 预检统一处理；gin 的路由树按方法独立，不会与下面的路由冲突
	r.OPTIONS("/api/*any", middleware.PreflightHandler(cfg.CORS.AllowedOrigins))

	api := r.Group("/api", middleware.OriginGuard(cfg.CORS.AllowedOrigins))
	{
		api.POST("/auth", authHandler.IssueToken)

		// 聊天入口需要访客 token
		authed := api.Group("/")
		authed.Use(middleware.AuthMiddleware(jwtManager))
		{
			authed.POST("/chat", chatHandler.Chat)
		}
		// WebSocket 入口的 token 走路径参数，由 handler 自行校验
		api.GET("/chat/ws/:token", chatHandler.Stream)

		api.POST("/generate-email", emailHandler.Generate)
		api.POST("/send-email", emailHandler.Send)
		api.POST("/theme", themeHandler.Generate)
		api.GET("/resume", resumeHandler.GetDownloadURL)

		admin := api.Group("/admin")
		{
			admin.POST("/login", adminHandler.Login)

			// 管理接口需要同时通过认证和管理员授权两个中间件
			authedAdmin := admin.Group("/")
			authedAdmin.Use(middleware.AuthMiddleware(jwtManager), middleware.AdminAuthMiddleware())
			{
				authedAdmin.GET("/conversations", adminHandler.ListConversations)
				authedAdmin.GET("/emails", adminHandler.ListEmails)
				authedAdmin.GET("/sessions", adminHandler.ListSessions)
			}
		}
	}

	// 9. 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	// 等待中断信号以实现优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("HTTP 服务器关闭失败: %v", err)
	}
	log.Info("服务已优雅关闭")
}
