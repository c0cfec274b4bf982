// KioskService 主程序
// 功能：提供点单后端服务，包括商品目录、库存扣减与下单
// 架构：基于 DDD + Gin HTTP + GORM + Kafka
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	notifapp "github.com/wyfcoding/cafekiosk/internal/notification/application"
	"github.com/wyfcoding/cafekiosk/internal/notification/infrastructure/sender"
	orderapp "github.com/wyfcoding/cafekiosk/internal/order/application"
	orderdomain "github.com/wyfcoding/cafekiosk/internal/order/domain"
	"github.com/wyfcoding/cafekiosk/internal/order/infrastructure/messaging"
	ordermysql "github.com/wyfcoding/cafekiosk/internal/order/infrastructure/persistence/mysql"
	orderhttp "github.com/wyfcoding/cafekiosk/internal/order/interfaces/http"
	productapp "github.com/wyfcoding/cafekiosk/internal/product/application"
	productdomain "github.com/wyfcoding/cafekiosk/internal/product/domain"
	productmysql "github.com/wyfcoding/cafekiosk/internal/product/infrastructure/persistence/mysql"
	producthttp "github.com/wyfcoding/cafekiosk/internal/product/interfaces/http"
	stockdomain "github.com/wyfcoding/cafekiosk/internal/stock/domain"
	stockmysql "github.com/wyfcoding/cafekiosk/internal/stock/infrastructure/persistence/mysql"
	"github.com/wyfcoding/cafekiosk/pkg/config"
	"github.com/wyfcoding/cafekiosk/pkg/db"
	"github.com/wyfcoding/cafekiosk/pkg/logger"
	"github.com/wyfcoding/cafekiosk/pkg/metrics"
	"github.com/wyfcoding/cafekiosk/pkg/middleware"
	"github.com/wyfcoding/cafekiosk/pkg/mq"
)

func main() {
	// 1. 加载配置
	configPath := "configs/kiosk/config.toml"
	if v := os.Getenv("APP_CONFIG"); v != "" {
		configPath = v
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	loggerCfg := logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		FilePath:   cfg.Logger.FilePath,
		MaxSize:    cfg.Logger.MaxSize,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAge:     cfg.Logger.MaxAge,
		Compress:   cfg.Logger.Compress,
		WithCaller: cfg.Logger.WithCaller,
	}
	if err := logger.Init(loggerCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	logger.Info(ctx, "Starting KioskService",
		"service", cfg.ServiceName,
		"version", cfg.Version,
		"environment", cfg.Environment,
	)

	// 3. 初始化数据库
	dbCfg := db.Config{
		Driver:             cfg.Database.Driver,
		DSN:                cfg.Database.DSN,
		MaxOpenConns:       cfg.Database.MaxOpenConns,
		MaxIdleConns:       cfg.Database.MaxIdleConns,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		LogEnabled:         cfg.Database.LogEnabled,
		SlowQueryThreshold: cfg.Database.SlowQueryThreshold,
	}
	database, err := db.Init(dbCfg)
	if err != nil {
		logger.Fatal(ctx, "Failed to initialize database", "error", err)
	}
	defer database.Close()

	if err := database.AutoMigrate(
		&productdomain.Product{},
		&stockdomain.Stock{},
		&orderdomain.Order{},
		&orderdomain.OrderProduct{},
	); err != nil {
		logger.Fatal(ctx, "Failed to migrate database schema", "error", err)
	}

	// 4. 初始化 Kafka 事件发布（可选）
	var publisher orderapp.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := mq.NewProducer(mq.KafkaConfig{
			Brokers:      cfg.Kafka.Brokers,
			MaxRetries:   cfg.Kafka.MaxRetries,
			RetryBackoff: cfg.Kafka.RetryBackoff,
		})
		if err != nil {
			logger.Fatal(ctx, "Failed to initialize Kafka producer", "error", err)
		}
		defer producer.Close()
		publisher = messaging.NewKafkaEventPublisher(producer, cfg.Kafka.OrderPlacedTopic)
	}

	// 5. 初始化邮件通知（可选）
	var notifier orderapp.Notifier
	if cfg.Mail.Enabled {
		mailSender := sender.NewSMTPSender(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.Username, cfg.Mail.Password, cfg.Mail.From)
		notifier = notifapp.NewOrderMailNotifier(mailSender, cfg.Mail.To)
	}

	// 6. 初始化库存策略
	bearingTypes := make([]productdomain.ProductType, 0, len(cfg.Stock.BearingTypes))
	for _, t := range cfg.Stock.BearingTypes {
		bearingTypes = append(bearingTypes, productdomain.ProductType(t))
	}
	policy := productdomain.NewStockPolicy(bearingTypes...)

	// 7. 初始化仓储与应用服务
	productRepo := productmysql.NewProductRepository(database.DB)
	stockRepo := stockmysql.NewStockRepository(database.DB)
	orderRepo := ordermysql.NewOrderRepository(database.DB)

	productCmd := productapp.NewProductCommandService(productRepo, database)
	productQuery := productapp.NewProductQueryService(productRepo)
	orderCmd := orderapp.NewOrderCommandService(orderRepo, productRepo, stockRepo, policy, database, publisher, notifier)

	// 8. 初始化指标
	var metricsInstance *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsInstance = metrics.New(cfg.ServiceName)
		if err := metricsInstance.Register(); err != nil {
			logger.Fatal(ctx, "Failed to register metrics", "error", err)
		}
		if err := metrics.StartHTTPServer(cfg.Metrics.Port, cfg.Metrics.Path); err != nil {
			logger.Fatal(ctx, "Failed to start metrics HTTP server", "error", err)
		}
	}

	// 9. 创建并启动 HTTP 服务器
	httpServer := createHTTPServer(cfg, productCmd, productQuery, orderCmd, metricsInstance)

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		logger.Info(ctx, "Starting HTTP server", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal(ctx, "HTTP server error", "error", err)
		}
	}()

	// 10. 优雅关停
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info(ctx, "Shutting down KioskService")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "HTTP server shutdown error", "error", err)
	}

	logger.Info(ctx, "KioskService stopped")
}

// createHTTPServer 创建 HTTP 服务器
func createHTTPServer(
	cfg *config.Config,
	productCmd *productapp.ProductCommandService,
	productQuery *productapp.ProductQueryService,
	orderCmd *orderapp.OrderCommandService,
	m *metrics.Metrics,
) *http.Server {
	if cfg.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// 添加中间件
	router.Use(middleware.GinLoggingMiddleware())
	router.Use(middleware.GinRecoveryMiddleware())
	router.Use(middleware.GinCORSMiddleware())
	if m != nil {
		router.Use(middleware.GinMetricsMiddleware(m))
	}

	// 注册路由
	root := router.Group("")
	producthttp.NewProductHandler(productCmd, productQuery, m).RegisterRoutes(root)
	orderhttp.NewOrderHandler(orderCmd, m).RegisterRoutes(root)

	// 健康检查
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   cfg.ServiceName,
			"timestamp": time.Now().Unix(),
		})
	})

	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}
}
