package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"

	_ "github.com/zhangxy/bookshop/docs" // swag生成的接口文档
	appadmin "github.com/zhangxy/bookshop/internal/application/admin"
	appcart "github.com/zhangxy/bookshop/internal/application/cart"
	appcategory "github.com/zhangxy/bookshop/internal/application/category"
	apporder "github.com/zhangxy/bookshop/internal/application/order"
	appproduct "github.com/zhangxy/bookshop/internal/application/product"
	appuser "github.com/zhangxy/bookshop/internal/application/user"
	"github.com/zhangxy/bookshop/internal/domain/user"
	"github.com/zhangxy/bookshop/internal/infrastructure/config"
	"github.com/zhangxy/bookshop/internal/infrastructure/notification"
	"github.com/zhangxy/bookshop/internal/infrastructure/persistence/mysql"
	"github.com/zhangxy/bookshop/internal/infrastructure/persistence/redis"
	httpiface "github.com/zhangxy/bookshop/internal/interface/http"
	"github.com/zhangxy/bookshop/internal/interface/http/handler"
	"github.com/zhangxy/bookshop/internal/interface/http/middleware"
	"github.com/zhangxy/bookshop/pkg/jwt"
	"github.com/zhangxy/bookshop/pkg/logger"
	"github.com/zhangxy/bookshop/pkg/mq"
	"github.com/zhangxy/bookshop/pkg/tracing"
)

// @title 网上书城 API
// @version 1.0
// @description 网上书城后端服务：商品、购物车、订单、积分、后台管理
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// main 主程序入口
// 说明：手动依赖注入（Wire注入器见wire.go，两者保持一致）
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 2. 初始化日志
	if err := logger.Init(cfg.Server.Mode); err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer logger.Sync()

	logger.L().Info("配置加载成功",
		zap.Int("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("database", fmt.Sprintf("%s:%d/%s", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)),
		zap.String("redis", cfg.Redis.Addr()),
	)

	// 3. 初始化链路追踪（可选）
	if cfg.Tracing.CollectorAddr != "" {
		shutdown, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.CollectorAddr)
		if err != nil {
			log.Fatalf("初始化链路追踪失败: %v", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(ctx); err != nil {
				logger.L().Warn("关闭链路追踪失败", zap.Error(err))
			}
		}()
	}

	// 4. 初始化数据库与Redis连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}

	// 5. 初始化消息队列（可选，URL为空时订单事件退化为空发布）
	var eventPublisher notification.EventPublisher = notification.NopEventPublisher{}
	if cfg.MQ.URL != "" {
		publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
		if err != nil {
			log.Fatalf("初始化MQ发布者失败: %v", err)
		}
		defer publisher.Close()
		eventPublisher = notification.NewEventPublisher(publisher)

		// 邮件通知消费者：仅在SMTP配置齐全时启动
		if cfg.SMTP.Enabled() {
			consumer, err := mq.NewConsumer(
				cfg.MQ.URL, cfg.MQ.Exchange, "topic", cfg.MQ.Queue,
				[]string{notification.RouteOrderShipping, notification.RouteOrderCompleted},
			)
			if err != nil {
				log.Fatalf("初始化MQ消费者失败: %v", err)
			}
			defer consumer.Close()

			mailer := notification.NewMailer(consumer, cfg.SMTP)
			go func() {
				if err := mailer.Run(context.Background()); err != nil {
					logger.L().Error("邮件消费者退出", zap.Error(err))
				}
			}()
		}
	}

	// 6. 依赖注入（手动组装）
	// Repository ← Service ← UseCase ← Handler

	// 基础设施层
	txManager := mysql.NewTxManager(db)
	userRepo := mysql.NewUserRepository(db)
	categoryRepo := mysql.NewCategoryRepository(db)
	productRepo := mysql.NewProductRepository(db)
	cartRepo := mysql.NewCartRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	settingRepo := mysql.NewSettingRepository(db)
	sessionStore := redis.NewSessionStore(redisClient)
	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)

	// 领域层
	userService := user.NewService(userRepo)

	// 应用层
	registerUseCase := appuser.NewRegisterUseCase(userService)
	loginUseCase := appuser.NewLoginUseCase(userService, jwtManager, sessionStore)
	logoutUseCase := appuser.NewLogoutUseCase(sessionStore, cfg.JWT.AccessTokenExpire)
	profileUseCase := appuser.NewProfileUseCase(userRepo)

	listProductsUseCase := appproduct.NewListProductsUseCase(productRepo)
	getProductUseCase := appproduct.NewGetProductUseCase(productRepo)
	manageProductUseCase := appproduct.NewManageProductUseCase(productRepo, categoryRepo)
	categoryUseCase := appcategory.NewCategoryUseCase(categoryRepo, productRepo)
	cartUseCase := appcart.NewCartUseCase(cartRepo, productRepo)

	transitioner := apporder.NewTransitioner(orderRepo, productRepo, userRepo, txManager, eventPublisher)
	checkoutUseCase := apporder.NewCheckoutUseCase(orderRepo, productRepo, cartRepo, txManager, cfg.Order.AllowOversell)
	receiveUseCase := apporder.NewReceiveOrderUseCase(orderRepo, transitioner)
	cancelUseCase := apporder.NewCancelOrderUseCase(orderRepo, transitioner)
	returnUseCase := apporder.NewReturnOrderUseCase(orderRepo, transitioner,
		time.Duration(cfg.Order.ReturnWindowDays)*24*time.Hour)
	updateStatusUseCase := apporder.NewUpdateStatusUseCase(orderRepo, transitioner)
	orderQueries := apporder.NewOrderQueries(orderRepo)

	analyticsUseCase := appadmin.NewAnalyticsUseCase(orderRepo, userRepo)
	listUsersUseCase := appadmin.NewListUsersUseCase(userRepo)
	settingsUseCase := appadmin.NewSettingsUseCase(settingRepo)

	// 接口层
	userHandler := handler.NewUserHandler(registerUseCase, loginUseCase, logoutUseCase, profileUseCase, jwtManager)
	productHandler := handler.NewProductHandler(listProductsUseCase, getProductUseCase, manageProductUseCase)
	categoryHandler := handler.NewCategoryHandler(categoryUseCase)
	cartHandler := handler.NewCartHandler(cartUseCase)
	orderHandler := handler.NewOrderHandler(checkoutUseCase, receiveUseCase, cancelUseCase, returnUseCase, updateStatusUseCase, orderQueries)
	adminHandler := handler.NewAdminHandler(analyticsUseCase, listUsersUseCase, settingsUseCase)
	uploadHandler := handler.NewUploadHandler(cfg.Upload)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	// 7. 装配路由并启动服务
	r := httpiface.NewRouter(cfg,
		userHandler, productHandler, categoryHandler, cartHandler,
		orderHandler, adminHandler, uploadHandler, authMiddleware)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.L().Info("服务启动",
		zap.String("addr", addr),
		zap.String("swagger", fmt.Sprintf("http://localhost%s/swagger/index.html", addr)),
	)

	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务失败: %v", err)
	}
}
