//go:build wireinject
// +build wireinject

// Wire依赖注入配置
//
// 使用方式：
// Step 1: 修改本文件的Provider定义
// Step 2: 运行 `wire gen ./cmd/api`
// Step 3: Wire生成wire_gen.go，包含完整的依赖创建代码
//
// 说明：Injector只负责HTTP应用的装配（*gin.Engine）。
// MQ消费者（邮件通知）生命周期与HTTP引擎不同，在main.go中单独启动。

package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"

	appadmin "github.com/zhangxy/bookshop/internal/application/admin"
	appcart "github.com/zhangxy/bookshop/internal/application/cart"
	appcategory "github.com/zhangxy/bookshop/internal/application/category"
	apporder "github.com/zhangxy/bookshop/internal/application/order"
	appproduct "github.com/zhangxy/bookshop/internal/application/product"
	appuser "github.com/zhangxy/bookshop/internal/application/user"
	"github.com/zhangxy/bookshop/internal/domain/cart"
	"github.com/zhangxy/bookshop/internal/domain/order"
	"github.com/zhangxy/bookshop/internal/domain/product"
	"github.com/zhangxy/bookshop/internal/domain/storage"
	"github.com/zhangxy/bookshop/internal/domain/user"
	"github.com/zhangxy/bookshop/internal/infrastructure/config"
	"github.com/zhangxy/bookshop/internal/infrastructure/notification"
	"github.com/zhangxy/bookshop/internal/infrastructure/persistence/mysql"
	"github.com/zhangxy/bookshop/internal/infrastructure/persistence/redis"
	httpiface "github.com/zhangxy/bookshop/internal/interface/http"
	"github.com/zhangxy/bookshop/internal/interface/http/handler"
	"github.com/zhangxy/bookshop/internal/interface/http/middleware"
	"github.com/zhangxy/bookshop/pkg/jwt"
	"github.com/zhangxy/bookshop/pkg/mq"
)

// infrastructureSet 基础设施层：配置、数据库、Redis
var infrastructureSet = wire.NewSet(
	config.Load,
	mysql.NewDB,
	redis.NewClient,
)

// repositorySet 仓储层
var repositorySet = wire.NewSet(
	mysql.NewTxManager,
	mysql.NewUserRepository,
	mysql.NewCategoryRepository,
	mysql.NewProductRepository,
	mysql.NewCartRepository,
	mysql.NewOrderRepository,
	mysql.NewSettingRepository,
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	user.NewService,
)

// applicationSet 应用层用例
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewProfileUseCase,
	provideLogoutUseCase,

	appproduct.NewListProductsUseCase,
	appproduct.NewGetProductUseCase,
	appproduct.NewManageProductUseCase,
	appcategory.NewCategoryUseCase,
	appcart.NewCartUseCase,

	provideEventPublisher,
	provideTransitioner,
	provideCheckoutUseCase,
	apporder.NewReceiveOrderUseCase,
	apporder.NewCancelOrderUseCase,
	provideReturnOrderUseCase,
	apporder.NewUpdateStatusUseCase,
	apporder.NewOrderQueries,

	appadmin.NewAnalyticsUseCase,
	appadmin.NewListUsersUseCase,
	appadmin.NewSettingsUseCase,
)

// middlewareSet 中间件：JWT管理器、Session存储、认证
var middlewareSet = wire.NewSet(
	provideJWTManager,
	provideSessionStore,
	middleware.NewAuthMiddleware,
)

// handlerSet HTTP处理器
var handlerSet = wire.NewSet(
	handler.NewUserHandler,
	handler.NewProductHandler,
	handler.NewCategoryHandler,
	handler.NewCartHandler,
	handler.NewOrderHandler,
	handler.NewAdminHandler,
	provideUploadHandler,
)

// 以下Provider从Config提取标量参数，Wire无法自动拆解结构体字段

func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client)
}

func provideLogoutUseCase(sessionStore *redis.SessionStore, cfg *config.Config) *appuser.LogoutUseCase {
	return appuser.NewLogoutUseCase(sessionStore, cfg.JWT.AccessTokenExpire)
}

func provideUploadHandler(cfg *config.Config) *handler.UploadHandler {
	return handler.NewUploadHandler(cfg.Upload)
}

// provideEventPublisher MQ未配置时退化为空发布
func provideEventPublisher(cfg *config.Config) (notification.EventPublisher, error) {
	if cfg.MQ.URL == "" {
		return notification.NopEventPublisher{}, nil
	}
	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
	if err != nil {
		return nil, err
	}
	return notification.NewEventPublisher(publisher), nil
}

func provideTransitioner(
	orderRepo order.Repository,
	productRepo product.Repository,
	userRepo user.Repository,
	txManager storage.TxManager,
	publisher notification.EventPublisher,
) *apporder.Transitioner {
	return apporder.NewTransitioner(orderRepo, productRepo, userRepo, txManager, publisher)
}

func provideCheckoutUseCase(
	orderRepo order.Repository,
	productRepo product.Repository,
	cartRepo cart.Repository,
	txManager storage.TxManager,
	cfg *config.Config,
) *apporder.CheckoutUseCase {
	return apporder.NewCheckoutUseCase(orderRepo, productRepo, cartRepo, txManager, cfg.Order.AllowOversell)
}

func provideReturnOrderUseCase(
	orderRepo order.Repository,
	transitioner *apporder.Transitioner,
	cfg *config.Config,
) *apporder.ReturnOrderUseCase {
	return apporder.NewReturnOrderUseCase(orderRepo, transitioner,
		time.Duration(cfg.Order.ReturnWindowDays)*24*time.Hour)
}

// InitializeApp 组装整个HTTP应用
// Wire在编译期分析依赖链并生成wire_gen.go
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		httpiface.NewRouter,
	)
	return nil, nil
}
