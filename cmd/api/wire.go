//go:build wireinject
// +build wireinject

package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"

	appcatalog "github.com/xiebiao/library/internal/application/catalog"
	"github.com/xiebiao/library/internal/application/lifecycle"
	apploan "github.com/xiebiao/library/internal/application/loan"
	appmember "github.com/xiebiao/library/internal/application/member"
	"github.com/xiebiao/library/internal/domain/event"
	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/internal/infrastructure/config"
	infraevent "github.com/xiebiao/library/internal/infrastructure/event"
	"github.com/xiebiao/library/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/pkg/jwt"
)

// wire.go 使用google/wire生成依赖注入代码
// 运行 go generate ./cmd/api 或 wire ./cmd/api 生成wire_gen.go
// main.go中的手动组装与这里的提供者集合保持一致

// infrastructureSet 基础设施提供者
var infrastructureSet = wire.NewSet(
	config.Load,
	mysql.NewDB,
	redis.NewClient,
	provideJWTManager,
	provideSessionStore,
	provideBookCache,
	provideEventPublisher,
)

// repositorySet 仓储提供者
// 仓储构造函数直接返回领域接口,事务管理器与缓存按各应用包的接口绑定
var repositorySet = wire.NewSet(
	mysql.NewAuthorRepository,
	mysql.NewPublisherRepository,
	mysql.NewBookRepository,
	mysql.NewMemberRepository,
	mysql.NewLoanRepository,
	mysql.NewPhotoRepository,
	mysql.NewTxManager,
	wire.Bind(new(appcatalog.TxManager), new(*mysql.TxManager)),
	wire.Bind(new(apploan.TxManager), new(*mysql.TxManager)),
	wire.Bind(new(appmember.TxManager), new(*mysql.TxManager)),
	wire.Bind(new(lifecycle.TxManager), new(*mysql.TxManager)),
	wire.Bind(new(appcatalog.BookCache), new(*redis.BookCache)),
	wire.Bind(new(apploan.BookCache), new(*redis.BookCache)),
	wire.Bind(new(lifecycle.BookCache), new(*redis.BookCache)),
)

// domainSet 领域服务提供者
var domainSet = wire.NewSet(
	member.NewService,
)

// applicationSet 应用层提供者
var applicationSet = wire.NewSet(
	appcatalog.NewRegisterAuthorUseCase,
	appcatalog.NewUpdateAuthorUseCase,
	appcatalog.NewRegisterPublisherUseCase,
	appcatalog.NewUpdatePublisherUseCase,
	appcatalog.NewRegisterBookUseCase,
	appcatalog.NewUpdateBookUseCase,
	appcatalog.NewSetBookCoverUseCase,
	appcatalog.NewGetPhotoUseCase,
	appcatalog.NewQueries,
	apploan.NewCreateLoanUseCase,
	apploan.NewRenewLoanUseCase,
	apploan.NewReturnLoanUseCase,
	apploan.NewDeleteLoanUseCase,
	apploan.NewQueries,
	lifecycle.NewEngine,
	appmember.NewRegisterUseCase,
	appmember.NewLoginUseCase,
	appmember.NewLogoutUseCase,
	appmember.NewSetPhotoUseCase,
	appmember.NewSetActiveUseCase,
	appmember.NewQueries,
)

// middlewareSet 中间件提供者
var middlewareSet = wire.NewSet(
	middleware.NewAuthMiddleware,
)

// handlerSet 处理器提供者
var handlerSet = wire.NewSet(
	handler.NewMemberHandler,
	handler.NewAuthorHandler,
	handler.NewPublisherHandler,
	handler.NewBookHandler,
	handler.NewLoanHandler,
	handler.NewPhotoHandler,
)

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideSessionStore 创建会话存储
func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client)
}

// provideBookCache 创建图书缓存
func provideBookCache(client *goredis.Client) *redis.BookCache {
	return redis.NewBookCache(client)
}

// provideEventPublisher 创建事件发布器
// Broker不可用时返回nil接口,发布方按nil跳过事件
func provideEventPublisher(cfg *config.Config) event.Publisher {
	publisher, err := infraevent.NewRabbitMQPublisher(cfg)
	if err != nil {
		log.Printf("警告: 初始化事件发布器失败,事件发布被禁用: %v", err)
		return nil
	}
	return publisher
}

// provideGinEngine 创建并配置Gin引擎
func provideGinEngine(
	cfg *config.Config,
	memberHandler *handler.MemberHandler,
	authorHandler *handler.AuthorHandler,
	publisherHandler *handler.PublisherHandler,
	bookHandler *handler.BookHandler,
	loanHandler *handler.LoanHandler,
	photoHandler *handler.PhotoHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.Metrics())

	registerRoutes(r, memberHandler, authorHandler, publisherHandler, bookHandler, loanHandler, photoHandler, authMiddleware)
	return r
}

// InitializeApp 组装完整应用
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		provideGinEngine,
	)
	return nil, nil
}
