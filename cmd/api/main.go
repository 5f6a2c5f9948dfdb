package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

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
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/response"
)

// main 主程序入口(手动依赖注入,wire.go提供等价的生成式写法)
// 依赖注入链: Repository ← Service/UseCase ← Handler
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	fmt.Printf("  - Redis: %s\n", cfg.Redis.Addr())

	// 2. 初始化Prometheus指标
	metrics.InitMetrics()

	// 3. 初始化数据库连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	// 4. 初始化Redis连接
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}

	// 5. 初始化事件发布器(RabbitMQ)
	// Broker不可用不阻塞启动:事件发布是尽力而为的旁路
	var events event.Publisher
	if publisher, err := infraevent.NewRabbitMQPublisher(cfg); err != nil {
		log.Printf("警告: 初始化事件发布器失败,事件发布被禁用: %v", err)
	} else {
		events = publisher
		defer publisher.Close()
	}

	// 6. 依赖注入(手动组装)

	// 基础设施层
	authorRepo := mysql.NewAuthorRepository(db)
	publisherRepo := mysql.NewPublisherRepository(db)
	bookRepo := mysql.NewBookRepository(db)
	memberRepo := mysql.NewMemberRepository(db)
	loanRepo := mysql.NewLoanRepository(db)
	photoRepo := mysql.NewPhotoRepository(db)
	txManager := mysql.NewTxManager(db)
	sessionStore := redis.NewSessionStore(redisClient)
	bookCache := redis.NewBookCache(redisClient)
	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)

	// 领域层
	memberService := member.NewService(memberRepo)

	// 应用层:目录
	registerAuthorUseCase := appcatalog.NewRegisterAuthorUseCase(authorRepo)
	updateAuthorUseCase := appcatalog.NewUpdateAuthorUseCase(authorRepo)
	registerPublisherUseCase := appcatalog.NewRegisterPublisherUseCase(publisherRepo)
	updatePublisherUseCase := appcatalog.NewUpdatePublisherUseCase(publisherRepo)
	registerBookUseCase := appcatalog.NewRegisterBookUseCase(bookRepo, authorRepo, publisherRepo, txManager)
	updateBookUseCase := appcatalog.NewUpdateBookUseCase(bookRepo, authorRepo, publisherRepo, loanRepo, txManager, bookCache)
	setBookCoverUseCase := appcatalog.NewSetBookCoverUseCase(bookRepo, photoRepo, txManager, bookCache)
	getPhotoUseCase := appcatalog.NewGetPhotoUseCase(photoRepo)
	catalogQueries := appcatalog.NewQueries(authorRepo, publisherRepo, bookRepo, bookCache)

	// 应用层:借阅
	createLoanUseCase := apploan.NewCreateLoanUseCase(loanRepo, bookRepo, memberRepo, txManager, events, bookCache)
	renewLoanUseCase := apploan.NewRenewLoanUseCase(loanRepo, txManager, events)
	returnLoanUseCase := apploan.NewReturnLoanUseCase(loanRepo, bookRepo, txManager, events, bookCache)
	deleteLoanUseCase := apploan.NewDeleteLoanUseCase(loanRepo, bookRepo, txManager, events, bookCache)
	loanQueries := apploan.NewQueries(loanRepo)

	// 应用层:生命周期级联
	lifecycleEngine := lifecycle.NewEngine(authorRepo, publisherRepo, bookRepo, loanRepo, txManager, events, bookCache)

	// 应用层:会员
	registerMemberUseCase := appmember.NewRegisterUseCase(memberService)
	loginUseCase := appmember.NewLoginUseCase(memberService, jwtManager, sessionStore)
	logoutUseCase := appmember.NewLogoutUseCase(sessionStore)
	setMemberPhotoUseCase := appmember.NewSetPhotoUseCase(memberRepo, photoRepo, txManager)
	setMemberActiveUseCase := appmember.NewSetActiveUseCase(memberRepo)
	memberQueries := appmember.NewQueries(memberRepo)

	// 接口层
	memberHandler := handler.NewMemberHandler(
		registerMemberUseCase, loginUseCase, logoutUseCase,
		setMemberPhotoUseCase, setMemberActiveUseCase, memberQueries,
	)
	authorHandler := handler.NewAuthorHandler(registerAuthorUseCase, updateAuthorUseCase, catalogQueries, lifecycleEngine)
	publisherHandler := handler.NewPublisherHandler(registerPublisherUseCase, updatePublisherUseCase, catalogQueries, lifecycleEngine)
	bookHandler := handler.NewBookHandler(registerBookUseCase, updateBookUseCase, setBookCoverUseCase, catalogQueries, lifecycleEngine)
	loanHandler := handler.NewLoanHandler(createLoanUseCase, renewLoanUseCase, returnLoanUseCase, deleteLoanUseCase, loanQueries)
	photoHandler := handler.NewPhotoHandler(getPhotoUseCase)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	// 7. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.Metrics())

	// 8. 注册路由
	registerRoutes(r, memberHandler, authorHandler, publisherHandler, bookHandler, loanHandler, photoHandler, authMiddleware)

	// 9. 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("\n服务启动成功!\n")
	fmt.Printf("   访问地址: http://localhost%s\n", addr)
	fmt.Printf("   健康检查: http://localhost%s/ping\n", addr)
	fmt.Printf("   API文档:  http://localhost%s/swagger/index.html\n", addr)
	fmt.Printf("   指标端点: http://localhost%s/metrics\n\n", addr)

	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务失败: %v", err)
	}
}

// registerRoutes 注册路由
// 读接口公开,写接口需要登录
func registerRoutes(
	r *gin.Engine,
	memberHandler *handler.MemberHandler,
	authorHandler *handler.AuthorHandler,
	publisherHandler *handler.PublisherHandler,
	bookHandler *handler.BookHandler,
	loanHandler *handler.LoanHandler,
	photoHandler *handler.PhotoHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标端点
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		// 会员模块
		members := v1.Group("/members")
		{
			members.POST("/register", memberHandler.Register)
			members.POST("/login", memberHandler.Login)

			authorized := members.Group("")
			authorized.Use(authMiddleware.RequireAuth())
			{
				authorized.POST("/logout", memberHandler.Logout)
				authorized.GET("/me", memberHandler.Profile)
				authorized.POST("/me/photo", memberHandler.UploadPhoto)
				authorized.GET("", memberHandler.ListMembers)
				authorized.PUT("/:id/active", memberHandler.SetActive)
			}
		}

		// 作者模块
		authors := v1.Group("/authors")
		{
			authors.GET("", authorHandler.List)
			authors.GET("/:id", authorHandler.Get)

			authorized := authors.Group("")
			authorized.Use(authMiddleware.RequireAuth())
			{
				authorized.POST("", authorHandler.Register)
				authorized.PUT("/:id", authorHandler.Update)
				authorized.POST("/:id/deactivate", authorHandler.Deactivate)
				authorized.POST("/:id/activate", authorHandler.Activate)
				authorized.DELETE("/:id", authorHandler.Delete)
			}
		}

		// 出版社模块
		publishers := v1.Group("/publishers")
		{
			publishers.GET("", publisherHandler.List)
			publishers.GET("/:id", publisherHandler.Get)

			authorized := publishers.Group("")
			authorized.Use(authMiddleware.RequireAuth())
			{
				authorized.POST("", publisherHandler.Register)
				authorized.PUT("/:id", publisherHandler.Update)
				authorized.POST("/:id/deactivate", publisherHandler.Deactivate)
				authorized.POST("/:id/activate", publisherHandler.Activate)
				authorized.DELETE("/:id", publisherHandler.Delete)
			}
		}

		// 图书模块
		books := v1.Group("/books")
		{
			books.GET("", bookHandler.List)
			books.GET("/:id", bookHandler.Get)

			authorized := books.Group("")
			authorized.Use(authMiddleware.RequireAuth())
			{
				authorized.POST("", bookHandler.Register)
				authorized.PUT("/:id", bookHandler.Update)
				authorized.POST("/:id/cover", bookHandler.UploadCover)
				authorized.POST("/:id/deactivate", bookHandler.Deactivate)
				authorized.POST("/:id/activate", bookHandler.Activate)
				authorized.DELETE("/:id", bookHandler.Delete)
			}
		}

		// 借阅模块(全部需要登录)
		loans := v1.Group("/loans")
		loans.Use(authMiddleware.RequireAuth())
		{
			loans.POST("", loanHandler.Create)
			loans.GET("", loanHandler.List)
			loans.GET("/:id", loanHandler.Get)
			loans.POST("/:id/renew", loanHandler.Renew)
			loans.POST("/:id/return", loanHandler.Return)
			loans.DELETE("/:id", loanHandler.Delete)
		}

		// 图片模块(公开读取)
		v1.GET("/photos/:id", photoHandler.Get)
	}
}
