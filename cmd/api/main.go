package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"Fishing_Forum/internal/config"
	"Fishing_Forum/internal/handler"
	"Fishing_Forum/internal/pkg"
	"Fishing_Forum/internal/repository/mysql"
	"Fishing_Forum/internal/repository/redis"
	"Fishing_Forum/internal/router"
	"Fishing_Forum/internal/service"
	"Fishing_Forum/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// 初始化日志
	if err = pkg.InitLogger(cfg.LogLevel, cfg.Debug); err != nil {
		panic(err)
	}
	defer pkg.Logger.Sync()
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	pkg.SetSecrets(cfg.JWTAccessSecret, cfg.JWTRefreshSecret)

	db, err := mysql.InitDB(cfg.DSN(), cfg.Debug)
	if err != nil {
		pkg.Logger.Fatal("connect mysql", zap.Error(err))
	}
	// 自动建表，正式环境可改用 forumctl migrate
	if err = mysql.AutoMigrate(db); err != nil {
		pkg.Logger.Fatal("auto migrate", zap.Error(err))
	}

	// 连接redis
	if err = redis.Init(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
		pkg.Logger.Fatal("connect redis", zap.Error(err))
	}
	defer redis.Close()

	store, err := newFileStore(cfg)
	if err != nil {
		pkg.Logger.Fatal("init storage", zap.String("driver", cfg.StorageDriver), zap.Error(err))
	}

	users := mysql.NewUserRepository(db)
	posts := mysql.NewPostRepository(db)
	themes := mysql.NewThemeRepository(db)
	likes := mysql.NewLikeRepository(db)
	ratings := mysql.NewRatingRepository(db)
	favorites := mysql.NewFavoriteRepository(db)
	outbox := mysql.NewOutboxRepository(db)
	tokens := redis.NewTokenStore(redis.Client)
	likeCounts := redis.NewLikeCountCache(redis.Client)

	accountSvc := service.NewAccountService(users, tokens, redis.NewResetCodeStore(redis.Client), outbox)
	favoriteSvc := service.NewFavoriteService(favorites, posts)
	postSvc := service.NewPostService(posts, mysql.NewPostImageRepository(db), themes, likes, ratings, likeCounts, store)

	r := router.InitRouter(cfg, router.Handlers{
		Account:  handler.NewAccountHandler(accountSvc),
		Theme:    handler.NewThemeHandler(service.NewThemeService(themes, posts)),
		Post:     handler.NewPostHandler(postSvc, favoriteSvc, store),
		Comment:  handler.NewCommentHandler(service.NewCommentService(mysql.NewCommentRepository(db), posts)),
		Like:     handler.NewLikeHandler(service.NewLikeService(likes, posts, likeCounts)),
		Rating:   handler.NewRatingHandler(service.NewRatingService(ratings, posts), accountSvc),
		Favorite: handler.NewFavoriteHandler(favoriteSvc),
		Chat:     handler.NewChatHandler(service.NewChatService(mysql.NewMessageRepository(db), users)),
	}, tokens, accountSvc)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// outbox 投递到 kafka，由 worker 发信
	producer := pkg.NewKafkaProducer(pkg.KafkaConfig{Brokers: cfg.KafkaBrokers, Topic: cfg.KafkaEmailTopic})
	defer producer.Close()
	relayerDone := make(chan struct{})
	go func() {
		defer close(relayerDone)
		service.NewOutboxRelayer(outbox, producer).Run(ctx)
	}()

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		pkg.Logger.Info("server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			pkg.Logger.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	pkg.Logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		pkg.Logger.Error("server forced to shutdown", zap.Error(err))
	}
	<-relayerDone
	pkg.Logger.Info("server exited")
}

func newFileStore(cfg *config.Config) (storage.FileStore, error) {
	if cfg.StorageDriver == "s3" {
		return storage.NewS3Storage(cfg.S3Region, cfg.S3Bucket)
	}
	return storage.NewLocalStorage(cfg.MediaRoot, cfg.MediaURL)
}
