package router

import (
	"Fishing_Forum/internal/config"
	"Fishing_Forum/internal/handler"
	"Fishing_Forum/internal/middleware"
	"Fishing_Forum/internal/repository/interfaces"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers 路由需要的全部 handler
type Handlers struct {
	Account  *handler.AccountHandler
	Theme    *handler.ThemeHandler
	Post     *handler.PostHandler
	Comment  *handler.CommentHandler
	Like     *handler.LikeHandler
	Rating   *handler.RatingHandler
	Favorite *handler.FavoriteHandler
	Chat     *handler.ChatHandler
}

func InitRouter(cfg *config.Config, h Handlers, tokens interfaces.TokenStore, active middleware.ActiveChecker) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(), middleware.Recovery())

	// 配置 CORS
	corsConfig := cors.DefaultConfig()
	if cfg.FrontendURL != "" {
		corsConfig.AllowOrigins = []string{cfg.FrontendURL}
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// 本地存储时由 gin 直接提供上传文件
	if cfg.StorageDriver == "local" {
		r.Static(cfg.MediaURL, cfg.MediaRoot)
	}

	auth := middleware.Auth(tokens)
	optional := middleware.OptionalAuth(tokens)
	writable := middleware.RequireActive(active)

	api := r.Group("/v1/api")

	// 账号相关接口
	account := api.Group("/account")
	{
		account.POST("/register/", h.Account.Register)
		account.GET("/activate/:code/", h.Account.Activate)
		account.POST("/login/", h.Account.Login)
		account.POST("/token/refresh/", h.Account.TokenRefresh)
		account.POST("/logout/", auth, h.Account.Logout)
		account.PUT("/change-password/", auth, h.Account.ChangePassword)
		account.PATCH("/change-password/", auth, h.Account.ChangePassword)
		account.POST("/password_reset/", h.Account.PasswordReset)
		account.POST("/password_reset/confirm/", h.Account.PasswordResetConfirm)
	}

	// 公开接口
	api.GET("/themes/", h.Theme.List)
	api.GET("/themes/:slug/", h.Theme.Posts)
	api.GET("/posts/", h.Post.Summaries)

	// 帖子相关接口；修改和删除走可选登录，令牌无效按匿名处理，由作者策略统一返回 403
	// 与其他资源一致，未激活账号可以删除自己的内容但不能写入
	post := api.Group("/post")
	{
		post.GET("/", auth, h.Post.List)
		post.POST("/", auth, writable, h.Post.Create)
		post.GET("/own/", auth, h.Post.Own)
		post.GET("/search/", auth, h.Post.Search)
		post.GET("/favorites/", auth, h.Post.Favorites)
		post.GET("/:id/", auth, h.Post.Get)
		post.PUT("/:id/", optional, writable, h.Post.Update)
		post.PATCH("/:id/", optional, writable, h.Post.Update)
		post.DELETE("/:id/", optional, h.Post.Delete)
		post.POST("/:id/add_favorites/", auth, writable, h.Post.AddFavorite)
	}

	api.GET("/add-image/", auth, h.Post.ListImages)
	api.POST("/add-image/", auth, writable, h.Post.AddImage)

	comments := api.Group("/comments", auth)
	{
		comments.GET("/", h.Comment.List)
		comments.POST("/", writable, h.Comment.Create)
		comments.GET("/:id/", h.Comment.Get)
		comments.PUT("/:id/", writable, h.Comment.Update)
		comments.PATCH("/:id/", writable, h.Comment.Update)
		comments.DELETE("/:id/", h.Comment.Delete)
	}

	likes := api.Group("/likes", auth)
	{
		likes.GET("/", h.Like.List)
		likes.POST("/", writable, h.Like.Create)
		likes.GET("/:id/", h.Like.Get)
		likes.PUT("/:id/", writable, h.Like.Update)
		likes.PATCH("/:id/", writable, h.Like.Update)
		likes.DELETE("/:id/", h.Like.Delete)
	}

	// 评分的修改和删除与帖子一致
	rating := api.Group("/rating")
	{
		rating.GET("/", auth, h.Rating.List)
		rating.POST("/", auth, writable, h.Rating.Create)
		rating.GET("/:id/", auth, h.Rating.Get)
		rating.PUT("/:id/", optional, writable, h.Rating.Update)
		rating.PATCH("/:id/", optional, writable, h.Rating.Update)
		rating.DELETE("/:id/", optional, h.Rating.Delete)
	}

	favorite := api.Group("/favorite", auth)
	{
		favorite.GET("/", h.Favorite.List)
		favorite.POST("/", writable, h.Favorite.Create)
		favorite.GET("/favorites/", h.Favorite.Mine)
		favorite.GET("/:id/", h.Favorite.Get)
		favorite.PUT("/:id/", writable, h.Favorite.Update)
		favorite.PATCH("/:id/", writable, h.Favorite.Update)
		favorite.DELETE("/:id/", h.Favorite.Delete)
		favorite.POST("/:id/add_favorites/", writable, h.Favorite.AddFavorites)
	}

	chat := api.Group("/chat", auth)
	{
		chat.GET("/messages/", h.Chat.Inbox)
		chat.POST("/messages/", writable, h.Chat.Send)
		chat.GET("/messages/:sender/:receiver/", h.Chat.Conversation)
		chat.GET("/users/", h.Chat.Users)
	}

	return r
}
