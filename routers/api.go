package routers

import (
	"storefront/cart"
	"storefront/config"
	"storefront/controllers"
	"storefront/feed"
	"storefront/middlewares"
	"storefront/services"
	"storefront/sessions"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func Route(cfg config.Config) (*gin.Engine, *controllers.API) {
	router := gin.Default()
	router.Use(CORS())

	api := controllers.NewAPI(sessions.NewStore(newFeed(cfg), cfg.SessionTTL))
	api.Currency = cfg.Currency

	if cfg.EmailEnabled() {
		api.Mailer = cart.NewMailer(cfg.SMTPServer, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword,
			cfg.EmailFrom, cfg.EmailSubject, cfg.Currency)
	}

	store := router.Group("/api")
	store.Use(middlewares.Session(api.Sessions, cfg.SessionKey))
	{
		store.GET("/feed", api.GetFeed)
		store.POST("/feed/search", api.Search)
		store.POST("/feed/reset", api.ResetFeed)
		store.POST("/feed/more", api.LoadMore)

		store.GET("/cart", api.GetCart)
		store.POST("/cart", api.AddToCart)
		store.DELETE("/cart", api.ClearCart)
		store.DELETE("/cart/:id", api.RemoveFromCart)
		store.POST("/cart/open", api.OpenCart)
		store.POST("/cart/close", api.CloseCart)
		store.GET("/cart/export", api.ExportCart)
		store.POST("/cart/email", api.EmailCart)

		store.GET("/theme", api.GetTheme)
		store.POST("/theme/toggle", api.ToggleTheme)
	}

	return router, api
}

// newFeed wires the search pipeline once and hands out a feed per session.
func newFeed(cfg config.Config) func() *feed.Controller {
	var searcher services.Searcher = services.NewSearchService(
		services.NewHTTPClient(cfg.APIURL, cfg.APIKey, services.DefaultTimeout))

	if cfg.RedisEnabled() {
		searcher = &services.CachedSearcher{
			Next: searcher,
			Cache: services.NewCache(redis.NewClient(&redis.Options{
				Addr: cfg.RedisHost + ":" + cfg.RedisPort,
				DB:   0,
			}), cfg.CacheTTL),
		}
	}

	opts := feed.Options{
		PageSize: cfg.PageSize,
		Debounce: cfg.Debounce,
		Timeout:  services.DefaultTimeout,
	}

	return func() *feed.Controller {
		return feed.NewController(searcher, opts)
	}
}

// CORS Cross Origin Resource Sharing
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		// credentialed requests are refused by browsers when the origin is "*"
		origin := c.GetHeader("Origin")
		if origin == "" {
			origin = "*"
		}
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Vary", "Origin")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, "+
			"Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
