package web

import (
	"net/http"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"

	"github.com/Shiziso/Bot/internal/config"
	"github.com/Shiziso/Bot/internal/utils"
)

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func errorHandler(c *gin.Context, info ratelimit.Info) {
	c.String(http.StatusTooManyRequests, "Too many requests. Try again later.")
}

// Setup builds the admin dashboard router.
func Setup(log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))

	// Without a configured secret, fall back to a random one. Sessions
	// then die on restart, which is acceptable for a single-admin panel.
	secret := config.Conf.Web.SessionSecret
	if secret == "" {
		generated, err := utils.GenerateSecureToken(32)
		if err != nil {
			log.Fatal("Failed to generate session secret", zap.Error(err))
		}
		log.Warn("web.session_secret is not set, using a random secret")
		secret = generated
	}

	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // Set to true in production
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400 * 7,
	})
	router.Use(sessions.Sessions("adminsession", store))

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
	})
	router.Use(func(c *gin.Context) {
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			c.Abort()
			return
		}
	})

	// Brute-force protection on the login form.
	rateLimitStore := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 5,
	})
	limiter := ratelimit.RateLimiter(rateLimitStore, &ratelimit.Options{
		ErrorHandler: errorHandler,
		KeyFunc:      keyFunc,
	})

	authHandler := NewAuthHandler(log)
	statsHandler := NewStatsHandler(log)
	chartsHandler := NewChartsHandler(log)

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/admin")
	})
	router.GET("/login", authHandler.ShowLoginPage)
	router.POST("/login", limiter, authHandler.Login)
	router.POST("/logout", authHandler.Logout)

	authorized := router.Group("/admin")
	authorized.Use(AuthRequired(log))
	{
		authorized.GET("", chartsHandler.Dashboard)
		authorized.GET("/api/overview", statsHandler.Overview)
		authorized.GET("/api/commands", statsHandler.Commands)
		authorized.GET("/api/moods", statsHandler.Moods)
	}

	return router
}
