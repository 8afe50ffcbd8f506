package handlers

import (
	"net/http"
	"time"

	"coursehub/internal/application/usecase"
	"coursehub/internal/infrastructure/cache"
	"coursehub/internal/infrastructure/security"
	"coursehub/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type RouterConfig struct {
	Catalog        *usecase.Catalog
	Cache          cache.Cache
	CacheTTL       time.Duration
	Limiter        *middleware.RateLimiter
	RateLimit      int
	RateWindow     time.Duration
	AllowedOrigins []string
	// Tokens and APIKeyHash enable the write guard; leave both empty for
	// open mutating routes.
	Tokens     *security.TokenManager
	APIKeyHash string
	Logger     *logrus.Logger
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	registerValidators()

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(cfg.Logger), middleware.ErrorHandler(cfg.Logger))

	corsCfg := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 0 || (len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
		corsCfg.AllowCredentials = true
	}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", middleware.APIKeyHeader, middleware.RequestIDHeader}
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsCfg.ExposeHeaders = []string{middleware.RequestIDHeader, "RateLimit-Limit", "RateLimit-Remaining", "RateLimit-Reset"}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.Limiter != nil {
		r.Use(cfg.Limiter.Limit("api", cfg.RateLimit, cfg.RateWindow))
	}

	rc := newResponseCache(cfg.Cache, cfg.CacheTTL, cfg.Logger)
	courseHandler := NewCourseHandler(cfg.Catalog.Courses, rc)
	moduleHandler := NewModuleHandler(cfg.Catalog.Modules, rc)
	lessonHandler := NewLessonHandler(cfg.Catalog.Lessons, rc)

	guard := middleware.WriteGuard(cfg.Tokens, security.NewKeyHasher(), cfg.APIKeyHash)

	courses := r.Group("/courses")
	{
		courses.POST("", guard, courseHandler.Create)
		courses.GET("", courseHandler.List)
		courses.GET("/details", courseHandler.ListDetails)
		courses.GET("/:id", courseHandler.GetOne)
		courses.PUT("/:id", guard, courseHandler.Update)
		courses.DELETE("/:id", guard, courseHandler.Delete)
	}

	modules := r.Group("/modules")
	{
		modules.POST("", guard, moduleHandler.Create)
		modules.GET("", moduleHandler.List)
		modules.GET("/:id", moduleHandler.GetOne)
		modules.PUT("/:id", guard, moduleHandler.Update)
		modules.DELETE("/:id", guard, moduleHandler.Delete)
	}

	lessons := r.Group("/lessons")
	{
		lessons.POST("", guard, lessonHandler.Create)
		lessons.GET("", lessonHandler.List)
		lessons.GET("/:id", lessonHandler.GetOne)
		lessons.PUT("/:id", guard, lessonHandler.Update)
		lessons.DELETE("/:id", guard, lessonHandler.Delete)
	}

	return r
}
