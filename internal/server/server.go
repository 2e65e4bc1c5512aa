package server

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/i-DAM/etmam-report/internal/config"
	"github.com/i-DAM/etmam-report/internal/server/handlers"
)

//go:embed index.html
var indexPage []byte

// Server خادم الواجهة المحلي
type Server struct {
	router   *gin.Engine
	handlers *handlers.Handlers
}

// NewServer إنشاء الخادم
func NewServer(cfg *config.AppConfig) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		router:   gin.Default(),
		handlers: handlers.NewHandlers(cfg),
	}

	s.setupRoutes()

	return s
}

// setupRoutes إعداد المسارات
func (s *Server) setupRoutes() {
	// CORS للتشغيل المحلي
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	api := s.router.Group("/api")
	{
		s.handlers.RegisterRoutes(api)
	}

	// صفحة الرفع المدمجة
	s.router.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", indexPage)
	})
	s.router.NoRoute(func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", indexPage)
	})
}

// Run تشغيل الخادم
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
