package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouteRegistrar 业务模块在 /api/v1 下注册自己的路由
type RouteRegistrar interface {
	RegisterRoutes(r *gin.RouterGroup)
}

// Server 封装 HTTP 服务
type Server struct {
	engine *gin.Engine
	logger *zap.Logger
	port   string
	server *http.Server
}

// NewServer 初始化 HTTP Server (包含网关逻辑)
func NewServer(
	logger *zap.Logger,
	cfgPort string,
	cfgMode string,
	modules ...RouteRegistrar,
) *Server {

	if cfgMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// ==========================================
	// Logical Gateway Layer
	// ==========================================

	r.Use(gin.Recovery())
	r.Use(accessLog(logger))
	r.Use(cors())

	// ==========================================
	// Routing Layer
	// ==========================================

	v1 := r.Group("/api/v1")
	{
		for _, m := range modules {
			m.RegisterRoutes(v1)
		}

		// 健康检查
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "UP"})
		})
	}

	return &Server{
		engine: r,
		logger: logger,
		port:   cfgPort,
		server: &http.Server{
			Addr:              ":" + cfgPort,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// accessLog 接入 Zap 的请求日志
func accessLog(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		logger.Info("HTTP Request",
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("ip", c.ClientIP()),
			zap.Duration("cost", time.Since(start)),
		)
	}
}

// cors 跨域处理，允许前端报表页面访问
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// Handler 暴露路由，便于测试
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run 启动服务
func (s *Server) Run() error {
	s.logger.Info("FinScale report gateway started", zap.String("port", s.port))
	return s.server.ListenAndServe()
}

// Shutdown 优雅停机 (Graceful Shutdown)
// 在 Run 之前调用时, 之后的 Run 直接返回 http.ErrServerClosed
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
