package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"flightlog/internal/config"
	"flightlog/internal/server/handlers"
	"flightlog/internal/store"
)

// Server HTTP服务器
type Server struct {
	router *gin.Engine
	store  *store.MemoryStore
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	memStore := store.NewMemoryStore()
	h := handlers.NewHandlers(memStore, cfg)

	s := &Server{
		router: gin.Default(),
		store:  memStore,
	}

	s.setupRoutes(h, cfg.Server.DevMode)

	return s
}

// setupRoutes 设置路由
func (s *Server) setupRoutes(h *handlers.Handlers, devMode bool) {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	api := s.router.Group("/api")
	{
		api.POST("/upload", h.UploadFile)
		api.GET("/stats", h.GetStats)
		api.GET("/records", h.ListRecords)
		api.POST("/export", h.Export)
		api.GET("/export/download/:token", h.DownloadExport)
		api.GET("/health", h.Health)
	}

	if devMode {
		// 开发模式：非 API 请求代理到前端开发服务器
		s.router.NoRoute(func(c *gin.Context) {
			c.Redirect(http.StatusTemporaryRedirect, "http://localhost:5173"+c.Request.URL.Path)
		})
	} else {
		s.router.NoRoute(func(c *gin.Context) {
			c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(landingPage))
		})
	}
}

// landingPage 简易首页：前端未打包时提示 API 入口
const landingPage = `<!DOCTYPE html>
<html lang="zh">
<head><meta charset="utf-8"><title>FlightLog</title></head>
<body>
<h1>FlightLog 飞行记录统计</h1>
<p>POST /api/upload 上传 .xlsx / .xls 飞行记录表</p>
<p>GET /api/stats 查看统计，POST /api/export 导出报告</p>
</body>
</html>`

// Run 启动服务器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// GetStore 获取存储（用于测试）
func (s *Server) GetStore() *store.MemoryStore {
	return s.store
}

// Router 返回路由（用于测试）
func (s *Server) Router() http.Handler {
	return s.router
}
