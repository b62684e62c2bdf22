package main

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WebServer exposes the view-state controller over HTTP. Each mutating
// endpoint is one user interaction: it turns the input into a store event,
// applies it, and answers with the refreshed snapshot.
type WebServer struct {
	client    *FlowClient
	store     *Store
	orch      *Orchestrator
	scheduler *Scheduler
	router    *gin.Engine
}

func NewWebServer(cfg *Config) *WebServer {
	client := NewFlowClient(cfg.APIBaseURL, cfg.ExportBaseURL)
	store := NewStore()
	orch := NewOrchestrator(client, store)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	server := &WebServer{
		client: client,
		store:  store,
		orch:   orch,
		router: router,
	}

	if cfg.RefreshEnabled {
		scheduler, err := NewScheduler(store, orch, cfg.RefreshSpec)
		if err != nil {
			Logger.Warn("failed to initialize refresh scheduler", zap.Error(err))
		} else {
			server.scheduler = scheduler
			scheduler.Start()
		}
	}

	server.setupRoutes()
	return server
}

func (ws *WebServer) setupRoutes() {
	api := ws.router.Group("/api")
	{
		// Current view
		api.GET("/view", ws.getView)

		// User interactions
		api.POST("/view/date", ws.setDate)
		api.POST("/view/investor", ws.setInvestor)
		api.POST("/view/page", ws.setPage)
		api.POST("/view/window", ws.setWindow)
		api.POST("/view/analysis-investor", ws.setAnalysisInvestor)

		// Export
		api.GET("/export-url", ws.getExportURL)
	}
}

func (ws *WebServer) Run(addr string) error {
	Logger.Info("web server starting", zap.String("addr", addr))
	return ws.router.Run(addr)
}

func (ws *WebServer) Close() {
	if ws.scheduler != nil {
		ws.scheduler.Stop()
	}
}
