package handlers

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/fljobs/backend/auth"
	"github.com/fljobs/backend/mcp"
	"github.com/fljobs/backend/storage"
	"github.com/fljobs/backend/tools"
)

// RouterDeps are the collaborators the HTTP surface is built from
type RouterDeps struct {
	Store   storage.Store
	AI      AIService
	Archive storage.PostArchive
	JWT     *auth.JWTService
	Logger  *zap.Logger
}

// NewRouter wires every route onto a new gin engine
func NewRouter(deps RouterDeps) *gin.Engine {
	registry := tools.NewDefaultRegistry(deps.AI)

	system := NewSystemHandler(deps.AI, registry)
	authHandler := NewAuthHandler(deps.Store, deps.JWT, deps.Logger)
	catalog := NewCatalogHandler(deps.Store, deps.Logger)
	jobs := NewJobHandler(deps.Store, deps.AI, deps.Archive, deps.Logger)
	mcpServer := mcp.NewServer(registry, mcp.ServerInfo{Name: "fljobs", Version: Version}, deps.Logger)

	router := gin.New()
	router.Use(Recovery(deps.Logger))
	router.Use(RequestLogger(deps.Logger))

	// Configure CORS for the web frontend
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:   []string{"Content-Length"},
		MaxAge:          12 * time.Hour,
	}))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/", system.Root)
	router.GET("/health", system.HealthCheck)

	requireAuth := auth.AuthMiddleware(deps.JWT)

	api := router.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", requireAuth, authHandler.Refresh)
		}

		profile := api.Group("/profile", requireAuth)
		{
			profile.GET("", authHandler.GetProfile)
			profile.PUT("", authHandler.UpdateProfile)
		}

		api.GET("/stores", catalog.GetStores)
		api.GET("/stores/:id", catalog.GetStore)
		api.GET("/locations", catalog.GetLocations)
		api.GET("/locations/:name/stores", catalog.GetLocationStores)
		api.GET("/locations/:name/jobs", catalog.GetLocationJobs)
		api.GET("/candidates", catalog.GetCandidates)

		api.GET("/jobs", requireAuth, jobs.ListJobs)
		api.POST("/jobs", requireAuth, jobs.CreateJob)
		api.POST("/jobs/generate", jobs.GenerateJob)
		api.GET("/jobs/:id/match", requireAuth, jobs.MatchMyProfile)
		api.POST("/match-score", jobs.MatchScore)

		// Tools introspection endpoint
		api.GET("/tools", system.GetTools)

		// MCP endpoints for external AI agents
		mcpServer.RegisterRoutes(api)
	}

	return router
}
