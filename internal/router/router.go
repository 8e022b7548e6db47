package router

import (
	"github.com/FehCode/financeflow1/internal/activity"
	"github.com/FehCode/financeflow1/internal/assistant"
	"github.com/FehCode/financeflow1/internal/config"
	"github.com/FehCode/financeflow1/internal/database"
	"github.com/FehCode/financeflow1/internal/handler"
	"github.com/FehCode/financeflow1/internal/middleware"
	"github.com/FehCode/financeflow1/internal/session"

	"github.com/gin-gonic/gin"
)

// Deps are the constructed services the routes run against.
type Deps struct {
	Store      *database.Store
	Sessions   *session.Service
	Activities *activity.Logger
	Gateway    *assistant.Gateway
}

// SetupRouter configures the gin engine and the JSON API.
func SetupRouter(cfg *config.Config, deps Deps) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	api := r.Group("/api")

	jwtSecret := cfg.JWT.Secret

	// register/login do not require a session
	authHandler := handler.NewAuthHandler(deps.Sessions, deps.Activities, jwtSecret, cfg.JWT.ExpireHours)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(jwtSecret, deps.Store),
		middleware.ActivityMiddleware(deps.Activities),
	)

	protected.GET("/me", authHandler.Me)
	protected.POST("/auth/logout", authHandler.Logout)

	txHandler := handler.NewTransactionHandler(deps.Store, deps.Activities)
	protected.POST("/transactions", txHandler.Create)
	protected.GET("/transactions", txHandler.List)
	protected.PUT("/transactions/:id", txHandler.Update)
	protected.DELETE("/transactions/:id", txHandler.Delete)
	protected.GET("/stats/summary", txHandler.Summary)
	protected.GET("/stats/categories", txHandler.Categories)
	protected.GET("/stats/history", txHandler.History)

	goalHandler := handler.NewGoalHandler(deps.Store, deps.Activities)
	protected.POST("/goals", goalHandler.Create)
	protected.GET("/goals", goalHandler.List)
	protected.PUT("/goals/:id", goalHandler.Update)
	protected.DELETE("/goals/:id", goalHandler.Delete)

	activityHandler := handler.NewActivityHandler(deps.Activities)
	protected.GET("/activities", activityHandler.ListMine)
	protected.GET("/activities/recent", activityHandler.Recent)

	assistantHandler := handler.NewAssistantHandler(deps.Store, deps.Gateway)
	protected.POST("/assistant/chat", assistantHandler.Chat)

	profileHandler := handler.NewProfileHandler(deps.Store, deps.Sessions, deps.Activities)
	protected.POST("/profile/delete", profileHandler.DeleteAccount)

	return r
}
