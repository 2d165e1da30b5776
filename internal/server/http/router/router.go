package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/expensio/expensio/internal/server/http/handlers"
	"github.com/expensio/expensio/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.ExpenseFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	expenditureHandler := handlers.NewExpenditureHandler(facade)

	auth := engine.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/signin", authHandler.Signin)

	expenditure := engine.Group("/expenditure")
	expenditure.Use(middleware.AuthRequired(facade))
	expenditure.POST("", expenditureHandler.Create)
	expenditure.GET("", expenditureHandler.List)
	expenditure.GET("/:id", expenditureHandler.Find)
	expenditure.PATCH("/:id", expenditureHandler.Edit)
	expenditure.DELETE("/:id", expenditureHandler.Remove)

	return engine
}
