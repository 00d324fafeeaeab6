package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rml/bookkeeper/internal/interfaces/http/handler"
	"github.com/rml/bookkeeper/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers bundles everything the router mounts
type Handlers struct {
	Auth       *handler.AuthHandler
	Sales      *handler.SalesHandler
	Debts      *handler.DebtsHandler
	Expenses   *handler.ExpensesHandler
	Supplies   *handler.SuppliesHandler
	References *handler.ReferencesHandler
	Deposits   *handler.DepositsHandler
	Reports    *handler.ReportsHandler
}

// New builds the gin engine with all routes mounted under /api/v1
func New(env string, verifier middleware.TokenVerifier, h Handlers, log *zap.Logger) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.Recovery(log))
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(log))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/logout", middleware.Auth(verifier), h.Auth.Logout)
	}

	protected := api.Group("", middleware.Auth(verifier))
	{
		sales := protected.Group("/sales")
		{
			sales.GET("", h.Sales.List)
			sales.POST("", h.Sales.Create)
			sales.PUT("/:id", h.Sales.Update)
			sales.DELETE("/:id", h.Sales.Delete)
		}

		debts := protected.Group("/debts")
		{
			debts.GET("", h.Debts.List)
			debts.POST("/:id/payments", h.Debts.RecordPayment)
			debts.DELETE("/:id", h.Debts.Delete)
		}

		expenses := protected.Group("/expenses")
		{
			expenses.GET("", h.Expenses.List)
			expenses.POST("", h.Expenses.Create)
			expenses.PUT("/:id", h.Expenses.Update)
			expenses.DELETE("/:id", h.Expenses.Delete)
		}

		supplies := protected.Group("/supplies")
		{
			supplies.GET("", h.Supplies.List)
			supplies.POST("", h.Supplies.Create)
			supplies.DELETE("/:id", h.Supplies.Delete)
		}

		clients := protected.Group("/clients")
		{
			clients.GET("", h.References.ListClients)
			clients.POST("", h.References.CreateClient)
			clients.DELETE("/:id", h.References.DeleteClient)
		}

		products := protected.Group("/products")
		{
			products.GET("", h.References.ListProducts)
			products.POST("", h.References.CreateProduct)
			products.DELETE("/:id", h.References.DeleteProduct)
		}

		categories := protected.Group("/categories")
		{
			categories.GET("", h.References.ListCategories)
			categories.POST("", h.References.CreateCategory)
			categories.DELETE("/:id", h.References.DeleteCategory)
		}

		deposits := protected.Group("/deposits")
		{
			deposits.GET("", h.Deposits.List)
			deposits.POST("", h.Deposits.Create)
			deposits.DELETE("/:id", h.Deposits.Delete)
		}

		reports := protected.Group("/reports")
		{
			reports.GET("/debts", h.Reports.Debts)
			reports.GET("/expenses", h.Reports.Expenses)
			reports.GET("/supplies", h.Reports.Supplies)
		}

		dashboard := protected.Group("/dashboard")
		{
			dashboard.GET("/quick-stats", h.Reports.QuickStats)
			dashboard.GET("/expense-breakdown", h.Reports.ExpenseBreakdown)
			dashboard.GET("/debt-summary", h.Reports.DebtSummary)
		}
	}

	return engine
}
