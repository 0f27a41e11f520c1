package router

import (
	"gym_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up the login route.
func SetupAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/login", authHandler.Login)
}

// SetupHealthRoutes sets up the database connectivity check.
func SetupHealthRoutes(group *gin.RouterGroup, healthHandler *handlers.HealthHandler) {
	group.GET("/test-db", healthHandler.TestDB)
}

// SetupClientRoutes sets up the client routes, including the overdue and reminder lists.
func SetupClientRoutes(group *gin.RouterGroup, clientHandler *handlers.ClientHandler) {
	clientRoutes := group.Group("/clientes")
	{
		clientRoutes.POST("", clientHandler.CreateClient)
		clientRoutes.GET("", clientHandler.GetClients)
		clientRoutes.GET("/:id", clientHandler.GetClientByID)
		clientRoutes.PUT("/:id", clientHandler.UpdateClient)
		clientRoutes.DELETE("/:id", clientHandler.DeleteClient)
		clientRoutes.GET("/:id/pagos", clientHandler.GetClientPayments)
	}
	group.GET("/clientes-morosos", clientHandler.GetOverdueClients)
	group.GET("/recordatorios", clientHandler.GetReminders)
}

// SetupPaymentRoutes sets up the payment routes.
func SetupPaymentRoutes(group *gin.RouterGroup, paymentHandler *handlers.PaymentHandler) {
	group.POST("/pagos", paymentHandler.RegisterPayment)
}

// SetupReportRoutes sets up the revenue report, its export and the dashboard.
func SetupReportRoutes(group *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	reportRoutes := group.Group("/reporte-ingresos")
	{
		reportRoutes.GET("", reportHandler.GetIncomeReport)
		reportRoutes.GET("/excel", reportHandler.ExportIncomeReport)
	}
	group.GET("/dashboard", reportHandler.GetDashboard)
}
