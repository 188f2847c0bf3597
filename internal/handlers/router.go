package handlers

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"go-pos-inventory/internal/middleware"
	"go-pos-inventory/internal/models"
)

// RouterOptions carries the transport settings.
type RouterOptions struct {
	AllowedOrigins []string
	AccessLog      *logrus.Logger
	// WebDir holds a built single-page frontend; empty disables it.
	WebDir string
}

// NewRouter wires every route of the API.
func NewRouter(h *Handler, opts RouterOptions) *gin.Engine {
	r := gin.New()
	if opts.AccessLog != nil {
		r.Use(gin.LoggerWithWriter(opts.AccessLog.Writer()))
	}
	r.Use(gin.Recovery())
	r.Use(middleware.PrometheusMiddleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     opts.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "online"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/login", h.Login)

	api := r.Group("/api")
	api.GET("/session/remembered", h.RememberedUser)

	// --- PROTECTED ROUTES ---
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(h.tokens))
	{
		// STAFF & ADMIN
		protected.GET("/products", h.GetProducts)
		protected.GET("/products/scan/:barcode", h.ScanProduct)
		protected.POST("/checkout", h.Checkout)
		protected.GET("/invoices", h.GetInvoices)
		protected.GET("/invoices/next-number", h.NextInvoiceNumber)
		protected.POST("/invoices", h.CreateInvoice)
		protected.GET("/reports/sales", h.GetSalesReport)

		// ADMIN ONLY
		admin := protected.Group("")
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		{
			admin.POST("/products", h.AddProduct)
			admin.DELETE("/products/:barcode", h.DeleteProduct)
			admin.POST("/products/import", h.ImportProducts)
			admin.GET("/products/export", h.ExportProducts)
			admin.GET("/database/export", h.ExportDatabase)
			admin.POST("/database/import", h.ImportDatabase)
			admin.GET("/reports/valuation", h.GetStockValuation)
			admin.GET("/system/status", h.GetSystemStatus)
			admin.POST("/ask", h.AskAI)
		}
	}

	if opts.WebDir != "" {
		r.Static("/assets", filepath.Join(opts.WebDir, "assets"))
		// SPA catch-all so client-side routes survive a refresh
		r.NoRoute(func(c *gin.Context) {
			c.File(filepath.Join(opts.WebDir, "index.html"))
		})
	}

	return r
}
