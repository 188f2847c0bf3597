package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// --- GET: /api/reports/sales?from=YYYY-MM-DD&to=YYYY-MM-DD ---
func (h *Handler) GetSalesReport(c *gin.Context) {
	summary, err := h.shop.SalesSummary(c.Query("from"), c.Query("to"))
	if err != nil {
		h.respondError(c, "GetSalesReport", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// --- GET: /api/reports/valuation ---
// GetStockValuation reports the value of the stock on hand per category.
func (h *Handler) GetStockValuation(c *gin.Context) {
	c.JSON(http.StatusOK, h.shop.Valuation())
}
