package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetSystemStatus reports how the server is configured and how much it holds.
func (h *Handler) GetSystemStatus(c *gin.Context) {
	products, invoices := h.shop.Counts()
	c.JSON(http.StatusOK, gin.H{
		"config":              h.status,
		"products":            products,
		"invoices":            invoices,
		"next_invoice_number": h.shop.NextInvoiceNumber(),
		"assistant_enabled":   h.assistant.Enabled(),
	})
}
