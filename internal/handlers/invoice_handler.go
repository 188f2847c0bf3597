package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-pos-inventory/internal/models"
)

func (h *Handler) GetInvoices(c *gin.Context) {
	c.JSON(http.StatusOK, h.shop.Invoices())
}

func (h *Handler) NextInvoiceNumber(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"invoiceNumber": h.shop.NextInvoiceNumber()})
}

// CreateInvoice saves a hand-written invoice. Blank lines are dropped.
func (h *Handler) CreateInvoice(c *gin.Context) {
	var input models.Invoice
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	saved, err := h.shop.SaveInvoice(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, "CreateInvoice", err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}
