package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"go-pos-inventory/internal/files"
	"go-pos-inventory/internal/models"
	"go-pos-inventory/internal/service"
)

// --- GET: List all products ---
func (h *Handler) GetProducts(c *gin.Context) {
	c.JSON(http.StatusOK, h.shop.Products())
}

// --- GET: Find one product for the sales screen ---
func (h *Handler) ScanProduct(c *gin.Context) {
	p, err := h.shop.FindProduct(c.Param("barcode"))
	if err != nil {
		h.respondError(c, "ScanProduct", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// --- POST: Add a product or top up an existing barcode ---
func (h *Handler) AddProduct(c *gin.Context) {
	var input models.Product
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	saved, err := h.shop.AddProduct(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, "AddProduct", err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// --- DELETE: Remove a product ---
func (h *Handler) DeleteProduct(c *gin.Context) {
	h.shop.DeleteProduct(c.Request.Context(), c.Param("barcode"))
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// --- POST: Bulk import from an uploaded file ---
func (h *Handler) ImportProducts(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	format := c.Query("format")
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(file.Filename)), ".")
	}

	src, err := file.Open()
	if err != nil {
		h.respondError(c, "ImportProducts", err)
		return
	}
	defer src.Close()

	result, err := h.shop.ImportProducts(c.Request.Context(), format, src)
	if err != nil {
		h.respondError(c, "ImportProducts", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var exportTypes = map[string]string{
	service.FormatCSV:  "text/csv; charset=utf-8",
	service.FormatTXT:  "text/plain; charset=utf-8",
	service.FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// --- GET: Download the catalog ---
func (h *Handler) ExportProducts(c *gin.Context) {
	format := strings.ToLower(c.DefaultQuery("format", service.FormatCSV))
	contentType, ok := exportTypes[format]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unsupported export format %q", format)})
		return
	}

	var buf bytes.Buffer
	if format != service.FormatXLSX {
		buf.WriteString(files.UTF8BOM)
	}
	if err := h.shop.ExportProducts(format, &buf); err != nil {
		h.respondError(c, "ExportProducts", err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=products."+format)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// SaleRequest defines what the Frontend sends us
type SaleRequest struct {
	CustomerName string            `json:"customer_name"`
	Items        []models.SaleLine `json:"items" binding:"required,min=1,dive"`
}

// --- POST: Sell a cart and issue its invoice ---
func (h *Handler) Checkout(c *gin.Context) {
	var req SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	inv, err := h.shop.CompleteSale(c.Request.Context(), req.CustomerName, req.Items)
	if err != nil {
		h.respondError(c, "Checkout", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Sale successful!",
		"invoice": inv,
	})
}
