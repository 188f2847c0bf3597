package handlers

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-pos-inventory/internal/files"
)

// --- GET: Download the whole database ---
func (h *Handler) ExportDatabase(c *gin.Context) {
	var buf bytes.Buffer
	buf.WriteString(files.UTF8BOM)
	if err := h.shop.ExportDatabase(&buf); err != nil {
		h.respondError(c, "ExportDatabase", err)
		return
	}

	filename := "database-" + time.Now().Format("2006-01-02") + ".json"
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/json; charset=utf-8", buf.Bytes())
}

// --- POST: Replace everything with an uploaded database ---
// Requires ?confirm=true since products and invoices are overwritten.
func (h *Handler) ImportDatabase(c *gin.Context) {
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Importing replaces all products and invoices; repeat with confirm=true"})
		return
	}

	var src io.Reader = c.Request.Body
	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			h.respondError(c, "ImportDatabase", err)
			return
		}
		defer f.Close()
		src = f
	}

	if err := h.shop.ImportDatabase(c.Request.Context(), src); err != nil {
		h.respondError(c, "ImportDatabase", err)
		return
	}

	snap := h.shop.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"message":  "Database imported",
		"products": len(snap.Products),
		"invoices": len(snap.Invoices),
	})
}
