package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerdesk/backend/internal/catalog"
)

// CatalogHandler 字段目录 Handler
type CatalogHandler struct {
	fieldCatalog *catalog.Catalog
}

// NewCatalogHandler 创建 Handler
func NewCatalogHandler(fieldCatalog *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{fieldCatalog: fieldCatalog}
}

// ListFields 可放置字段定义列表，编辑器调色板数据源
func (h *CatalogHandler) ListFields(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.fieldCatalog.List()})
}
