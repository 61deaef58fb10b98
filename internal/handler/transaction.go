package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ledgerdesk/backend/internal/repository"
	"github.com/ledgerdesk/backend/internal/service/importer"
)

// maxImportSize 导入文件上限：10 MB
const maxImportSize = 10 << 20

// TransactionHandler 银行流水 Handler
type TransactionHandler struct {
	importService *importer.Service
	repo          repository.TransactionRepository
}

// NewTransactionHandler 创建 Handler
func NewTransactionHandler(importService *importer.Service, repo repository.TransactionRepository) *TransactionHandler {
	return &TransactionHandler{importService: importService, repo: repo}
}

// Import 上传并导入流水文件（multipart 的 file 字段）
func (h *TransactionHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fileHeader.Size > maxImportSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	batch, err := h.importService.Import(c.Request.Context(), fileHeader.Filename, data)
	if err != nil {
		if errors.Is(err, importer.ErrUnsupportedFormat) || errors.Is(err, importer.ErrEmptyFile) {
			// 失败批次也返回，便于前端展示原因
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "data": batch})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": batch})
}

// ListBatches 导入批次列表
func (h *TransactionHandler) ListBatches(c *gin.Context) {
	batches, err := h.repo.ListBatches()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": batches})
}

// GetBatch 批次详情
func (h *TransactionHandler) GetBatch(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	batch, err := h.repo.GetBatch(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "batch not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": batch})
}

// ListByBatch 某批次的全部流水
func (h *TransactionHandler) ListByBatch(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	transactions, err := h.repo.ListByBatch(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": transactions})
}

// List 最近流水，支持 ?limit=
func (h *TransactionHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	transactions, err := h.repo.List(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": transactions})
}
