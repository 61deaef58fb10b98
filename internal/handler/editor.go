package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ledgerdesk/backend/internal/editor"
	"github.com/ledgerdesk/backend/internal/service"
)

// EditorHandler 模板编辑会话 Handler
type EditorHandler struct {
	editorService *service.EditorService
}

// NewEditorHandler 创建 Handler
func NewEditorHandler(editorService *service.EditorService) *EditorHandler {
	return &EditorHandler{editorService: editorService}
}

// editorErrorStatus 编辑命令错误到 HTTP 状态码的映射
func editorErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, editor.ErrSectionNotFound):
		return http.StatusNotFound
	case errors.Is(err, editor.ErrSessionClosed):
		return http.StatusConflict
	case errors.Is(err, editor.ErrNoSections),
		errors.Is(err, editor.ErrNoTargets),
		errors.Is(err, editor.ErrInsufficientSelection),
		errors.Is(err, editor.ErrNoGroupsAffected),
		errors.Is(err, editor.ErrEmptySelection),
		errors.Is(err, editor.ErrEmptySection),
		errors.Is(err, editor.ErrEmptyClipboard),
		errors.Is(err, editor.ErrNoActiveSection):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Open 为模板打开编辑会话
func (h *EditorHandler) Open(c *gin.Context) {
	var req struct {
		TemplateID uint `json:"template_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionID, state, err := h.editorService.Open(c.Request.Context(), req.TemplateID)
	if err != nil {
		if err == service.ErrTemplateNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": gin.H{"session_id": sessionID, "state": state}})
}

// Close 关闭编辑会话
func (h *EditorHandler) Close(c *gin.Context) {
	if err := h.editorService.Close(c.Param("id")); err != nil {
		c.JSON(editorErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "closed"})
}

// State 会话状态快照
func (h *EditorHandler) State(c *gin.Context) {
	state, err := h.editorService.State(c.Param("id"))
	if err != nil {
		c.JSON(editorErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": state})
}

// AddField 添加字段
func (h *EditorHandler) AddField(c *gin.Context) {
	var req service.AddFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key, err := h.editorService.AddField(c.Param("id"), req)
	if err != nil {
		c.JSON(editorErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"field_key": key}})
}

// MoveField 移动字段（编组整体平移）
func (h *EditorHandler) MoveField(c *gin.Context) {
	var req struct {
		FieldID   string  `json:"field_id" binding:"required"`
		SectionID string  `json:"section_id" binding:"required"`
		X         float64 `json:"x"`
		Y         float64 `json:"y"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.editorService.MoveField(c.Param("id"), req.FieldID, req.SectionID, req.X, req.Y); err != nil {
		c.JSON(editorErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "moved"})
}

// ResizeField 调整字段尺寸
func (h *EditorHandler) ResizeField(c *gin.Context) {
	var req struct {
		FieldID   string   `json:"field_id" binding:"required"`
		SectionID string   `json:"section_id" binding:"required"`
		Width     float64  `json:"width" binding:"required"`
		Height    float64  `json:"height" binding:"required"`
		X         *float64 `json:"x"`
		Y         *float64 `json:"y"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.editorService.ResizeField(c.Param("id"), req.FieldID, req.SectionID, req.Width, req.Height, req.X, req.Y); err != nil {
		c.JSON(editorErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "resized"})
}

// DeleteFields 删除字段，列表为空时删当前选区
func (h *EditorHandler) DeleteFields(c *gin.Context) {
	var req struct {
		Fields []editor.FieldRef `json:"fields"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.editorService.DeleteFields(c.Param("id"), req.Fields); err != nil {
		c.JSON(editorErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// Select 选择字段；field_id 为空清空选区
func (h *EditorHandler) Select(c *gin.Context) {
	var req struct {
		FieldID   string `json:"field_id"`
		SectionID string `json:"section_id"`
		Multi     bool   `json:"multi"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.editorService.Select(c.Param("id"), req.FieldID, req.SectionID, req.Multi); err != nil {
		c.JSON(editorErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "selected"})
}

// Group 编组当前选区
func (h *EditorHandler) Group(c *gin.Context) {
	groupID, err := h.editorService.Group(c.Param("id"))
	if err != nil {
		c.JSON(editorErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"group_id": groupID}})
}

// Ungroup 解组当前选区
func (h *EditorHandler) Ungroup(c *gin.Context) {
	if err := h.editorService.Ungroup(c.Param("id")); err != nil {
		c.JSON(editorErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ungrouped"})
}

// Copy 复制字段到剪贴板，列表为空时取当前选区
func (h *EditorHandler) Copy(c *gin.Context) {
	var req struct {
		Fields []editor.FieldRef `json:"fields"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.editorService.Copy(c.Param("id"), req.Fields); err != nil {
		c.JSON(editorErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "copied"})
}

// CopySection 复制整段字段
func (h *EditorHandler) CopySection(c *gin.Context) {
	var req struct {
		SectionID string `json:"section_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.editorService.CopyAllFromSection(c.Param("id"), req.SectionID); err != nil {
		c.JSON(editorErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "copied"})
}

// Paste 粘贴剪贴板到目标段
func (h *EditorHandler) Paste(c *gin.Context) {
	var req struct {
		SectionID string `json:"section_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	keys, err := h.editorService.Paste(c.Param("id"), req.SectionID)
	if err != nil {
		c.JSON(editorErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"field_keys": keys}})
}

// ClearSection 清空某段
func (h *EditorHandler) ClearSection(c *gin.Context) {
	var req struct {
		SectionID string `json:"section_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.editorService.ClearSection(c.Param("id"), req.SectionID); err != nil {
		c.JSON(editorErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cleared"})
}

// ClearAll 清空所有段
func (h *EditorHandler) ClearAll(c *gin.Context) {
	if err := h.editorService.ClearAllSections(c.Param("id")); err != nil {
		c.JSON(editorErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cleared"})
}

// Compile 编译为绝对坐标布局
func (h *EditorHandler) Compile(c *gin.Context) {
	layout, err := h.editorService.Compile(c.Param("id"))
	if err != nil {
		c.JSON(editorErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": layout})
}

// Save 把会话状态写回模板
func (h *EditorHandler) Save(c *gin.Context) {
	if err := h.editorService.Save(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(editorErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "saved"})
}

// parseUintParam 路径参数转 uint
func parseUintParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(value), true
}
