package editor

import "errors"

// 状态引擎的可恢复错误：操作被拒绝，状态保持不变，由调用方提示用户
var (
	// ErrNoSections 模板没有任何段，无法添加字段
	ErrNoSections = errors.New("template has no sections")
	// ErrSectionNotFound 目标段不存在
	ErrSectionNotFound = errors.New("section not found")
	// ErrNoTargets 删除操作没有解析出任何目标字段
	ErrNoTargets = errors.New("no fields to delete")
	// ErrInsufficientSelection 编组需要至少选中两个字段
	ErrInsufficientSelection = errors.New("grouping requires at least 2 selected fields")
	// ErrNoGroupsAffected 解组操作没有命中任何编组
	ErrNoGroupsAffected = errors.New("no groups overlap the selection")
	// ErrEmptySelection 复制时没有可解析的选中字段
	ErrEmptySelection = errors.New("nothing selected to copy")
	// ErrEmptySection 整段复制时段内没有字段
	ErrEmptySection = errors.New("section has no fields to copy")
	// ErrEmptyClipboard 剪贴板为空，无法粘贴
	ErrEmptyClipboard = errors.New("clipboard is empty")
	// ErrNoActiveSection 粘贴时未指定目标段
	ErrNoActiveSection = errors.New("no target section for paste")
	// ErrSessionClosed 会话已关闭，后续命令一律拒绝
	ErrSessionClosed = errors.New("editor session is closed")
)
