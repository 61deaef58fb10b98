package statemachine

import (
	"fmt"

	"k8s.io/klog/v2"
)

// ImportStatus 定义导入批次的所有可能状态
type ImportStatus string

const (
	ImportStatusPending    ImportStatus = "pending"    // 已登记待处理
	ImportStatusProcessing ImportStatus = "processing" // 解析中
	ImportStatusCompleted  ImportStatus = "completed"  // 解析完成
	ImportStatusFailed     ImportStatus = "failed"     // 解析失败
)

// ImportTransition 定义批次状态迁移
type ImportTransition struct {
	From ImportStatus
	To   ImportStatus
}

// ImportStateMachine 导入批次状态机
type ImportStateMachine struct {
	allowedTransitions map[ImportTransition]bool
}

// NewImportStateMachine 创建导入批次状态机
func NewImportStateMachine() *ImportStateMachine {
	sm := &ImportStateMachine{
		allowedTransitions: make(map[ImportTransition]bool),
	}

	// pending -> processing -> completed/failed
	// failed -> processing（重试）
	transitions := []ImportTransition{
		{ImportStatusPending, ImportStatusProcessing},
		{ImportStatusProcessing, ImportStatusCompleted},
		{ImportStatusProcessing, ImportStatusFailed},
		{ImportStatusFailed, ImportStatusProcessing},
	}

	for _, t := range transitions {
		sm.allowedTransitions[t] = true
	}

	return sm
}

// CanTransition 检查状态迁移是否合法
func (sm *ImportStateMachine) CanTransition(from, to ImportStatus) bool {
	if from == to {
		return false // 不允许状态不变
	}
	return sm.allowedTransitions[ImportTransition{From: from, To: to}]
}

// ValidateTransition 验证状态迁移并返回错误
func (sm *ImportStateMachine) ValidateTransition(from, to ImportStatus) error {
	if !sm.CanTransition(from, to) {
		return &InvalidStateTransitionError{
			From: string(from),
			To:   string(to),
		}
	}
	return nil
}

// Transition 执行状态迁移（带日志）
func (sm *ImportStateMachine) Transition(from, to ImportStatus, batchID uint) error {
	if err := sm.ValidateTransition(from, to); err != nil {
		klog.V(6).Infof("导入批次状态迁移被拒绝: batchID=%d, %s -> %s, error=%v",
			batchID, from, to, err)
		return err
	}

	klog.V(6).Infof("导入批次状态迁移成功: batchID=%d, %s -> %s", batchID, from, to)
	return nil
}

// InvalidStateTransitionError 无效的状态迁移错误
type InvalidStateTransitionError struct {
	From string
	To   string
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("invalid import state transition: %s -> %s", e.From, e.To)
}

// IsTerminal 判断状态是否为终止态
func IsTerminal(status ImportStatus) bool {
	return status == ImportStatusCompleted || status == ImportStatusFailed
}
