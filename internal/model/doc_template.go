package model

import "time"

// 模板支持的单据类型
const (
	DocumentTypeCheque         = "cheque"
	DocumentTypeInvoice        = "invoice"
	DocumentTypeCreditNote     = "credit_note"
	DocumentTypePaymentReceipt = "payment_receipt"
)

// IsAllowedDocumentType 单据类型白名单校验
func IsAllowedDocumentType(t string) bool {
	switch t {
	case DocumentTypeCheque, DocumentTypeInvoice, DocumentTypeCreditNote, DocumentTypePaymentReceipt:
		return true
	default:
		return false
	}
}

// DocTemplate 打印单据模板表
// 段列表整体序列化为 JSON 文本列，保存时全量写回，不做局部更新；
// UIPreferencesJson 是编辑器存取的透明偏好包（缩放、网格开关等），后端不校验
type DocTemplate struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	DocumentType       string    `json:"document_type" gorm:"size:50;not null;index"` // cheque, invoice, credit_note, payment_receipt
	Name               string    `json:"name" gorm:"size:150;not null"`
	Description        string    `json:"description" gorm:"size:500"`
	SectionsJson       string    `json:"sections_json" gorm:"type:text"`
	PageWidth          float64   `json:"page_width" gorm:"default:612"`  // 磅，8.5 英寸
	PageHeight         float64   `json:"page_height" gorm:"default:792"` // 磅，11 英寸
	UIPreferencesJson  string    `json:"ui_preferences_json" gorm:"type:text"`
	IsDefault          bool      `json:"is_default" gorm:"default:false"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// TableName 指定表名
func (DocTemplate) TableName() string {
	return "doc_templates"
}
