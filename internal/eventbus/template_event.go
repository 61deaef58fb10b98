package eventbus

type TemplateEventType string

const (
	TemplateEventCreated TemplateEventType = "Created"
	TemplateEventSaved   TemplateEventType = "Saved"
	TemplateEventDeleted TemplateEventType = "Deleted"
)

type TemplateEvent struct {
	Type         TemplateEventType
	TemplateID   uint
	DocumentType string
	SessionID    string // 编辑会话触发的保存带上会话标识
}
