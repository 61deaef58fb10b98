package subscriber

import (
	"context"

	"github.com/ledgerdesk/backend/internal/eventbus"
	"github.com/ledgerdesk/backend/internal/utils"
	"k8s.io/klog/v2"
)

// layoutCache 保存事件触发失效的编译布局缓存
type layoutCache interface {
	Invalidate(templateID uint)
}

// TemplateEventSubscriber 模板生命周期事件订阅者
// 保存/删除后记录审计日志并作废对应模板的布局缓存
type TemplateEventSubscriber struct {
	cache layoutCache
}

func NewTemplateEventSubscriber(cache layoutCache) *TemplateEventSubscriber {
	return &TemplateEventSubscriber{cache: cache}
}

func (s *TemplateEventSubscriber) Register(bus *eventbus.Bus) {
	if bus == nil {
		return
	}
	bus.Subscribe(eventbus.TemplateEventCreated, s.handleCreated)
	bus.Subscribe(eventbus.TemplateEventSaved, s.handleSaved)
	bus.Subscribe(eventbus.TemplateEventDeleted, s.handleDeleted)
}

func (s *TemplateEventSubscriber) handleCreated(ctx context.Context, event eventbus.TemplateEvent) error {
	klog.V(6).Infof("模板已创建: %s", utils.ToJSON(event))
	return nil
}

func (s *TemplateEventSubscriber) handleSaved(ctx context.Context, event eventbus.TemplateEvent) error {
	klog.V(6).Infof("模板已保存: id=%d session=%s", event.TemplateID, event.SessionID)
	if s.cache != nil {
		s.cache.Invalidate(event.TemplateID)
	}
	return nil
}

func (s *TemplateEventSubscriber) handleDeleted(ctx context.Context, event eventbus.TemplateEvent) error {
	klog.V(6).Infof("模板已删除: id=%d", event.TemplateID)
	if s.cache != nil {
		s.cache.Invalidate(event.TemplateID)
	}
	return nil
}
