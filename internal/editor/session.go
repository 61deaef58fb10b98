package editor

import (
	"sort"
	"sync"
)

// Session 一次模板编辑会话的命令面
// 持有段/字段、选区、编组、剪贴板的内存态；每个命令在会话锁内
// 原子执行，结构性变更后统一跑一遍选区与编组的有效性校验
type Session struct {
	mu         sync.Mutex
	sections   []Section
	fieldOrder map[string][]string
	sel        selection
	groups     *groupSet
	clip       clipboard
	pageWidth  float64
	hydrated   bool
	closed     bool
}

// SessionState 返回给控制器的会话状态快照
type SessionState struct {
	Sections  []Section          `json:"sections"`
	Selection []FieldRef         `json:"selection"`
	Groups    map[int][]FieldRef `json:"groups"`
	Clipboard []ClipboardEntry   `json:"clipboard"`
	PageWidth float64            `json:"pageWidth"`
}

func NewSession() *Session {
	return &Session{
		fieldOrder: make(map[string][]string),
		groups:     newGroupSet(),
		pageWidth:  DefaultPageWidth,
	}
}

// Hydrate 用持久化模板初始化会话状态，整个会话只生效一次
// 后续再次调用（如保存后缓存失效触发的重新拉取）不会覆盖编辑中的状态
func (s *Session) Hydrate(sections []Section, pageWidth float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hydrated || s.closed {
		return false
	}
	s.sections = CloneSections(sections)
	if pageWidth > 0 {
		s.pageWidth = pageWidth
	}
	// 持久化格式不带段内插入顺序，注水时按键名排序取得确定性顺序
	for i := range s.sections {
		section := &s.sections[i]
		if section.FieldPositions == nil {
			section.FieldPositions = make(map[string]Geometry)
		}
		keys := make([]string, 0, len(section.FieldPositions))
		for key := range section.FieldPositions {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		s.fieldOrder[section.ID] = keys
	}
	s.hydrated = true
	return true
}

// Close 关闭会话；关闭后的命令与迟到的保存结果一律拒绝
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// Closed 会话是否已关闭
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// AddField 在目标段添加一个字段，返回分配到的唯一键
// hasY 为 false 时纵向位置取段内现有最大 Y 下方 StackGap 处
func (s *Session) AddField(sectionID, baseKey string, geom Geometry, hasY bool) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", ErrSessionClosed
	}
	if len(s.sections) == 0 {
		return "", ErrNoSections
	}
	section := s.sectionByID(sectionID)
	if section == nil {
		return "", ErrSectionNotFound
	}

	if !hasY {
		geom.Y = nextStackY(section)
	}
	key := allocateKey(section, baseKey)
	section.FieldPositions[key] = geom
	s.fieldOrder[section.ID] = append(s.fieldOrder[section.ID], key)
	return key, nil
}

// MoveField 移动字段；字段属于 ≥2 成员的编组时，整组按相同位移刚体平移
// （成员可以分布在不同段）。字段不存在时静默忽略，拖拽控制器在删除后
// 常会补发尾随的移动事件
func (s *Session) MoveField(fieldID, sectionID string, newX, newY float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	ref := FieldRef{FieldID: fieldID, SectionID: sectionID}
	section := s.sectionByID(sectionID)
	if section == nil {
		return nil
	}
	current, ok := section.FieldPositions[fieldID]
	if !ok {
		return nil
	}

	deltaX := newX - current.X
	deltaY := newY - current.Y

	if groupID, inGroup := s.groups.groupOf(ref); inGroup {
		members := s.groups.members(groupID)
		if len(members) >= 2 {
			for _, member := range members {
				s.translate(member, deltaX, deltaY)
			}
			return nil
		}
	}
	s.translate(ref, deltaX, deltaY)
	return nil
}

// ResizeField 调整字段尺寸，宽高钳制到 MinFieldSize；
// x/y 非 nil 时同步改位置（带位移的缩放把手）
func (s *Session) ResizeField(fieldID, sectionID string, width, height float64, x, y *float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	section := s.sectionByID(sectionID)
	if section == nil {
		return ErrSectionNotFound
	}
	geom, ok := section.FieldPositions[fieldID]
	if !ok {
		return nil
	}

	geom.Width = clampSize(width)
	geom.Height = clampSize(height)
	if x != nil {
		geom.X = *x
	}
	if y != nil {
		geom.Y = *y
	}
	section.FieldPositions[fieldID] = geom
	return nil
}

// DeleteFields 删除一批字段；refs 为空时删除当前选区
// 解析后仍无目标时返回 ErrNoTargets
func (s *Session) DeleteFields(refs []FieldRef) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if len(refs) == 0 {
		refs = s.sel.snapshot()
	}
	if len(refs) == 0 {
		return ErrNoTargets
	}

	for _, ref := range refs {
		section := s.sectionByID(ref.SectionID)
		if section == nil {
			continue
		}
		if _, ok := section.FieldPositions[ref.FieldID]; !ok {
			continue
		}
		delete(section.FieldPositions, ref.FieldID)
		s.dropFromOrder(ref.SectionID, ref.FieldID)
	}
	s.validate()
	return nil
}

// Select 选择字段：fieldID 为空清空选区；multi 为假单选，为真切换成员资格
func (s *Session) Select(fieldID, sectionID string, multi bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if fieldID == "" {
		s.sel.clear()
		return nil
	}
	ref := FieldRef{FieldID: fieldID, SectionID: sectionID}
	if multi {
		s.sel.toggle(ref)
	} else {
		s.sel.set(ref)
	}
	return nil
}

// GroupSelection 把当前选区编为一组，返回新组号
func (s *Session) GroupSelection() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrSessionClosed
	}
	refs := s.sel.snapshot()
	if len(refs) < 2 {
		return 0, ErrInsufficientSelection
	}
	return s.groups.create(refs), nil
}

// UngroupSelection 把选区成员从所属编组摘除；成员归零的组删除，
// 只剩部分成员的组保留缩减后的成员表
func (s *Session) UngroupSelection() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if !s.groups.ungroup(s.sel.snapshot()) {
		return ErrNoGroupsAffected
	}
	return nil
}

// Copy 复制一批字段到剪贴板；refs 为空时取当前选区
// 只记基础标识与几何快照，剪贴板整体替换
func (s *Session) Copy(refs []FieldRef) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if len(refs) == 0 {
		refs = s.sel.snapshot()
	}
	entries := s.resolveEntries(refs)
	if len(entries) == 0 {
		return ErrEmptySelection
	}
	s.clip.replace(entries)
	return nil
}

// CopyAllFromSection 复制某段的全部字段
func (s *Session) CopyAllFromSection(sectionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	section := s.sectionByID(sectionID)
	if section == nil {
		return ErrSectionNotFound
	}
	refs := make([]FieldRef, 0, len(section.FieldPositions))
	for _, key := range s.fieldOrder[sectionID] {
		refs = append(refs, FieldRef{FieldID: key, SectionID: sectionID})
	}
	entries := s.resolveEntries(refs)
	if len(entries) == 0 {
		return ErrEmptySection
	}
	s.clip.replace(entries)
	return nil
}

// Paste 把剪贴板内容粘贴进目标段，返回新分配的字段键
// 每个条目都经过键分配器（同名条目在同一次粘贴内也会依次编号）；
// 原始 Y 未被占用时沿用，否则堆叠到段内最大 Y 下方；X 缺省取 50
// 粘贴不消耗剪贴板，可重复执行
func (s *Session) Paste(targetSectionID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrSessionClosed
	}
	if s.clip.empty() {
		return nil, ErrEmptyClipboard
	}
	if targetSectionID == "" {
		return nil, ErrNoActiveSection
	}
	section := s.sectionByID(targetSectionID)
	if section == nil {
		return nil, ErrSectionNotFound
	}

	keys := make([]string, 0, len(s.clip.entries))
	for _, entry := range s.clip.snapshot() {
		geom := entry.Position
		if geom.X == 0 {
			geom.X = DefaultFieldX
		}
		if yOccupied(section, geom.Y) {
			geom.Y = nextStackY(section)
		}
		key := allocateKey(section, entry.FieldKey)
		section.FieldPositions[key] = geom
		s.fieldOrder[targetSectionID] = append(s.fieldOrder[targetSectionID], key)
		keys = append(keys, key)
	}
	return keys, nil
}

// ClearSection 清空某段的全部字段，空段上是成功的空操作
func (s *Session) ClearSection(sectionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	section := s.sectionByID(sectionID)
	if section == nil {
		return ErrSectionNotFound
	}
	section.FieldPositions = make(map[string]Geometry)
	s.fieldOrder[sectionID] = nil
	s.validate()
	return nil
}

// ClearAllSections 清空所有段
func (s *Session) ClearAllSections() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	for i := range s.sections {
		s.sections[i].FieldPositions = make(map[string]Geometry)
		s.fieldOrder[s.sections[i].ID] = nil
	}
	s.validate()
	return nil
}

// Compile 压平为绝对坐标布局，供预览/打印渲染
func (s *Session) Compile() Layout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return compileLayout(s.sections, s.fieldOrder, s.pageWidth)
}

// Sections 段列表的深拷贝快照，保存时整体写回
func (s *Session) Sections() []Section {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CloneSections(s.sections)
}

// State 完整状态快照
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SessionState{
		Sections:  CloneSections(s.sections),
		Selection: s.sel.snapshot(),
		Groups:    s.groups.snapshot(),
		Clipboard: s.clip.snapshot(),
		PageWidth: s.pageWidth,
	}
}

// sectionByID 调用方需持锁
func (s *Session) sectionByID(id string) *Section {
	for i := range s.sections {
		if s.sections[i].ID == id {
			return &s.sections[i]
		}
	}
	return nil
}

// translate 对单个字段应用位移，调用方需持锁
func (s *Session) translate(ref FieldRef, deltaX, deltaY float64) {
	section := s.sectionByID(ref.SectionID)
	if section == nil {
		return
	}
	geom, ok := section.FieldPositions[ref.FieldID]
	if !ok {
		return
	}
	geom.X += deltaX
	geom.Y += deltaY
	section.FieldPositions[ref.FieldID] = geom
}

// dropFromOrder 从段内插入顺序表摘除一个键，调用方需持锁
func (s *Session) dropFromOrder(sectionID, fieldID string) {
	order := s.fieldOrder[sectionID]
	for i, key := range order {
		if key == fieldID {
			s.fieldOrder[sectionID] = append(order[:i], order[i+1:]...)
			return
		}
	}
}

// resolveEntries 把字段引用解析成剪贴板条目，无法解析的跳过
func (s *Session) resolveEntries(refs []FieldRef) []ClipboardEntry {
	entries := make([]ClipboardEntry, 0, len(refs))
	for _, ref := range refs {
		section := s.sectionByID(ref.SectionID)
		if section == nil {
			continue
		}
		geom, ok := section.FieldPositions[ref.FieldID]
		if !ok {
			continue
		}
		entries = append(entries, ClipboardEntry{
			FieldKey: BaseIdentity(ref.FieldID),
			Position: geom,
		})
	}
	return entries
}

// validate 结构性变更后的统一校验：剔除选区和编组里已不存在的字段
func (s *Session) validate() {
	valid := func(ref FieldRef) bool {
		section := s.sectionByID(ref.SectionID)
		if section == nil {
			return false
		}
		_, ok := section.FieldPositions[ref.FieldID]
		return ok
	}
	s.sel.prune(valid)
	s.groups.prune(valid)
}
