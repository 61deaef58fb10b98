package editor

// ClipboardEntry 剪贴板条目：字段的基础标识加几何快照
// 只记基础标识，粘贴时在目标段重新分配唯一键
type ClipboardEntry struct {
	FieldKey string   `json:"fieldKey"`
	Position Geometry `json:"position"`
}

// clipboard 复制内容的有序快照，每次复制整体替换，与任何段无关
type clipboard struct {
	entries []ClipboardEntry
}

// replace 整体替换剪贴板内容
func (c *clipboard) replace(entries []ClipboardEntry) {
	c.entries = entries
}

// empty 剪贴板是否为空
func (c *clipboard) empty() bool {
	return len(c.entries) == 0
}

// snapshot 条目副本；粘贴不改动剪贴板，可重复粘贴
func (c *clipboard) snapshot() []ClipboardEntry {
	out := make([]ClipboardEntry, len(c.entries))
	copy(out, c.entries)
	return out
}
