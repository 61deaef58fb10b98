package editor

// DefaultPageWidth 默认页宽：8.5 英寸（612 磅）
const DefaultPageWidth = 612

// CompiledField 编译产物中的单个字段：页级绝对坐标加完整样式
type CompiledField struct {
	ID           string   `json:"id"`
	FieldKey     string   `json:"fieldKey"`
	BaseIdentity string   `json:"baseIdentity"`
	SectionID    string   `json:"sectionId"`
	AbsoluteY    float64  `json:"absoluteY"`
	Geometry     Geometry `json:"geometry"`
}

// Layout 预览/打印渲染器消费的扁平布局
type Layout struct {
	Fields      []CompiledField `json:"fields"`
	PageWidth   float64         `json:"pageWidth"`
	TotalHeight float64         `json:"totalHeight"`
}

// compileLayout 把多段布局压平成单份绝对坐标字段列表
// 按段序累计纵向偏移（前序段高度之和，英寸按 72 磅换算），
// 段内按字段插入顺序输出；同一输入必然产出同一结果
func compileLayout(sections []Section, fieldOrder map[string][]string, pageWidth float64) Layout {
	if pageWidth <= 0 {
		pageWidth = DefaultPageWidth
	}

	layout := Layout{
		Fields:    []CompiledField{},
		PageWidth: pageWidth,
	}

	yOffset := 0.0
	for i := range sections {
		section := &sections[i]
		for _, key := range fieldOrder[section.ID] {
			geom, ok := section.FieldPositions[key]
			if !ok {
				continue
			}
			layout.Fields = append(layout.Fields, CompiledField{
				ID:           section.ID + "-" + key,
				FieldKey:     key,
				BaseIdentity: BaseIdentity(key),
				SectionID:    section.ID,
				AbsoluteY:    geom.Y + yOffset,
				Geometry:     geom,
			})
		}
		yOffset += section.HeightPoints()
	}

	layout.TotalHeight = yOffset
	return layout
}
