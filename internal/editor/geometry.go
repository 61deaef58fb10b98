package editor

// MinFieldSize 字段宽高下限（单位：磅），resize 时收敛到该值而不是报错
const MinFieldSize = 20

// DefaultFieldX 粘贴时源坐标缺失情况下的默认 X
const DefaultFieldX = 50

// StackGap 新增/粘贴字段沿用的纵向堆叠间距
const StackGap = 40

// Geometry 字段的摆放记录：位置、尺寸、字体与线条样式
// 坐标为段内局部坐标（左上角原点），与宽高同为磅
type Geometry struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	FontSize    float64 `json:"fontSize,omitempty"`
	FontFamily  string  `json:"fontFamily,omitempty"`
	Alignment   string  `json:"alignment,omitempty"`
	Format      string  `json:"format,omitempty"`
	FieldType   string  `json:"fieldType,omitempty"`
	LineWidth   float64 `json:"lineWidth,omitempty"`
	LineColor   string  `json:"lineColor,omitempty"`
	LineStyle   string  `json:"lineStyle,omitempty"`
	TextContent string  `json:"textContent,omitempty"`
}

// clampSize 宽高最小值钳制
func clampSize(v float64) float64 {
	if v < MinFieldSize {
		return MinFieldSize
	}
	return v
}
