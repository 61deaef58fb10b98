package editor

// PointsPerInch 文档模型固定单位换算：1 英寸 = 72 磅
const PointsPerInch = 72

// Section 文档的独立子区域（如支票的三联之一），自持一套字段
// 段在模板内有序，顺序决定编译后的纵向堆叠
type Section struct {
	ID             string              `json:"id"`
	Name           string              `json:"name"`
	HeightInches   float64             `json:"heightInches"`
	FieldPositions map[string]Geometry `json:"fieldPositions"`
}

// HeightPoints 段高度（磅）
func (s *Section) HeightPoints() float64 {
	return s.HeightInches * PointsPerInch
}

// maxFieldY 段内现有字段的最大 Y；空段返回 ok=false
func maxFieldY(s *Section) (float64, bool) {
	var max float64
	found := false
	for _, geom := range s.FieldPositions {
		if !found || geom.Y > max {
			max = geom.Y
			found = true
		}
	}
	return max, found
}

// nextStackY 新字段的默认纵向位置：现有最大 Y 下方 StackGap 处，空段为 0
func nextStackY(s *Section) float64 {
	max, ok := maxFieldY(s)
	if !ok {
		return 0
	}
	return max + StackGap
}

// yOccupied 段内是否已有字段占用该 Y（用于粘贴时判断堆叠冲突）
func yOccupied(s *Section, y float64) bool {
	for _, geom := range s.FieldPositions {
		if geom.Y == y {
			return true
		}
	}
	return false
}

// CloneSections 段列表的深拷贝，持久化前使用，避免与会话内状态产生别名
func CloneSections(sections []Section) []Section {
	out := make([]Section, len(sections))
	for i, s := range sections {
		out[i] = s
		out[i].FieldPositions = make(map[string]Geometry, len(s.FieldPositions))
		for key, geom := range s.FieldPositions {
			out[i].FieldPositions[key] = geom
		}
	}
	return out
}
