package catalog

import (
	"os"

	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"
)

// FieldDef 字段目录条目：基础标识对应的显示名与默认几何
// 编辑器只读引用，用于 addField 的初始摆放与标签解析
type FieldDef struct {
	Key           string  `yaml:"key" json:"key"`
	Label         string  `yaml:"label" json:"label"`
	DefaultWidth  float64 `yaml:"default_width" json:"defaultWidth"`
	DefaultHeight float64 `yaml:"default_height" json:"defaultHeight"`
	Format        string  `yaml:"format,omitempty" json:"format,omitempty"`
	FieldType     string  `yaml:"field_type,omitempty" json:"fieldType,omitempty"`
	IsStatic      bool    `yaml:"is_static,omitempty" json:"isStatic,omitempty"`
}

// Catalog 字段目录，运行期只读
type Catalog struct {
	defs  map[string]FieldDef
	order []string
}

// 预置目录：支票/发票设计器可放置的字段
// 基础标识约定不以 -<数字> 结尾，避免与重复计数器后缀混淆
var builtinDefs = []FieldDef{
	{Key: "date", Label: "Date", DefaultWidth: 120, DefaultHeight: 24, Format: "MM/DD/YYYY"},
	{Key: "payee", Label: "Pay to the Order of", DefaultWidth: 280, DefaultHeight: 24},
	{Key: "amount", Label: "Amount", DefaultWidth: 120, DefaultHeight: 24, Format: "currency"},
	{Key: "amountWords", Label: "Amount in Words", DefaultWidth: 400, DefaultHeight: 24},
	{Key: "memo", Label: "Memo", DefaultWidth: 240, DefaultHeight: 24},
	{Key: "chequeNumber", Label: "Cheque No.", DefaultWidth: 100, DefaultHeight: 24},
	{Key: "payerAddress", Label: "Payer Address", DefaultWidth: 240, DefaultHeight: 60},
	{Key: "bankInfo", Label: "Bank Info", DefaultWidth: 240, DefaultHeight: 48},
	{Key: "signature", Label: "Signature", DefaultWidth: 200, DefaultHeight: 40},
	{Key: "invoiceNumber", Label: "Invoice No.", DefaultWidth: 120, DefaultHeight: 24},
	{Key: "clientName", Label: "Client", DefaultWidth: 240, DefaultHeight: 24},
	{Key: "clientAddress", Label: "Client Address", DefaultWidth: 240, DefaultHeight: 60},
	{Key: "subtotal", Label: "Subtotal", DefaultWidth: 120, DefaultHeight: 24, Format: "currency"},
	{Key: "tax", Label: "Tax", DefaultWidth: 120, DefaultHeight: 24, Format: "currency"},
	{Key: "total", Label: "Total", DefaultWidth: 120, DefaultHeight: 24, Format: "currency"},
	{Key: "label", Label: "Static Label", DefaultWidth: 120, DefaultHeight: 24, FieldType: "static", IsStatic: true},
	{Key: "line", Label: "Line", DefaultWidth: 200, DefaultHeight: 20, FieldType: "line", IsStatic: true},
	{Key: "box", Label: "Box", DefaultWidth: 120, DefaultHeight: 60, FieldType: "box", IsStatic: true},
}

// Builtin 仅含预置条目的目录
func Builtin() *Catalog {
	c := &Catalog{defs: make(map[string]FieldDef, len(builtinDefs))}
	for _, def := range builtinDefs {
		c.put(def)
	}
	return c
}

// Load 预置目录叠加 yaml 覆盖文件；path 为空或文件不存在时只用预置
func Load(path string) *Catalog {
	c := Builtin()
	if path == "" {
		return c
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			klog.Errorf("读取字段目录文件失败: %v", err)
		}
		return c
	}
	var overrides []FieldDef
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		klog.Errorf("解析字段目录文件失败: %v", err)
		return c
	}
	for _, def := range overrides {
		if def.Key == "" {
			continue
		}
		c.put(def)
	}
	klog.V(6).Infof("字段目录加载完成: %d 个条目（含 %d 个覆盖）", len(c.order), len(overrides))
	return c
}

func (c *Catalog) put(def FieldDef) {
	if _, exists := c.defs[def.Key]; !exists {
		c.order = append(c.order, def.Key)
	}
	c.defs[def.Key] = def
}

// Get 按基础标识查询字段定义
func (c *Catalog) Get(baseKey string) (FieldDef, bool) {
	def, ok := c.defs[baseKey]
	return def, ok
}

// List 全部条目，保持预置顺序
func (c *Catalog) List() []FieldDef {
	out := make([]FieldDef, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.defs[key])
	}
	return out
}
