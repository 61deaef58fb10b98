package utils

import (
	"encoding/json"

	"k8s.io/klog/v2"
)

// ToJSON 序列化为 JSON 字符串，失败时返回空串（仅用于日志等非关键路径）
func ToJSON(v any) string {
	jsonData, err := json.Marshal(v)
	if err != nil {
		klog.Errorf("JSON序列化失败: %v", err)
		return ""
	}
	return string(jsonData)
}

// IsValidJSON 判断字符串是否为合法 JSON（透明偏好包入库前的最低限度校验）
func IsValidJSON(s string) bool {
	return json.Valid([]byte(s))
}
