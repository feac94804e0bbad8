package integrity

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// numericField 读取有限数值。元数据通常直接来自 JSON 解码，常见为 float64 与
// json.Number，整数类型和十进制字符串也接受
func numericField(meta map[string]any, key string) (float64, bool) {
	raw, ok := meta[key]
	if !ok || raw == nil {
		return 0, false
	}

	var v float64
	switch n := raw.(type) {
	case float64:
		v = n
	case float32:
		v = float64(n)
	case int:
		v = float64(n)
	case int8:
		v = float64(n)
	case int16:
		v = float64(n)
	case int32:
		v = float64(n)
	case int64:
		v = float64(n)
	case uint:
		v = float64(n)
	case uint8:
		v = float64(n)
	case uint16:
		v = float64(n)
	case uint32:
		v = float64(n)
	case uint64:
		v = float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		v = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		v = f
	default:
		return 0, false
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// boolField 只有真正的 bool true 才算，字符串 "true" 不算
func boolField(meta map[string]any, key string) bool {
	b, ok := meta[key].(bool)
	return ok && b
}
