package utils

import (
	json "github.com/bytedance/sonic"
)

// JsonString renders obj as compact JSON for log fields. Marshal failures
// yield an empty string; callers only use this for diagnostics.
func JsonString(obj any) string {
	jsonStr, _ := json.Marshal(obj)
	return string(jsonStr)
}

// JsonIndent renders obj as indented JSON.
func JsonIndent(obj any) string {
	jsonStr, _ := json.MarshalIndent(obj, "", "  ")
	return string(jsonStr)
}
