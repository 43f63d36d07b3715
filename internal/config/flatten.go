package config

import (
	"strings"
)

// secretKeys lists the dot-separated keys whose values should be masked.
var secretKeys = map[string]bool{
	"api_token":     true,
	"listen.secret": true,
}

// IsSecretKey returns true if the given dot-separated key is a secret.
func IsSecretKey(key string) bool {
	return secretKeys[key]
}

// Flatten converts a nested map into a flat map with dot-separated keys.
// For example, {"listen": {"addr": ":8090"}} becomes {"listen.addr": ":8090"}.
func Flatten(m map[string]any) map[string]any {
	out := make(map[string]any)
	flatten("", m, out)
	return out
}

func flatten(prefix string, m map[string]any, out map[string]any) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch child := v.(type) {
		case map[string]any:
			flatten(key, child, out)
		default:
			out[key] = v
		}
	}
}

// Unflatten converts a flat dot-separated map back into a nested map.
func Unflatten(flat map[string]any) map[string]any {
	out := make(map[string]any)
	for key, value := range flat {
		parts := strings.Split(key, ".")
		m := out
		for _, part := range parts[:len(parts)-1] {
			child, ok := m[part].(map[string]any)
			if !ok {
				child = make(map[string]any)
				m[part] = child
			}
			m = child
		}
		m[parts[len(parts)-1]] = value
	}
	return out
}

// MaskSecrets returns a copy of the flat map with secret values replaced by
// a masked form keeping the last four characters.
func MaskSecrets(flat map[string]any) map[string]any {
	out := make(map[string]any, len(flat))
	for key, value := range flat {
		if !IsSecretKey(key) {
			out[key] = value
			continue
		}
		s, ok := value.(string)
		if !ok || s == "" {
			out[key] = value
			continue
		}
		if len(s) <= 4 {
			out[key] = "***" + s
		} else {
			out[key] = "***" + s[len(s)-4:]
		}
	}
	return out
}
