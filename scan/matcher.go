package scan

import (
	"strings"

	"github.com/eoltools/eolscan/catalog"
)

// Match maps a free-text package name to a product key from the snapshot.
// Case-insensitive, first hit wins, in strict priority order: exact match,
// substring match in either direction, then normalized variants of the
// name (separators stripped, first whitespace token) tried exact-first.
// Substring ties resolve to the first key in snapshot iteration order.
func Match(name string, products *catalog.Snapshot) (string, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", false
	}

	if products.Has(name) {
		return name, true
	}
	if key, ok := substringMatch(name, products.Keys()); ok {
		return key, true
	}

	variants := []string{
		strings.ReplaceAll(name, "-", ""),
		strings.ReplaceAll(name, "_", ""),
		strings.ReplaceAll(name, ".", ""),
		firstToken(name),
	}
	for _, variant := range variants {
		if variant == "" {
			continue
		}
		if products.Has(variant) {
			return variant, true
		}
		if key, ok := substringMatch(variant, products.Keys()); ok {
			return key, true
		}
	}

	return "", false
}

func substringMatch(name string, keys []string) (string, bool) {
	for _, key := range keys {
		if strings.Contains(key, name) || strings.Contains(name, key) {
			return key, true
		}
	}
	return "", false
}

func firstToken(name string) string {
	if fields := strings.Fields(name); len(fields) > 0 {
		return fields[0]
	}
	return name
}
