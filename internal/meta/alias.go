package meta

import (
	"encoding/json"
	"log/slog"
	"os"
	"strings"
)

// Aliases maps raw feature identifiers to display names.
type Aliases map[string]string

func LoadAliases(path string) Aliases {
	if path == "" {
		return Aliases{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("feature aliases unavailable", "path", path, "error", err)
		return Aliases{}
	}
	var a Aliases
	if err := json.Unmarshal(data, &a); err != nil {
		slog.Warn("feature aliases unreadable", "path", path, "error", err)
		return Aliases{}
	}
	return a
}

// Prettify returns the alias for s, else s with underscores as spaces and
// runs of whitespace collapsed.
func (a Aliases) Prettify(s string) string {
	k := strings.TrimSpace(s)
	if k == "" {
		return "–"
	}
	if v, ok := a[k]; ok && v != "" {
		return v
	}
	return strings.Join(strings.Fields(strings.ReplaceAll(k, "_", " ")), " ")
}
