package env

import (
	"os"
	"strings"
)

// Prefix namespaces the service's own variables.
const Prefix = "CAPSTUDIO_"

// Get returns CAPSTUDIO_<key> when set, then the bare key, then fallback.
// Blank values count as unset.
func Get(key, fallback string) string {
	for _, name := range []string{Prefix + key, key} {
		if val := strings.TrimSpace(os.Getenv(name)); val != "" {
			return val
		}
	}
	return fallback
}
