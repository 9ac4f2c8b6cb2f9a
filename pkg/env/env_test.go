package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPrefersPrefixedVariable(t *testing.T) {
	t.Setenv("LOG_FORMAT", "console")
	assert.Equal(t, "console", Get("LOG_FORMAT", "json"))

	t.Setenv("CAPSTUDIO_LOG_FORMAT", "json")
	assert.Equal(t, "json", Get("LOG_FORMAT", "text"))
}

func TestGetFallsBackOnBlank(t *testing.T) {
	t.Setenv("CAPSTUDIO_LOG_FORMAT", "  ")
	t.Setenv("LOG_FORMAT", "")
	assert.Equal(t, "json", Get("LOG_FORMAT", "json"))
}
