package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatters(t *testing.T) {
	tests := []struct {
		name   string
		format func(string) string
		symbol string
	}{
		{name: "info", format: FormatInfo, symbol: "•"},
		{name: "success", format: FormatSuccess, symbol: "✓"},
		{name: "warning", format: FormatWarning, symbol: "!"},
		{name: "error", format: FormatError, symbol: "✗"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.format("3 file(s)")
			assert.Contains(t, got, tt.symbol+" 3 file(s)")
		})
	}
}

func TestRule(t *testing.T) {
	assert.Contains(t, Rule(), strings.Repeat("=", ruleWidth))
}

func TestRenderBox(t *testing.T) {
	got := RenderBox("Files to move", "  1. Essay1.pdf")
	assert.Contains(t, got, "Files to move")
	assert.Contains(t, got, "1. Essay1.pdf")
	assert.Contains(t, got, "╭")
}
