package outwriter

import (
	"testing"

	"github.com/huangsam/commentiq/schema"
	"github.com/stretchr/testify/assert"
)

func TestGetMaxTableTextWidth(t *testing.T) {
	tests := []struct {
		name       string
		width      int
		detail     bool
		crosscheck bool
		want       int
	}{
		{"narrow clamps to minimum", 60, false, false, 20},
		{"normal", 100, false, false, 50},
		{"wide clamps to maximum", 300, false, false, 80},
		{"detail columns", 200, true, false, 80},
		{"detail and crosscheck", 150, true, true, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Width = tt.width
			cfg.Detail = tt.detail
			cfg.Crosscheck = tt.crosscheck
			assert.Equal(t, tt.want, getMaxTableTextWidth(cfg))
		})
	}
}

func TestFormatLabel(t *testing.T) {
	cfg := testConfig()
	assert.Equal(t, "positive", formatLabel(schema.Positive, cfg))

	cfg.UseColors = true
	assert.Contains(t, formatLabel(schema.Negative, cfg), "negative")
}

func TestCreateFormatters(t *testing.T) {
	fmtFloat, fmtPercent := createFormatters(2)
	assert.Equal(t, "0.33", fmtFloat(1.0/3))
	assert.Equal(t, "33.3%", fmtPercent(100.0/3))

	fmtFloat, fmtPercent = createFormatters(0)
	assert.Equal(t, "3", fmtFloat(3.2))
	assert.Equal(t, "50%", fmtPercent(50))
}
