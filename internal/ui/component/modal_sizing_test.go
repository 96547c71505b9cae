package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateModalDimensions(t *testing.T) {
	cfg := ModalSizeConfig{
		WidthPct:       0.5,
		MaxWidth:       60,
		MinWidth:       30,
		TopMarginPct:   0.2,
		FallbackWidth:  80,
		FallbackHeight: 20,
	}

	tests := []struct {
		name          string
		width, height int
		wantWidth     int
		wantMargin    int
	}{
		{name: "unknown size uses fallback", width: 0, height: 0, wantWidth: 40, wantMargin: 4},
		{name: "regular terminal", width: 100, height: 40, wantWidth: 50, wantMargin: 8},
		{name: "wide terminal is capped", width: 300, height: 50, wantWidth: 60, wantMargin: 10},
		{name: "narrow terminal uses min width", width: 40, height: 10, wantWidth: 30, wantMargin: 2},
		{name: "min width never exceeds terminal", width: 25, height: 10, wantWidth: 25, wantMargin: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			width, margin := CalculateModalDimensions(tt.width, tt.height, cfg)
			assert.Equal(t, tt.wantWidth, width)
			assert.Equal(t, tt.wantMargin, margin)
		})
	}
}
