package component

// ModalSizeConfig holds configuration for modal sizing, in terminal cells.
type ModalSizeConfig struct {
	WidthPct       float64 // Percentage of parent width (e.g., 0.6)
	MaxWidth       int     // Maximum width in cells
	MinWidth       int     // Minimum width in cells
	TopMarginPct   float64 // Top margin as percentage of parent height
	FallbackWidth  int     // Used before the terminal size is known
	FallbackHeight int
}

// PermissionPopupSizeDefaults provides default sizing for the permission popup.
var PermissionPopupSizeDefaults = ModalSizeConfig{
	WidthPct:       0.6,
	MaxWidth:       72,
	MinWidth:       36,
	TopMarginPct:   0.15,
	FallbackWidth:  80,
	FallbackHeight: 24,
}

// CalculateModalDimensions computes width and top margin for a terminal of
// parentWidth x parentHeight cells.
func CalculateModalDimensions(parentWidth, parentHeight int, cfg ModalSizeConfig) (width, marginTop int) {
	// A terminal narrower than 20 cells has not reported its size yet.
	if parentWidth < 20 {
		parentWidth = cfg.FallbackWidth
	}
	if parentHeight < 5 {
		parentHeight = cfg.FallbackHeight
	}

	width = int(float64(parentWidth) * cfg.WidthPct)
	if width > cfg.MaxWidth {
		width = cfg.MaxWidth
	}
	if width < cfg.MinWidth {
		width = min(cfg.MinWidth, parentWidth)
	}

	marginTop = int(float64(parentHeight) * cfg.TopMarginPct)
	return width, marginTop
}
