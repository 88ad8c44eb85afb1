package ui2d

// Color represents an RGBA color with float components (0.0 to 1.0).
type Color struct {
	R, G, B, A float32
}

// HUD palette.
var (
	ColorPanelBg     = Color{0.05, 0.05, 0.08, 0.6}
	ColorPanelBorder = Color{0.3, 0.3, 0.4, 0.8}
	ColorText        = Color{0.92, 0.92, 0.92, 1}
	ColorTextDim     = Color{0.6, 0.6, 0.68, 1}
	ColorHighlight   = Color{1, 0.85, 0.3, 1}
)
