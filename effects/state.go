package effects

import "github.com/axiom-wm/axiom/window"

// ShadowParams are the drop-shadow parameters for one window's shadow pass.
type ShadowParams struct {
	Size       float64
	BlurRadius float64
	OffsetX    float64
	OffsetY    float64
	Opacity    float64
	Color      [4]float32
}

// EffectState is one window's fully time-evaluated visual state: the merge
// of its last-committed defaults and whatever animations are currently
// driving it. Blur is independent of the animation system — set directly by
// SetWindowBlur, never animated.
type EffectState struct {
	ID           window.ID
	Position     Value
	Scale        Value
	Rotation     float64
	Opacity      float64
	CornerRadius float64
	BlurRadius   float64
	BlurIntensity float64
	Shadow       ShadowParams
}

// defaultState returns the at-rest EffectState for a newly registered
// window: identity scale, full opacity, the engine's configured corner
// radius and shadow, and no blur.
func (e *Engine) defaultState(id window.ID) EffectState {
	return EffectState{
		ID:           id,
		Scale:        Value{X: 1, Y: 1},
		Opacity:      1,
		CornerRadius: e.cfg.CornerRadius,
		Shadow: ShadowParams{
			Size:       e.cfg.Shadow.Size,
			BlurRadius: e.cfg.Shadow.BlurRadius,
			OffsetX:    e.cfg.Shadow.OffsetX,
			OffsetY:    e.cfg.Shadow.OffsetY,
			Opacity:    e.cfg.Shadow.Opacity,
			Color:      e.cfg.Shadow.Color,
		},
	}
}
