package caption

import "github.com/hajimehoshi/ebiten/v2"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default text tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// Vec2 is a 2D vector used for tilt samples and offsets.
type Vec2 struct {
	X, Y float64
}

// Vec3 is a 3D vector used for anchor positions. Overlay text mostly lives
// in the XY plane; Z carries overlay depth for world-space placement.
type Vec3 struct {
	X, Y, Z float64
}

// BlendMode selects a compositing operation for a draw command.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota // source-over (standard alpha blending)
	BlendGlow                    // premultiplied additive, used by the trail pass
)

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	if b == BlendGlow {
		return ebiten.BlendLighter
	}
	return ebiten.BlendSourceOver
}

// Shadow holds the drop-shadow parameters for one draw command. UOffset and
// VOffset are in texture space and already account for the element's UV
// scale; Intensity is the final shadow opacity after the node's
// opacity-scales-shadow rule has been applied.
type Shadow struct {
	UOffset   float64
	VOffset   float64
	Blur      float64
	Intensity float64
}

// Glow holds additive-glow parameters for trail draw commands.
type Glow struct {
	Amount float64
	Blur   float64
}
