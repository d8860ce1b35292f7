package caption

// StaticViewport is a fixed-size Viewport. Value type; pass a new one after
// a resize (and call Scene.OnViewportResized).
type StaticViewport struct {
	W, H float64
}

// VirtualWidth returns the viewport's virtual width.
func (v StaticViewport) VirtualWidth() float64 { return v.W }

// VirtualHeight returns the viewport's virtual height.
func (v StaticViewport) VirtualHeight() float64 { return v.H }

// TiltFunc adapts a function to TiltProvider.
type TiltFunc func() Vec2

// Tilt implements TiltProvider.
func (f TiltFunc) Tilt() Vec2 { return f() }

// NoTilt reports zero tilt, for platforms without orientation sensors.
var NoTilt TiltProvider = TiltFunc(func() Vec2 { return Vec2{} })

// RoleFunc adapts a function to RoleQuery.
type RoleFunc func() bool

// IsHost implements RoleQuery.
func (f RoleFunc) IsHost() bool { return f() }

// HostRole and ClientRole are fixed-role queries for single-role apps.
var (
	HostRole   RoleQuery = RoleFunc(func() bool { return true })
	ClientRole RoleQuery = RoleFunc(func() bool { return false })
)
