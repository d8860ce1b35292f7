package caption

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float properties on a TextNode
// simultaneously. Create one via the convenience constructors and call
// Update(dt) each frame from the same goroutine that mutates the node.
// Values are written through the node's setters so invalidation flags stay
// correct.
//
// There is no global animation manager; users drive Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	apply  func(vals [4]float64)
	Done   bool
}

// Update advances all tweens by dt seconds and applies the values.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	var vals [4]float64
	allDone := true
	for i := 0; i < g.count; i++ {
		v, finished := g.tweens[i].Update(dt)
		vals[i] = float64(v)
		if !finished {
			allDone = false
		}
	}
	g.apply(vals)
	g.Done = allDone
}

// TweenOpacity animates node opacity to the target value.
func TweenOpacity(node *TextNode, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(float32(node.Opacity()), float32(to), duration, fn)
	g.apply = func(vals [4]float64) { node.SetOpacity(vals[0]) }
	return g
}

// TweenScale animates the node's explicit scale to the target value.
func TweenScale(node *TextNode, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(float32(node.Scale()), float32(to), duration, fn)
	g.apply = func(vals [4]float64) { node.SetScale(vals[0]) }
	return g
}

// TweenRotation animates the node's rotation (degrees) to the target value.
func TweenRotation(node *TextNode, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(float32(node.Rotate()), float32(to), duration, fn)
	g.apply = func(vals [4]float64) { node.SetRotate(vals[0]) }
	return g
}

// TweenColor animates all four color components to the target color.
func TweenColor(node *TextNode, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := node.Color()
	g := &TweenGroup{count: 4}
	g.tweens[0] = gween.New(float32(from[0]), float32(to.R), duration, fn)
	g.tweens[1] = gween.New(float32(from[1]), float32(to.G), duration, fn)
	g.tweens[2] = gween.New(float32(from[2]), float32(to.B), duration, fn)
	g.tweens[3] = gween.New(float32(from[3]), float32(to.A), duration, fn)
	g.apply = func(vals [4]float64) {
		// Components are always in range here; the error path is unreachable.
		_ = node.SetColor(vals[:])
	}
	return g
}

// TweenPosition animates the node's local offset to the target coordinates,
// preserving a 3-component offset's z.
func TweenPosition(node *TextNode, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := node.Position()
	g := &TweenGroup{count: 2}
	g.tweens[0] = gween.New(float32(from[0]), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(from[1]), float32(toY), duration, fn)
	g.apply = func(vals [4]float64) {
		pos := node.Position()
		pos[0] = vals[0]
		pos[1] = vals[1]
		_ = node.SetPosition(pos)
	}
	return g
}
