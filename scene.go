package caption

// Scene owns a set of text nodes and fans per-frame drawing and global
// notifications (viewport resize, language change) out to them. The scene is
// also the serialization point: all mutation and drawing for its nodes must
// happen on the same goroutine.
type Scene struct {
	nodes []*TextNode

	// Resolver, when set, is used for set-time resource-string validation in
	// SetText. Draw-time resolution always uses the FrameContext resolver.
	Resolver ContentResolver
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{}
}

// NewTextNode creates a text node with default state owned by this scene.
func (s *Scene) NewTextNode() *TextNode {
	n := newTextNode(s)
	s.nodes = append(s.nodes, n)
	return n
}

// Remove releases a node's cached resources and detaches it from the scene.
func (s *Scene) Remove(n *TextNode) {
	for i, c := range s.nodes {
		if c == n {
			s.nodes = append(s.nodes[:i], s.nodes[i+1:]...)
			break
		}
	}
	n.release()
	n.scene = nil
}

// Nodes returns the scene's nodes in draw order.
func (s *Scene) Nodes() []*TextNode {
	return s.nodes
}

// Draw composes and submits draw commands for every node, in insertion
// order. Ordering across nodes follows that order; ordering within a node's
// batches is handled by the node itself.
func (s *Scene) Draw(frame *FrameContext) {
	for _, n := range s.nodes {
		n.Draw(frame)
	}
}

// OnViewportResized notifies every node that the viewport dimensions
// changed, invalidating anchor positions.
func (s *Scene) OnViewportResized() {
	for _, n := range s.nodes {
		n.OnViewportResized()
	}
}

// OnLanguageChange notifies every node that resolver output may have
// changed, invalidating resolved text.
func (s *Scene) OnLanguageChange() {
	for _, n := range s.nodes {
		n.OnLanguageChange()
	}
}
