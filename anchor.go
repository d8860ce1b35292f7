package caption

import "fmt"

// updateAnchor refreshes the final anchor position if the offset,
// attachment, placement mode, or viewport dimensions changed.
//
// World-space nodes pass the local offset through unchanged. Screen-space
// nodes add the attachment edge offsets derived from the viewport's virtual
// dimensions. A 2-component offset gains z = 0.
//
// An out-of-range attachment value here is an internal-consistency bug (the
// setters validate), so it panics rather than returning an error.
func (n *TextNode) updateAnchor(vp Viewport) Vec3 {
	if !n.dirty.anchor {
		return n.finalAnchor
	}

	var offsetH, offsetV float64
	if !n.inWorld {
		switch n.hAttach {
		case HAttachLeft:
			offsetH = 0
		case HAttachRight:
			offsetH = vp.VirtualWidth()
		case HAttachCenter:
			offsetH = vp.VirtualWidth() / 2
		default:
			panic(fmt.Sprintf("caption: invalid h_attach %d", uint8(n.hAttach)))
		}
		switch n.vAttach {
		case VAttachTop:
			offsetV = vp.VirtualHeight()
		case VAttachBottom:
			offsetV = 0
		case VAttachCenter:
			offsetV = vp.VirtualHeight() / 2
		default:
			panic(fmt.Sprintf("caption: invalid v_attach %d", uint8(n.vAttach)))
		}
	}

	n.finalAnchor = Vec3{X: n.position[0] + offsetH, Y: n.position[1] + offsetV}
	if len(n.position) == 3 {
		n.finalAnchor.Z = n.position[2]
	}
	n.dirty.anchor = false
	return n.finalAnchor
}
