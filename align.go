package caption

import "fmt"

// invalidName is returned by the String methods for enum values outside the
// declared range. Such a value can only be produced by casting; the String
// methods log it once and never panic.
const invalidName = "<invalid>"

// HAlign controls how glyph runs are justified horizontally within the
// layout box produced by the GlyphLayouter.
type HAlign uint8

const (
	HAlignLeft HAlign = iota
	HAlignRight
	HAlignCenter
)

// ParseHAlign converts a symbolic name ("left", "right", "center") to an
// HAlign value.
func ParseHAlign(s string) (HAlign, error) {
	switch s {
	case "left":
		return HAlignLeft, nil
	case "right":
		return HAlignRight, nil
	case "center":
		return HAlignCenter, nil
	}
	return 0, fmt.Errorf("caption: invalid h_align %q", s)
}

func (a HAlign) String() string {
	switch a {
	case HAlignLeft:
		return "left"
	case HAlignRight:
		return "right"
	case HAlignCenter:
		return "center"
	}
	logOnce(fmt.Sprintf("invalid h_align value %d", uint8(a)))
	return invalidName
}

// valid reports whether the value is one of the declared constants.
func (a HAlign) valid() bool { return a <= HAlignCenter }

// VAlign controls vertical justification. VAlignNone leaves glyph runs on
// the natural baseline.
type VAlign uint8

const (
	VAlignNone VAlign = iota
	VAlignTop
	VAlignBottom
	VAlignCenter
)

// ParseVAlign converts a symbolic name ("none", "top", "bottom", "center")
// to a VAlign value.
func ParseVAlign(s string) (VAlign, error) {
	switch s {
	case "none":
		return VAlignNone, nil
	case "top":
		return VAlignTop, nil
	case "bottom":
		return VAlignBottom, nil
	case "center":
		return VAlignCenter, nil
	}
	return 0, fmt.Errorf("caption: invalid v_align %q", s)
}

func (a VAlign) String() string {
	switch a {
	case VAlignNone:
		return "none"
	case VAlignTop:
		return "top"
	case VAlignBottom:
		return "bottom"
	case VAlignCenter:
		return "center"
	}
	logOnce(fmt.Sprintf("invalid v_align value %d", uint8(a)))
	return invalidName
}

func (a VAlign) valid() bool { return a <= VAlignCenter }

// HAttach selects which vertical edge (or the center) of the viewport a
// node's local offset is measured from.
type HAttach uint8

const (
	HAttachLeft HAttach = iota
	HAttachRight
	HAttachCenter
)

// ParseHAttach converts a symbolic name ("left", "right", "center") to an
// HAttach value.
func ParseHAttach(s string) (HAttach, error) {
	switch s {
	case "left":
		return HAttachLeft, nil
	case "right":
		return HAttachRight, nil
	case "center":
		return HAttachCenter, nil
	}
	return 0, fmt.Errorf("caption: invalid h_attach %q", s)
}

func (a HAttach) String() string {
	switch a {
	case HAttachLeft:
		return "left"
	case HAttachRight:
		return "right"
	case HAttachCenter:
		return "center"
	}
	logOnce(fmt.Sprintf("invalid h_attach value %d", uint8(a)))
	return invalidName
}

func (a HAttach) valid() bool { return a <= HAttachCenter }

// VAttach selects which horizontal edge (or the center) of the viewport a
// node's local offset is measured from. The coordinate system has its origin
// at the bottom-left, with Y increasing upward.
type VAttach uint8

const (
	VAttachBottom VAttach = iota
	VAttachTop
	VAttachCenter
)

// ParseVAttach converts a symbolic name ("bottom", "top", "center") to a
// VAttach value.
func ParseVAttach(s string) (VAttach, error) {
	switch s {
	case "bottom":
		return VAttachBottom, nil
	case "top":
		return VAttachTop, nil
	case "center":
		return VAttachCenter, nil
	}
	return 0, fmt.Errorf("caption: invalid v_attach %q", s)
}

func (a VAttach) String() string {
	switch a {
	case VAttachBottom:
		return "bottom"
	case VAttachTop:
		return "top"
	case VAttachCenter:
		return "center"
	}
	logOnce(fmt.Sprintf("invalid v_attach value %d", uint8(a)))
	return invalidName
}

func (a VAttach) valid() bool { return a <= VAttachCenter }
