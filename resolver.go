package caption

import (
	"encoding/json"
	"fmt"
	"strings"
)

// PlainResolver is a ContentResolver that passes raw text through
// untouched. Use it when node text never contains resource references.
type PlainResolver struct{}

// Resolve implements ContentResolver.
func (PlainResolver) Resolve(raw, tag string) (string, bool) {
	return raw, true
}

// ResourceResolver expands structured resource strings against a
// translation table. A resource string is a JSON object:
//
//	{"r": "resourceID"}                 look up resourceID
//	{"v": "literal"}                    literal value
//	{"r": "greeting", "s": [["${N}", {"v": "Sam"}]]}
//
// where "s" lists subst pairs applied to the expanded value; each
// replacement is itself a resource string. Text that does not start with
// '{' passes through unchanged. Malformed resource strings resolve to the
// raw text with valid = false; resolution is best-effort and never fails
// hard, since draw-time is too late to do anything else about it.
type ResourceResolver struct {
	// Strings maps resource IDs to translated values for the active
	// language.
	Strings map[string]string
}

// resourceRef is the parsed form of one resource-string node.
type resourceRef struct {
	Resource string               `json:"r"`
	Value    string               `json:"v"`
	Subs     [][2]json.RawMessage `json:"s"`
	Fallback string               `json:"f"`
}

// Resolve implements ContentResolver. The tag names the call site in
// diagnostics.
func (r *ResourceResolver) Resolve(raw, tag string) (string, bool) {
	if len(raw) == 0 || raw[0] != '{' {
		return raw, true
	}
	out, err := r.expand([]byte(raw))
	if err != nil {
		logOnce(fmt.Sprintf("%s: unresolvable resource string %q: %v", tag, raw, err))
		return raw, false
	}
	return out, true
}

func (r *ResourceResolver) expand(data []byte) (string, error) {
	var ref resourceRef
	if err := json.Unmarshal(data, &ref); err != nil {
		return "", err
	}

	var val string
	switch {
	case ref.Resource != "":
		v, ok := r.Strings[ref.Resource]
		if !ok {
			if ref.Fallback == "" {
				return "", fmt.Errorf("unknown resource %q", ref.Resource)
			}
			v = ref.Fallback
		}
		val = v
	default:
		val = ref.Value
	}

	for _, sub := range ref.Subs {
		var key string
		if err := json.Unmarshal(sub[0], &key); err != nil {
			return "", fmt.Errorf("bad subst key: %w", err)
		}
		var rep string
		// A replacement is either a plain string or a nested resource ref.
		if err := json.Unmarshal(sub[1], &rep); err != nil {
			var err2 error
			rep, err2 = r.expand(sub[1])
			if err2 != nil {
				return "", fmt.Errorf("bad subst value for %q: %w", key, err2)
			}
		}
		val = strings.ReplaceAll(val, key, rep)
	}
	return val, nil
}
