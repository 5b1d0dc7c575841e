package formkit

import (
	"slices"
	"strconv"
	"strings"
)

// splitPath parses a dot-separated control path into segments. The empty
// path is valid and resolves to the control itself. Paths with empty
// segments ("a..b", ".a", "a.") are rejected.
func splitPath(path string) ([]string, bool) {
	if path == "" {
		return nil, true
	}
	segs := strings.Split(path, ".")
	for _, seg := range segs {
		if seg == "" {
			return nil, false
		}
	}
	return segs, true
}

// descendLocked walks segments from c: group segments resolve by child name,
// array segments by decimal index.
func descendLocked(c implControl, segs []string) (implControl, bool) {
	cur := c
	for _, seg := range segs {
		switch t := cur.(type) {
		case *Group:
			ch, ok := t.children[seg]
			if !ok {
				return nil, false
			}
			cur = ch
		case *Array:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(t.items) {
				return nil, false
			}
			cur = t.items[i]
		default:
			return nil, false
		}
	}
	return cur, true
}

func (n *node) Lookup(path string) (Control, bool) {
	segs, ok := splitPath(path)
	if !ok {
		return nil, false
	}
	st := n.lockTree()
	c, found := descendLocked(n.self, segs)
	st.mu.Unlock()
	if !found {
		return nil, false
	}
	return c, true
}

func (n *node) Path() string {
	st := n.lockTree()
	var segs []string
	for cur := n.self; parentImpl(cur) != nil; cur = parentImpl(cur) {
		segs = append(segs, cur.base().key)
	}
	st.mu.Unlock()
	slices.Reverse(segs)
	return strings.Join(segs, ".")
}
