package domain

// Transform reshapes the payload carried across an edge. Operations apply in
// the fixed order pick, omit, rename, inject; an absent operation is skipped
// entirely. Transforms only act on flat-object payloads; anything else
// passes through untouched.
type Transform struct {
	// Pick retains only the listed keys, discarding the rest.
	Pick []string `json:"pick,omitempty" yaml:"pick,omitempty"`

	// Omit drops the listed keys.
	Omit []string `json:"omit,omitempty" yaml:"omit,omitempty"`

	// Rename moves the value from old key to new key, deleting the old key.
	Rename map[string]string `json:"rename,omitempty" yaml:"rename,omitempty"`

	// Inject shallow-merges fixed pairs, overwriting on conflict.
	Inject map[string]any `json:"inject,omitempty" yaml:"inject,omitempty"`
}

// IsZero reports whether the transform declares no operation.
func (t Transform) IsZero() bool {
	return t.Pick == nil && t.Omit == nil && t.Rename == nil && t.Inject == nil
}

// Clone returns a deep copy.
func (t Transform) Clone() Transform {
	out := t
	out.Pick = cloneStrings(t.Pick)
	out.Omit = cloneStrings(t.Omit)
	if t.Rename != nil {
		out.Rename = make(map[string]string, len(t.Rename))
		for k, v := range t.Rename {
			out.Rename[k] = v
		}
	}
	if t.Inject != nil {
		out.Inject = make(map[string]any, len(t.Inject))
		for k, v := range t.Inject {
			out.Inject[k] = copyValue(v)
		}
	}
	return out
}
