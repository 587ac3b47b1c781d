package color

import "fmt"

// Lookup resolves a symbolic highlight-group name to its foreground hex
// color. It reports false when the name is unknown.
type Lookup func(name string) (hex string, ok bool)

// Input is a user-supplied color in one of three forms: an explicit HSL
// value, a hex string, or a symbolic highlight-group name. Exactly one form
// is meaningful per value; HSL wins when set, otherwise Name is interpreted
// as hex if it looks like one, else as a group name.
type Input struct {
	HSL  *HSL
	Name string
}

// Symbolic reports whether the input must be re-resolved against the host
// when the active colorscheme changes.
func (in Input) Symbolic() bool {
	return in.HSL == nil && !IsHex(in.Name)
}

// String describes the input for diagnostics.
func (in Input) String() string {
	if in.HSL != nil {
		return fmt.Sprintf("hsl(%v, %v, %v)", in.HSL.H, in.HSL.S, in.HSL.L)
	}
	return in.Name
}

// Normalize resolves an input to canonical HSL. Interpretation order: HSL
// value if present, then hex string, then symbolic name via lookup. A nil
// lookup treats every symbolic name as unresolvable.
func Normalize(in Input, lookup Lookup) (HSL, error) {
	if in.HSL != nil {
		if err := in.HSL.Validate(); err != nil {
			return HSL{}, err
		}
		return *in.HSL, nil
	}

	if in.Name == "" {
		return HSL{}, fmt.Errorf("%w: empty color", ErrInvalidColor)
	}

	if IsHex(in.Name) {
		c, err := ParseHex(in.Name)
		if err != nil {
			return HSL{}, err
		}
		return c.HSL(), nil
	}

	if lookup == nil {
		return HSL{}, fmt.Errorf("%w: cannot resolve group %q", ErrInvalidColor, in.Name)
	}
	hex, ok := lookup(in.Name)
	if !ok {
		return HSL{}, fmt.Errorf("%w: unknown highlight group %q", ErrInvalidColor, in.Name)
	}
	c, err := ParseHex(hex)
	if err != nil {
		return HSL{}, fmt.Errorf("group %q resolved to %w", in.Name, err)
	}
	return c.HSL(), nil
}
