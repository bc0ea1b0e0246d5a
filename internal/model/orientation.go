package model

import (
	"fmt"
	"strings"
)

// Orientation is the compass direction a roof faces.
type Orientation int

const (
	OrientationSouth Orientation = iota + 1
	OrientationSouthEast
	OrientationSouthWest
	OrientationEast
	OrientationWest
	OrientationNorth
)

type orientationInfo struct {
	code   string
	abbrev string
	label  string
	factor float64
}

var orientations = [...]orientationInfo{
	OrientationSouth:     {"south", "S", "Güney", 1.0},
	OrientationSouthEast: {"south_east", "SE", "Güneydoğu", 0.95},
	OrientationSouthWest: {"south_west", "SW", "Güneybatı", 0.95},
	OrientationEast:      {"east", "E", "Doğu", 0.85},
	OrientationWest:      {"west", "W", "Batı", 0.85},
	OrientationNorth:     {"north", "N", "Kuzey", 0.60},
}

// Orientations lists every orientation, best first.
func Orientations() []Orientation {
	out := make([]Orientation, 0, len(orientations)-1)
	for o := OrientationSouth; o <= OrientationNorth; o++ {
		out = append(out, o)
	}
	return out
}

func (o Orientation) Valid() bool {
	return o >= OrientationSouth && o <= OrientationNorth
}

// Factor is the fraction of optimal (south-facing) yield the orientation gets.
func (o Orientation) Factor() float64 {
	if !o.Valid() {
		return 0
	}
	return orientations[o].factor
}

func (o Orientation) Label() string {
	if !o.Valid() {
		return ""
	}
	return orientations[o].label
}

func (o Orientation) String() string {
	if !o.Valid() {
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
	return orientations[o].code
}

// ParseOrientation accepts "south_east", "south-east", "southeast", "SE" and the
// local label, in any case.
func ParseOrientation(s string) (Orientation, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	compact := strings.NewReplacer("_", "", "-", "", " ", "").Replace(norm)
	for o := OrientationSouth; o <= OrientationNorth; o++ {
		info := orientations[o]
		if compact == strings.ReplaceAll(info.code, "_", "") ||
			compact == strings.ToLower(info.abbrev) ||
			strings.EqualFold(norm, info.label) {
			return o, nil
		}
	}
	return 0, fmt.Errorf("unknown orientation %q", s)
}

func (o Orientation) MarshalText() ([]byte, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("invalid orientation %d", int(o))
	}
	return []byte(orientations[o].code), nil
}

func (o *Orientation) UnmarshalText(b []byte) error {
	parsed, err := ParseOrientation(string(b))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}
