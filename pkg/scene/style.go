package scene

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/matzehuels/minidraw/pkg/errors"
)

// Attr identifies a style attribute. The set of attributes is closed.
type Attr uint8

// Style attributes, in the order backends emit them.
const (
	AttrStroke Attr = iota
	AttrStrokeWidth
	AttrFill
	AttrOpacity
	AttrDash
	AttrLineCap
	AttrLineJoin
	AttrFontSize
	AttrFontFamily
	AttrTextAnchor

	numAttrs
)

type attrKind uint8

const (
	kindString attrKind = iota
	kindFloat
	kindFloats
)

var attrInfo = [numAttrs]struct {
	name string
	kind attrKind
}{
	AttrStroke:      {"stroke", kindString},
	AttrStrokeWidth: {"stroke_width", kindFloat},
	AttrFill:        {"fill", kindString},
	AttrOpacity:     {"opacity", kindFloat},
	AttrDash:        {"dash", kindFloats},
	AttrLineCap:     {"linecap", kindString},
	AttrLineJoin:    {"linejoin", kindString},
	AttrFontSize:    {"font_size", kindFloat},
	AttrFontFamily:  {"font_family", kindString},
	AttrTextAnchor:  {"text_anchor", kindString},
}

// String returns the attribute's name, e.g. "stroke_width".
func (a Attr) String() string {
	if a >= numAttrs {
		return "Attr(" + strconv.Itoa(int(a)) + ")"
	}
	return attrInfo[a].name
}

// AttrByName returns the attribute with the given name.
func AttrByName(name string) (Attr, bool) {
	for a := range numAttrs {
		if attrInfo[a].name == name {
			return a, true
		}
	}
	return 0, false
}

// AllAttrs returns every attribute in enumeration order.
func AllAttrs() []Attr {
	out := make([]Attr, numAttrs)
	for a := range numAttrs {
		out[a] = a
	}
	return out
}

// Style is an immutable set of optional presentation attributes. The zero
// value has no attributes set.
type Style struct {
	vals [numAttrs]any
}

// StyleOption sets one attribute while building a [Style].
type StyleOption func(*Style)

// NewStyle returns a style with the given attributes set.
func NewStyle(opts ...StyleOption) Style {
	var s Style
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// With returns a copy of s with opts applied on top.
func (s Style) With(opts ...StyleOption) Style {
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Stroke sets the stroke colour.
func Stroke(c string) StyleOption { return func(s *Style) { s.vals[AttrStroke] = c } }

// StrokeWidth sets the stroke width.
func StrokeWidth(w float64) StyleOption { return func(s *Style) { s.vals[AttrStrokeWidth] = w } }

// Fill sets the fill colour.
func Fill(c string) StyleOption { return func(s *Style) { s.vals[AttrFill] = c } }

// Opacity sets the opacity in [0, 1].
func Opacity(o float64) StyleOption { return func(s *Style) { s.vals[AttrOpacity] = o } }

// Dash sets the dash pattern.
func Dash(pattern ...float64) StyleOption {
	p := slices.Clone(pattern)
	return func(s *Style) { s.vals[AttrDash] = p }
}

// LineCap sets the line cap ("butt", "round", "square").
func LineCap(c string) StyleOption { return func(s *Style) { s.vals[AttrLineCap] = c } }

// LineJoin sets the line join ("miter", "round", "bevel").
func LineJoin(j string) StyleOption { return func(s *Style) { s.vals[AttrLineJoin] = j } }

// FontSize sets the font size.
func FontSize(size float64) StyleOption { return func(s *Style) { s.vals[AttrFontSize] = size } }

// FontFamily sets the font family.
func FontFamily(f string) StyleOption { return func(s *Style) { s.vals[AttrFontFamily] = f } }

// TextAnchor sets the text anchor ("start", "middle", "end").
func TextAnchor(a string) StyleOption { return func(s *Style) { s.vals[AttrTextAnchor] = a } }

// Stroke returns the stroke colour.
func (s Style) Stroke() (string, bool) { return s.str(AttrStroke) }

// StrokeWidth returns the stroke width.
func (s Style) StrokeWidth() (float64, bool) { return s.num(AttrStrokeWidth) }

// Fill returns the fill colour.
func (s Style) Fill() (string, bool) { return s.str(AttrFill) }

// Opacity returns the opacity.
func (s Style) Opacity() (float64, bool) { return s.num(AttrOpacity) }

// Dash returns a copy of the dash pattern.
func (s Style) Dash() ([]float64, bool) {
	v, ok := s.vals[AttrDash].([]float64)
	return slices.Clone(v), ok
}

// LineCap returns the line cap.
func (s Style) LineCap() (string, bool) { return s.str(AttrLineCap) }

// LineJoin returns the line join.
func (s Style) LineJoin() (string, bool) { return s.str(AttrLineJoin) }

// FontSize returns the font size.
func (s Style) FontSize() (float64, bool) { return s.num(AttrFontSize) }

// FontFamily returns the font family.
func (s Style) FontFamily() (string, bool) { return s.str(AttrFontFamily) }

// TextAnchor returns the text anchor.
func (s Style) TextAnchor() (string, bool) { return s.str(AttrTextAnchor) }

func (s Style) str(a Attr) (string, bool) {
	v, ok := s.vals[a].(string)
	return v, ok
}

func (s Style) num(a Attr) (float64, bool) {
	v, ok := s.vals[a].(float64)
	return v, ok
}

// Has reports whether a is set.
func (s Style) Has(a Attr) bool {
	return a < numAttrs && s.vals[a] != nil
}

// Get returns the value of a as a string, float64 or []float64.
func (s Style) Get(a Attr) (any, bool) {
	if !s.Has(a) {
		return nil, false
	}
	if d, ok := s.vals[a].([]float64); ok {
		return slices.Clone(d), true
	}
	return s.vals[a], true
}

// Attrs returns the attributes that are set, in enumeration order.
func (s Style) Attrs() []Attr {
	var out []Attr
	for a := range numAttrs {
		if s.vals[a] != nil {
			out = append(out, a)
		}
	}
	return out
}

// IsEmpty reports whether no attribute is set.
func (s Style) IsEmpty() bool {
	return len(s.Attrs()) == 0
}

// Merged returns a style in which every attribute takes the value from s if
// set there, otherwise from base.
func (s Style) Merged(base Style) Style {
	out := base
	for a := range numAttrs {
		if s.vals[a] != nil {
			out.vals[a] = s.vals[a]
		}
	}
	return out
}

// Equal reports whether s and o set the same attributes to the same values.
func (s Style) Equal(o Style) bool {
	for a := range numAttrs {
		x, y := s.vals[a], o.vals[a]
		if xd, ok := x.([]float64); ok {
			yd, ok := y.([]float64)
			if !ok || !slices.Equal(xd, yd) {
				return false
			}
			continue
		}
		if x != y {
			return false
		}
	}
	return true
}

// String formats the set attributes as name=value pairs.
func (s Style) String() string {
	var sb strings.Builder
	for i, a := range s.Attrs() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.String())
		sb.WriteByte('=')
		switch v := s.vals[a].(type) {
		case string:
			sb.WriteString(strconv.Quote(v))
		case float64:
			sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		case []float64:
			sb.WriteByte('[')
			for j, f := range v {
				if j > 0 {
					sb.WriteString(", ")
				}
				sb.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
			}
			sb.WriteByte(']')
		}
	}
	return sb.String()
}

// Set returns a copy of s with a set to value. The value must be of the
// attribute's type: a string, a number, or a list of numbers for dash.
func (s Style) Set(a Attr, value any) (Style, error) {
	if a >= numAttrs {
		return s, errors.StyleError("unknown style attribute %v", a)
	}
	v, err := coerce(a, value)
	if err != nil {
		return s, err
	}
	s.vals[a] = v
	return s, nil
}

// ParseStyle builds a style from decoded key/value data such as a TOML or
// YAML table. Unknown names and values of the wrong type are rejected with
// an INVALID_STYLE error.
func ParseStyle(m map[string]any) (Style, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var s Style
	for _, k := range keys {
		a, ok := AttrByName(k)
		if !ok {
			return Style{}, errors.StyleError("unknown style attribute %q", k)
		}
		var err error
		if s, err = s.Set(a, m[k]); err != nil {
			return Style{}, err
		}
	}
	return s, nil
}

func coerce(a Attr, value any) (any, error) {
	switch attrInfo[a].kind {
	case kindString:
		if v, ok := value.(string); ok {
			return v, nil
		}
	case kindFloat:
		if v, ok := toFloat(value); ok {
			return v, nil
		}
	case kindFloats:
		if v, ok := toFloats(value); ok {
			return v, nil
		}
	}
	return nil, errors.StyleError("style attribute %s: unexpected value %s", a, describe(value))
}

func describe(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%v (%T)", v, v)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

func toFloats(v any) ([]float64, bool) {
	switch list := v.(type) {
	case []float64:
		return slices.Clone(list), true
	case []int:
		out := make([]float64, len(list))
		for i, n := range list {
			out[i] = float64(n)
		}
		return out, true
	case []any:
		out := make([]float64, len(list))
		for i, item := range list {
			f, ok := toFloat(item)
			if !ok {
				return nil, false
			}
			out[i] = f
		}
		return out, true
	}
	return nil, false
}
