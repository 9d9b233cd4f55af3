package python

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"text/scanner"

	"github.com/matzehuels/minidraw/pkg/errors"
	"github.com/matzehuels/minidraw/pkg/scene"
)

// Parse reads a program in the dialect written by [Backend] and returns the
// drawing it builds: the value of the variable d, or else the last Drawing
// constructed.
func Parse(src string) (*scene.Drawing, error) {
	p := &parser{vars: map[string]any{}}
	p.s.Init(strings.NewReader(src))
	p.s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats | scanner.ScanStrings
	p.s.Error = func(s *scanner.Scanner, msg string) {
		p.failAt(s.Pos(), "%s", msg)
	}
	p.next()

	for p.tok != scanner.EOF && p.err == nil {
		p.statement()
	}
	if p.err != nil {
		return nil, p.err
	}
	if d, ok := p.vars["d"].(*scene.Drawing); ok {
		return d, nil
	}
	if p.last != nil {
		return p.last, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidScene, "python: program does not construct a Drawing")
}

type (
	tuple []any
	list  []any
)

type parser struct {
	s    scanner.Scanner
	tok  rune
	vars map[string]any
	last *scene.Drawing
	err  error
}

func (p *parser) next() {
	for {
		p.tok = p.s.Scan()
		if p.tok != '#' {
			return
		}
		for ch := p.s.Next(); ch != '\n' && ch != scanner.EOF; ch = p.s.Next() {
		}
	}
}

func (p *parser) failAt(pos scanner.Position, format string, args ...any) {
	if p.err == nil {
		p.err = errors.New(errors.ErrCodeInvalidScene, "python:%d:%d: %s", pos.Line, pos.Column, fmt.Sprintf(format, args...))
	}
}

func (p *parser) fail(format string, args ...any) {
	p.failAt(p.s.Position, format, args...)
}

func (p *parser) wrap(pos scanner.Position, err error) {
	if p.err == nil {
		p.err = errors.Wrap(errors.ErrCodeInvalidScene, err, "python:%d:%d", pos.Line, pos.Column)
	}
}

func (p *parser) expect(tok rune) {
	if p.tok != tok {
		p.fail("expected %s, found %s", scanner.TokenString(tok), p.describe())
		return
	}
	p.next()
}

func (p *parser) describe() string {
	if p.tok == scanner.EOF {
		return "end of input"
	}
	return strconv.Quote(p.s.TokenText())
}

// =============================================================================
// Statements and expressions
// =============================================================================

func (p *parser) statement() {
	if p.tok != scanner.Ident {
		p.expr()
		return
	}

	name, pos := p.s.TokenText(), p.s.Position
	if name == "from" || name == "import" {
		for p.tok != scanner.EOF && p.s.Position.Line == pos.Line {
			p.next()
		}
		return
	}

	p.next()
	if p.tok == '=' {
		p.next()
		p.vars[name] = p.expr()
		return
	}
	p.postfix(p.ident(name, pos))
}

func (p *parser) expr() any {
	return p.postfix(p.primary())
}

func (p *parser) primary() any {
	switch p.tok {
	case scanner.Int, scanner.Float:
		f, err := strconv.ParseFloat(p.s.TokenText(), 64)
		if err != nil {
			p.fail("invalid number %s", p.describe())
		}
		p.next()
		return f

	case '-', '+':
		neg := p.tok == '-'
		p.next()
		f, ok := p.primary().(float64)
		if !ok {
			p.fail("sign applied to a non-number")
			return nil
		}
		if neg {
			f = -f
		}
		return f

	case scanner.String:
		v, err := strconv.Unquote(p.s.TokenText())
		if err != nil {
			p.fail("invalid string %s", p.describe())
		}
		p.next()
		return v

	case '\'':
		v := p.singleQuoted()
		p.next()
		return v

	case '(':
		p.next()
		items, comma := p.list(')')
		if len(items) == 1 && !comma {
			return items[0]
		}
		return tuple(items)

	case '[':
		p.next()
		items, _ := p.list(']')
		return list(items)

	case scanner.Ident:
		name, pos := p.s.TokenText(), p.s.Position
		p.next()
		return p.ident(name, pos)
	}

	p.fail("unexpected %s", p.describe())
	return nil
}

// list parses comma separated expressions up to and including end. It
// reports whether a separating or trailing comma was seen.
func (p *parser) list(end rune) ([]any, bool) {
	var items []any
	comma := false
	for p.tok != end && p.err == nil {
		items = append(items, p.expr())
		if p.tok != ',' {
			break
		}
		comma = true
		p.next()
	}
	p.expect(end)
	return items, comma
}

// singleQuoted reads the body of a '...' literal. The opening quote is the
// current token; on return the closing quote has been consumed.
func (p *parser) singleQuoted() string {
	var body strings.Builder
	for {
		ch := p.s.Next()
		switch ch {
		case scanner.EOF, '\n':
			p.fail("unterminated string")
			return ""
		case '\'':
			v, err := strconv.Unquote(`"` + body.String() + `"`)
			if err != nil {
				p.fail("invalid string")
			}
			return v
		case '"':
			body.WriteString(`\"`)
		case '\\':
			esc := p.s.Next()
			if esc == '\'' {
				body.WriteRune('\'')
			} else {
				body.WriteRune('\\')
				body.WriteRune(esc)
			}
		default:
			body.WriteRune(ch)
		}
	}
}

func (p *parser) ident(name string, pos scanner.Position) any {
	switch name {
	case "True":
		return true
	case "False":
		return false
	case "None":
		return nil
	}
	if p.tok == '(' {
		a := p.args(pos)
		if p.err != nil {
			return nil
		}
		return p.construct(name, a)
	}
	v, ok := p.vars[name]
	if !ok {
		p.failAt(pos, "undefined name %s", name)
	}
	return v
}

func (p *parser) postfix(v any) any {
	for p.tok == '.' && p.err == nil {
		p.next()
		if p.tok != scanner.Ident {
			p.fail("expected method name, found %s", p.describe())
			return nil
		}
		name, pos := p.s.TokenText(), p.s.Position
		p.next()
		a := p.args(pos)
		if p.err != nil {
			return nil
		}
		v = p.method(v, name, a)
	}
	return v
}

// =============================================================================
// Calls
// =============================================================================

type callArgs struct {
	at  scanner.Position
	pos []any
	kw  map[string]any
}

func (p *parser) args(at scanner.Position) *callArgs {
	a := &callArgs{at: at, kw: map[string]any{}}
	p.expect('(')
	for p.tok != ')' && p.err == nil {
		switch {
		case p.tok == '*':
			p.next()
			switch v := p.expr().(type) {
			case tuple:
				a.pos = append(a.pos, v...)
			case list:
				a.pos = append(a.pos, v...)
			default:
				p.fail("* applied to a non-sequence")
			}
		case p.tok == scanner.Ident:
			name, pos := p.s.TokenText(), p.s.Position
			p.next()
			if p.tok == '=' {
				p.next()
				if _, dup := a.kw[name]; dup {
					p.failAt(pos, "keyword argument %s repeated", name)
				}
				a.kw[name] = p.expr()
			} else {
				a.pos = append(a.pos, p.postfix(p.ident(name, pos)))
			}
		default:
			a.pos = append(a.pos, p.expr())
		}
		if p.tok != ',' {
			break
		}
		p.next()
	}
	p.expect(')')
	return a
}

// check validates the argument count and keyword names.
func (p *parser) check(fn string, a *callArgs, lo, hi int, kws ...string) bool {
	if len(a.pos) < lo || len(a.pos) > hi {
		p.failAt(a.at, "%s takes %d to %d positional arguments, got %d", fn, lo, hi, len(a.pos))
		return false
	}
	for k := range a.kw {
		if !slices.Contains(kws, k) {
			p.failAt(a.at, "%s got an unexpected keyword argument %s", fn, k)
			return false
		}
	}
	return true
}

func (p *parser) float(a *callArgs, v any) float64 {
	f, ok := v.(float64)
	if !ok {
		p.failAt(a.at, "expected a number, got %s", typeName(v))
	}
	return f
}

func (p *parser) point(a *callArgs, v any) scene.Point {
	t, ok := v.(tuple)
	if !ok {
		if l, isList := v.(list); isList {
			t, ok = tuple(l), true
		}
	}
	if !ok || len(t) != 2 {
		p.failAt(a.at, "expected an (x, y) pair, got %s", typeName(v))
		return scene.Point{}
	}
	return scene.Pt(p.float(a, t[0]), p.float(a, t[1]))
}

// opt returns keyword k, falling back to positional argument i.
func (a *callArgs) opt(k string, i int) (any, bool) {
	if v, ok := a.kw[k]; ok && v != nil {
		return v, true
	}
	if i >= 0 && i < len(a.pos) && a.pos[i] != nil {
		return a.pos[i], true
	}
	return nil, false
}

func (p *parser) style(a *callArgs) (scene.Style, bool) {
	v, ok := a.kw["style"]
	if !ok || v == nil {
		return scene.Style{}, false
	}
	s, ok := v.(scene.Style)
	if !ok {
		p.failAt(a.at, "style must be a Style, got %s", typeName(v))
	}
	return s, ok
}

func (p *parser) construct(name string, a *callArgs) any {
	switch name {
	case "Style":
		if !p.check(name, a, 0, 0, styleKeywords()...) {
			return nil
		}
		m := make(map[string]any, len(a.kw))
		for k, v := range a.kw {
			switch v := v.(type) {
			case tuple:
				m[k] = []any(v)
			case list:
				m[k] = []any(v)
			default:
				m[k] = v
			}
		}
		s, err := scene.ParseStyle(m)
		if err != nil {
			p.wrap(a.at, err)
		}
		return s

	case "Drawing":
		if !p.check(name, a, 0, 0, "style") {
			return nil
		}
		d := scene.New()
		if s, ok := p.style(a); ok {
			d.SetStyle(s)
		}
		p.last = d
		return d

	case "Group":
		if !p.check(name, a, 0, len(a.pos), "style") {
			return nil
		}
		g := scene.NewGroup()
		if s, ok := p.style(a); ok {
			g.SetStyle(s)
		}
		p.add(g, a)
		return g
	}

	var s scene.Spatial
	switch name {
	case "Line":
		if !p.check(name, a, 2, 2, "style") {
			return nil
		}
		s = scene.NewLine(p.point(a, a.pos[0]), p.point(a, a.pos[1]))

	case "Circle":
		if !p.check(name, a, 2, 2, "ry", "rotation", "style") {
			return nil
		}
		r := p.float(a, a.pos[1])
		c := scene.NewCircle(p.point(a, a.pos[0]), r)
		if ry, ok := a.opt("ry", -1); ok {
			c.SetRadii(r, p.float(a, ry))
		}
		if rot, ok := a.opt("rotation", -1); ok {
			c.SetRotation(p.float(a, rot))
		}
		s = c

	case "Rectangle":
		if !p.check(name, a, 2, 2, "rotation", "style") {
			return nil
		}
		size := p.point(a, a.pos[1])
		r := scene.NewRectangle(p.point(a, a.pos[0]), size.X, size.Y)
		if rot, ok := a.opt("rotation", -1); ok {
			r.SetRotation(p.float(a, rot))
		}
		s = r

	case "Polyline":
		if !p.check(name, a, 1, 1, "closed", "style") {
			return nil
		}
		var raw []any
		switch v := a.pos[0].(type) {
		case list:
			raw = v
		case tuple:
			raw = v
		default:
			p.failAt(a.at, "Polyline expects a list of points, got %s", typeName(v))
			return nil
		}
		pts := make([]scene.Point, len(raw))
		for i, v := range raw {
			pts[i] = p.point(a, v)
		}
		pl := scene.NewPolyline(pts...)
		if v, ok := a.opt("closed", -1); ok {
			closed, isBool := v.(bool)
			if !isBool {
				p.failAt(a.at, "closed must be True or False")
			}
			pl.SetClosed(closed)
		}
		s = pl

	case "Arc":
		if !p.check(name, a, 4, 4, "style") {
			return nil
		}
		s = scene.NewArc(p.point(a, a.pos[0]), p.float(a, a.pos[1]), p.float(a, a.pos[2]), p.float(a, a.pos[3]))

	case "Text":
		if !p.check(name, a, 2, 2, "rotation", "style") {
			return nil
		}
		content, ok := a.pos[1].(string)
		if !ok {
			p.failAt(a.at, "Text content must be a string, got %s", typeName(a.pos[1]))
			return nil
		}
		t := scene.NewText(p.point(a, a.pos[0]), content)
		if rot, ok := a.opt("rotation", -1); ok {
			t.SetRotation(p.float(a, rot))
		}
		s = t

	default:
		p.failAt(a.at, "unknown constructor %s", name)
		return nil
	}

	if st, ok := p.style(a); ok {
		setStyle(s, st)
	}
	return s
}

func setStyle(s scene.Spatial, st scene.Style) {
	switch v := s.(type) {
	case *scene.Line:
		v.SetStyle(st)
	case *scene.Circle:
		v.SetStyle(st)
	case *scene.Rectangle:
		v.SetStyle(st)
	case *scene.Polyline:
		v.SetStyle(st)
	case *scene.Arc:
		v.SetStyle(st)
	case *scene.Text:
		v.SetStyle(st)
	}
}

func styleKeywords() []string {
	attrs := scene.AllAttrs()
	names := make([]string, len(attrs))
	for i, a := range attrs {
		names[i] = a.String()
	}
	return names
}

func (p *parser) add(g *scene.Group, a *callArgs) {
	items := make([]scene.Spatial, 0, len(a.pos))
	for _, v := range a.pos {
		s, ok := v.(scene.Spatial)
		if !ok {
			p.failAt(a.at, "cannot add %s", typeName(v))
			return
		}
		items = append(items, s)
	}
	if err := g.Add(items...); err != nil {
		p.wrap(a.at, err)
	}
}

func (p *parser) method(v any, name string, a *callArgs) any {
	s, ok := v.(scene.Spatial)
	if !ok {
		p.failAt(a.at, "%s has no method %s", typeName(v), name)
		return nil
	}

	var m scene.Affine
	switch name {
	case "add":
		var g *scene.Group
		switch t := s.(type) {
		case *scene.Drawing:
			g = t.Root()
		case *scene.Group:
			g = t
		default:
			p.failAt(a.at, "%s has no method add", s.Kind())
			return nil
		}
		if p.check(name, a, 0, len(a.pos)) {
			p.add(g, a)
		}
		return v

	case "render_to_file", "render_to_string":
		return nil

	case "translate":
		if !p.check(name, a, 2, 2) {
			return nil
		}
		m = scene.Translation(p.float(a, a.pos[0]), p.float(a, a.pos[1]))

	case "rotate":
		if !p.check(name, a, 1, 2, "center") {
			return nil
		}
		m = scene.Rotation(p.float(a, a.pos[0])).Around(p.center(s, a, 1))

	case "scale":
		if !p.check(name, a, 1, 3, "sy", "center") {
			return nil
		}
		sx := p.float(a, a.pos[0])
		sy := sx
		if v, ok := a.opt("sy", 1); ok {
			sy = p.float(a, v)
		}
		m = scene.Scaling(sx, sy).Around(p.center(s, a, 2))

	case "mirror":
		if !p.check(name, a, 2, 2) {
			return nil
		}
		r, err := scene.Reflection(p.point(a, a.pos[0]), p.point(a, a.pos[1]))
		if err != nil {
			p.wrap(a.at, err)
			return nil
		}
		m = r

	case "flip_lr":
		if !p.check(name, a, 0, 0) {
			return nil
		}
		m = scene.Scaling(-1, 1).Around(s.Centroid())

	case "flip_ud":
		if !p.check(name, a, 0, 0) {
			return nil
		}
		m = scene.Scaling(1, -1).Around(s.Centroid())

	default:
		p.failAt(a.at, "%s has no method %s", s.Kind(), name)
		return nil
	}

	if p.err != nil {
		return nil
	}
	if err := s.Transform(m); err != nil {
		p.wrap(a.at, err)
		return nil
	}
	return v
}

// center returns the center= argument (or positional i), defaulting to the
// centroid of s.
func (p *parser) center(s scene.Spatial, a *callArgs, i int) scene.Point {
	if v, ok := a.opt("center", i); ok {
		return p.point(a, v)
	}
	return s.Centroid()
}

func typeName(v any) string {
	switch v := v.(type) {
	case nil:
		return "None"
	case float64:
		return "number"
	case string:
		return "string"
	case bool:
		return "bool"
	case tuple:
		return "tuple"
	case list:
		return "list"
	case scene.Style:
		return "Style"
	case scene.Spatial:
		return v.Kind().String()
	}
	return fmt.Sprintf("%T", v)
}
