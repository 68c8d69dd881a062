// Package scene reads collections of shapes from TOML and YAML files.
//
// A scene file holds an optional context section and a list of shapes:
//
//	[context]
//	system = "y-down"
//	flatness = 0.25
//
//	[[shapes]]
//	name = "frame"
//	kind = "rect"
//	rect = [0, 0, 100, 50]
//
//	[[shapes]]
//	kind = "path"
//	rule = "evenodd"
//	path = "M0,0 L10,0 Q15,5 10,10 Z"
//
// The YAML form uses the same keys.
package scene

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"honnef.co/go/lattice"
)

type Format int

const (
	TOML Format = iota + 1
	YAML
)

func (f Format) String() string {
	switch f {
	case TOML:
		return "toml"
	case YAML:
		return "yaml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatOf picks a format from the extension of name.
func FormatOf(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return 0, fmt.Errorf("can't determine scene format of %q: %w", name, lattice.ErrInvalidArgument)
	}
}

// ContextSection overrides parts of the query context. Zero fields keep the
// value of the base context.
type ContextSection struct {
	System   string  `toml:"system" yaml:"system"`
	Flatness float64 `toml:"flatness" yaml:"flatness"`
}

// ShapeSpec is the serialized form of one shape. Kind selects which of the
// geometry fields is read.
type ShapeSpec struct {
	Name string `toml:"name" yaml:"name"`
	Kind string `toml:"kind" yaml:"kind"`

	// x, y, width, height
	Rect []int `toml:"rect" yaml:"rect"`
	// cx, cy, radius
	Circle []int `toml:"circle" yaml:"circle"`
	// x1, y1, x2, y2
	Segment []int `toml:"segment" yaml:"segment"`

	Path string `toml:"path" yaml:"path"`
	Rule string `toml:"rule" yaml:"rule"`

	Shapes []ShapeSpec `toml:"shapes" yaml:"shapes"`
}

// File is the document structure shared by both formats.
type File struct {
	Context *ContextSection `toml:"context" yaml:"context"`
	Shapes  []ShapeSpec     `toml:"shapes" yaml:"shapes"`
}

// Scene is a decoded scene file.
type Scene struct {
	Context lattice.Context
	Shapes  []lattice.Shape
	// Names holds the name of every top-level shape, or the empty string.
	Names []string
}

// Load reads the scene file at name, choosing the format by extension. The
// file's context section is applied on top of base.
func Load(name string, base lattice.Context) (*Scene, error) {
	format, err := FormatOf(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sc, err := Decode(f, format, base)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	lattice.Logger().WithFields(logrus.Fields{
		"file":   name,
		"format": format,
		"shapes": len(sc.Shapes),
	}).Debug("loaded scene")
	return sc, nil
}

// Decode reads a scene in the given format from r. Malformed documents and
// unknown keys return errors wrapping [lattice.ErrInvalidArgument].
func Decode(r io.Reader, format Format, base lattice.Context) (*Scene, error) {
	var file File
	switch format {
	case TOML:
		md, err := toml.NewDecoder(r).Decode(&file)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", lattice.ErrInvalidArgument, err)
		}
		if undec := md.Undecoded(); len(undec) > 0 {
			return nil, fmt.Errorf("unknown key %q: %w", undec[0].String(), lattice.ErrInvalidArgument)
		}
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %w", lattice.ErrInvalidArgument, err)
		}
	default:
		return nil, fmt.Errorf("unsupported format %s: %w", format, lattice.ErrInvalidArgument)
	}
	return file.Build(base)
}

// Build converts the decoded document into shapes.
func (file *File) Build(base lattice.Context) (*Scene, error) {
	ctx := base
	if c := file.Context; c != nil {
		if c.System != "" {
			cs, err := lattice.ParseCoordinateSystem(c.System)
			if err != nil {
				return nil, fmt.Errorf("context: %w", err)
			}
			ctx.System = cs
		}
		if c.Flatness < 0 {
			return nil, fmt.Errorf("context: negative flatness %v: %w", c.Flatness, lattice.ErrInvalidArgument)
		}
		if c.Flatness > 0 {
			ctx.Flatness = c.Flatness
		}
	}
	sc := &Scene{Context: ctx}
	for i, spec := range file.Shapes {
		s, err := spec.Build()
		if err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
		setFlatness(s, ctx.Flatness)
		sc.Shapes = append(sc.Shapes, s)
		sc.Names = append(sc.Names, spec.Name)
	}
	return sc, nil
}

// setFlatness hands the flattening tolerance of the scene to every path in s.
func setFlatness(s lattice.Shape, tolerance float64) {
	switch s := s.(type) {
	case *lattice.Path:
		s.SetFlatness(tolerance)
	case *lattice.MultiShape:
		for c := range s.Shapes() {
			setFlatness(c, tolerance)
		}
	}
}

func wantInts(field string, vs []int, n int) error {
	if len(vs) != n {
		return fmt.Errorf("%s needs %d values, got %d: %w", field, n, len(vs), lattice.ErrInvalidArgument)
	}
	return nil
}

// Build constructs the shape described by spec.
func (spec *ShapeSpec) Build() (lattice.Shape, error) {
	switch strings.ToLower(spec.Kind) {
	case "rect":
		if err := wantInts("rect", spec.Rect, 4); err != nil {
			return nil, err
		}
		r := lattice.NewRect(spec.Rect[0], spec.Rect[1], spec.Rect[2], spec.Rect[3])
		return &r, nil
	case "circle":
		if err := wantInts("circle", spec.Circle, 3); err != nil {
			return nil, err
		}
		c, err := lattice.NewCircle(spec.Circle[0], spec.Circle[1], spec.Circle[2])
		if err != nil {
			return nil, err
		}
		return &c, nil
	case "segment":
		if err := wantInts("segment", spec.Segment, 4); err != nil {
			return nil, err
		}
		s := lattice.NewSegment(spec.Segment[0], spec.Segment[1], spec.Segment[2], spec.Segment[3])
		return &s, nil
	case "path":
		rule, err := ParseWindingRule(spec.Rule)
		if err != nil {
			return nil, err
		}
		els, err := ParsePathData(spec.Path)
		if err != nil {
			return nil, err
		}
		p, err := lattice.NewPathFromElements(slices.Values(els), rule)
		if err != nil {
			return nil, err
		}
		return p, nil
	case "multi", "multishape":
		m := lattice.NewMultiShape()
		for i, child := range spec.Shapes {
			s, err := child.Build()
			if err != nil {
				return nil, fmt.Errorf("child %d: %w", i, err)
			}
			if err := m.Add(s); err != nil {
				return nil, err
			}
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unknown shape kind %q: %w", spec.Kind, lattice.ErrInvalidArgument)
	}
}

// ParseWindingRule accepts "nonzero" and "evenodd". The empty string selects
// nonzero.
func ParseWindingRule(s string) (lattice.WindingRule, error) {
	switch strings.ToLower(s) {
	case "", "nonzero", "non-zero":
		return lattice.NonZero, nil
	case "evenodd", "even-odd":
		return lattice.EvenOdd, nil
	default:
		return 0, fmt.Errorf("unknown winding rule %q: %w", s, lattice.ErrInvalidArgument)
	}
}

// ParsePathData parses the absolute, integer subset of SVG path data that
// [lattice.WriteSVG] produces: the commands M, L, Q, C and Z, with every
// point written as x,y. Commands and points are separated by white space; a
// point may directly follow its command letter.
func ParsePathData(data string) ([]lattice.PathElement, error) {
	var (
		els  []lattice.PathElement
		cmd  byte
		pts  []lattice.Point
		need int
	)
	flush := func() {
		switch cmd {
		case 'M':
			els = append(els, lattice.MoveTo(pts[0]))
			// further points after a move are lines
			cmd = 'L'
		case 'L':
			els = append(els, lattice.LineTo(pts[0]))
		case 'Q':
			els = append(els, lattice.QuadTo(pts[0], pts[1]))
		case 'C':
			els = append(els, lattice.CubicTo(pts[0], pts[1], pts[2]))
		}
		pts = pts[:0]
	}
	for _, field := range strings.Fields(data) {
		if c := field[0]; c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' {
			if len(pts) != 0 {
				return nil, fmt.Errorf("command %c is missing points: %w", cmd, lattice.ErrInvalidArgument)
			}
			cmd = c
			switch cmd {
			case 'M', 'L':
				need = 1
			case 'Q':
				need = 2
			case 'C':
				need = 3
			case 'Z':
				need = 0
				els = append(els, lattice.ClosePath())
			default:
				return nil, fmt.Errorf("unsupported path command %q: %w", string(cmd), lattice.ErrInvalidArgument)
			}
			field = field[1:]
			if field == "" {
				continue
			}
		}
		if cmd == 0 || need == 0 {
			return nil, fmt.Errorf("unexpected %q: %w", field, lattice.ErrInvalidArgument)
		}
		pt, err := parsePoint(field)
		if err != nil {
			return nil, err
		}
		pts = append(pts, pt)
		if len(pts) == need {
			flush()
		}
	}
	if len(pts) != 0 {
		return nil, fmt.Errorf("command %c is missing points: %w", cmd, lattice.ErrInvalidArgument)
	}
	return els, nil
}

func parsePoint(s string) (lattice.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return lattice.Point{}, fmt.Errorf("malformed point %q: %w", s, lattice.ErrInvalidArgument)
	}
	x, err := strconv.Atoi(xs)
	if err != nil {
		return lattice.Point{}, fmt.Errorf("malformed point %q: %w", s, lattice.ErrInvalidArgument)
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return lattice.Point{}, fmt.Errorf("malformed point %q: %w", s, lattice.ErrInvalidArgument)
	}
	return lattice.Pt(x, y), nil
}

// Lookup finds a top-level shape by name or by index.
func (sc *Scene) Lookup(ref string) (lattice.Shape, error) {
	for i, name := range sc.Names {
		if name != "" && name == ref {
			return sc.Shapes[i], nil
		}
	}
	i, err := strconv.Atoi(ref)
	if err != nil || i < 0 || i >= len(sc.Shapes) {
		return nil, fmt.Errorf("no shape %q in scene: %w", ref, lattice.ErrInvalidArgument)
	}
	return sc.Shapes[i], nil
}

// Label returns a human-readable name for the i'th shape.
func (sc *Scene) Label(i int) string {
	if sc.Names[i] != "" {
		return sc.Names[i]
	}
	return fmt.Sprintf("#%d", i)
}
