package lattice

import (
	"fmt"
	"iter"
	"math"
	"slices"

	"github.com/sirupsen/logrus"
)

// Path is a sequence of subpaths made of lines, quadratic and cubic Béziers,
// with integer control points.
//
// Elements are stored as two parallel slices: one kind per element, and the
// flat coordinates of the element's points. A path always starts with a
// MoveTo. Consecutive MoveTo calls replace the pending move, and closing a
// subpath that is already closed, or that has no element after its MoveTo,
// does nothing.
//
// Queries that need straight edges flatten the path with the tolerance set by
// [Path.SetFlatness], [DefaultFlatness] unless set.
// Containment uses the path's winding rule. Open subpaths have no interior:
// they only contain the points on them.
type Path struct {
	coords   []int
	kinds    []PathElementKind
	rule     WindingRule
	flatness float64

	obs *observers
}

var _ Shape = (*Path)(nil)

// NewPath returns an empty path using rule. The zero rule selects [NonZero].
func NewPath(rule WindingRule) *Path {
	return &Path{rule: rule}
}

// NewPathFromElements builds a path by pushing every element of seq, as
// [Path.Push] does.
func NewPathFromElements(seq iter.Seq[PathElement], rule WindingRule) (*Path, error) {
	p := NewPath(rule)
	if err := p.Extend(seq); err != nil {
		return nil, err
	}
	return p, nil
}

func coordCount(k PathElementKind) int {
	switch k {
	case MoveToKind, LineToKind:
		return 2
	case QuadToKind:
		return 4
	case CubicToKind:
		return 6
	default:
		return 0
	}
}

func (p *Path) changed() {
	p.obs.notify(p)
}

// SetFlatness sets the tolerance used to flatten the path's curves, both by
// its own queries and when it is used as the shadow of another path. Zero or
// less selects [DefaultFlatness].
func (p *Path) SetFlatness(tolerance float64) {
	p.flatness = tolerance
	p.changed()
}

// Flatness returns the tolerance used to flatten the path's curves.
func (p *Path) Flatness() float64 {
	return p.context().flatness()
}

func (p *Path) context() Context {
	return Context{Flatness: p.flatness}
}

func (p *Path) appendElement(k PathElementKind, pts ...Point) {
	p.kinds = append(p.kinds, k)
	for _, pt := range pts {
		p.coords = append(p.coords, pt.X, pt.Y)
	}
}

func (p *Path) lastKind() (PathElementKind, bool) {
	if len(p.kinds) == 0 {
		return 0, false
	}
	return p.kinds[len(p.kinds)-1], true
}

func (p *Path) errNoCurrentPoint(op string) error {
	err := fmt.Errorf("%s on a path without a current point: %w", op, ErrInvalidState)
	Logger().WithFields(p.logFields()).WithField("op", op).Debug("rejected path edit")
	return err
}

// MoveTo starts a new subpath at pt. If the last element is a MoveTo, it is
// replaced.
func (p *Path) MoveTo(pt Point) {
	if k, ok := p.lastKind(); ok && k == MoveToKind {
		n := len(p.coords)
		p.coords[n-2], p.coords[n-1] = pt.X, pt.Y
	} else {
		p.appendElement(MoveToKind, pt)
	}
	p.changed()
}

// LineTo draws a line from the current point to pt. It returns an error
// wrapping [ErrInvalidState] if the path has no current point.
func (p *Path) LineTo(pt Point) error {
	if len(p.kinds) == 0 {
		return p.errNoCurrentPoint("LineTo")
	}
	p.appendElement(LineToKind, pt)
	p.changed()
	return nil
}

// QuadTo draws a quadratic Bézier from the current point to pt. It returns an
// error wrapping [ErrInvalidState] if the path has no current point.
func (p *Path) QuadTo(ctrl, pt Point) error {
	if len(p.kinds) == 0 {
		return p.errNoCurrentPoint("QuadTo")
	}
	p.appendElement(QuadToKind, ctrl, pt)
	p.changed()
	return nil
}

// CubicTo draws a cubic Bézier from the current point to pt. It returns an
// error wrapping [ErrInvalidState] if the path has no current point.
func (p *Path) CubicTo(ctrl1, ctrl2, pt Point) error {
	if len(p.kinds) == 0 {
		return p.errNoCurrentPoint("CubicTo")
	}
	p.appendElement(CubicToKind, ctrl1, ctrl2, pt)
	p.changed()
	return nil
}

// ArcTo draws an elliptical arc from the current point to pt, using the
// endpoint parameterization of SVG: the radii of the ellipse, the rotation of
// its x axis in radians, and the two flags that pick one of the four candidate
// arcs. Radii too small to reach pt are scaled up.
//
// The arc is appended as cubic Béziers with rounded control points; the last
// one ends exactly at pt. A zero radius draws a line instead, and an arc to
// the current point draws nothing. It returns an error wrapping
// [ErrInvalidState] if the path has no current point.
func (p *Path) ArcTo(pt Point, radii Vec2, xRotation float64, largeArc, sweep bool) error {
	from, ok := p.CurrentPoint()
	if !ok {
		return p.errNoCurrentPoint("ArcTo")
	}
	if from == pt {
		return nil
	}
	if radii.X == 0 || radii.Y == 0 {
		return p.LineTo(pt)
	}
	arc := svgArc(fpt(from), fpt(pt), fpoint{float64(radii.X), float64(radii.Y)}, xRotation, largeArc, sweep)
	var cubics [][3]fpoint
	for c := range arc.cubics(p.Flatness()) {
		cubics = append(cubics, c)
	}
	if len(cubics) == 0 {
		return p.LineTo(pt)
	}
	for i, c := range cubics {
		end := c[2].round()
		if i == len(cubics)-1 {
			end = pt
		}
		p.appendElement(CubicToKind, c[0].round(), c[1].round(), end)
	}
	p.changed()
	return nil
}

// ClosePath closes the current subpath with a line back to its anchor. It does
// nothing if the path is empty or if the last element is a MoveTo or
// ClosePath.
func (p *Path) ClosePath() {
	if k, ok := p.lastKind(); !ok || k == MoveToKind || k == ClosePathKind {
		return
	}
	p.appendElement(ClosePathKind)
	p.changed()
}

// Push appends el to the path, dispatching on its kind. The From field is
// ignored.
func (p *Path) Push(el PathElement) error {
	switch el.Kind {
	case MoveToKind:
		p.MoveTo(el.To)
		return nil
	case LineToKind:
		return p.LineTo(el.To)
	case QuadToKind:
		return p.QuadTo(el.Ctrl1, el.To)
	case CubicToKind:
		return p.CubicTo(el.Ctrl1, el.Ctrl2, el.To)
	case ClosePathKind:
		p.ClosePath()
		return nil
	default:
		return fmt.Errorf("unknown path element kind %d: %w", el.Kind, ErrInvalidArgument)
	}
}

// Extend pushes every element of seq. It stops at the first error.
func (p *Path) Extend(seq iter.Seq[PathElement]) error {
	for el := range seq {
		if err := p.Push(el); err != nil {
			return err
		}
	}
	return nil
}

// RemoveLast removes the last element of the path. It returns an error
// wrapping [ErrInvalidState] if the path is empty.
func (p *Path) RemoveLast() error {
	k, ok := p.lastKind()
	if !ok {
		return p.errNoCurrentPoint("RemoveLast")
	}
	p.kinds = p.kinds[:len(p.kinds)-1]
	p.coords = p.coords[:len(p.coords)-coordCount(k)]
	p.changed()
	return nil
}

// SetLastPoint moves the last point stored in the path to pt. If the path ends
// with a ClosePath, that is the last point of the element before it. It
// returns an error wrapping [ErrInvalidState] if the path stores no point.
func (p *Path) SetLastPoint(pt Point) error {
	n := len(p.coords)
	if n < 2 {
		return p.errNoCurrentPoint("SetLastPoint")
	}
	p.coords[n-2], p.coords[n-1] = pt.X, pt.Y
	p.changed()
	return nil
}

// Remove removes the first element that has pt among its points, control
// points included, and reports whether it found one.
//
// The path is repaired afterwards so that it still starts with a MoveTo: a
// drawing element left at the front becomes a MoveTo to its end point, and
// ClosePath elements and moves that became redundant are dropped.
func (p *Path) Remove(pt Point) bool {
	o := 0
	for i, k := range p.kinds {
		n := coordCount(k)
		for j := 0; j < n; j += 2 {
			if p.coords[o+j] == pt.X && p.coords[o+j+1] == pt.Y {
				p.kinds = slices.Delete(p.kinds, i, i+1)
				p.coords = slices.Delete(p.coords, o, o+n)
				p.normalize()
				p.changed()
				return true
			}
		}
		o += n
	}
	return false
}

// normalize restores the structural invariants after an element was removed
// from the middle of the path.
func (p *Path) normalize() {
	o := 0
	for i := 0; i < len(p.kinds); {
		k := p.kinds[i]
		var prev PathElementKind
		if i > 0 {
			prev = p.kinds[i-1]
		}
		switch {
		case k == ClosePathKind && (i == 0 || prev == MoveToKind || prev == ClosePathKind):
			p.kinds = slices.Delete(p.kinds, i, i+1)
			continue
		case i == 0 && k != MoveToKind:
			n := coordCount(k)
			p.coords = slices.Delete(p.coords, o, o+n-2)
			p.kinds[i] = MoveToKind
		case k == MoveToKind && prev == MoveToKind:
			p.kinds = slices.Delete(p.kinds, i-1, i)
			p.coords = slices.Delete(p.coords, o-2, o)
			i--
			o -= 2
			continue
		}
		o += coordCount(p.kinds[i])
		i++
	}
}

// Clear removes all elements. The winding rule is kept.
func (p *Path) Clear() {
	p.kinds = p.kinds[:0]
	p.coords = p.coords[:0]
	p.changed()
}

// Translate moves every point of the path by v.
func (p *Path) Translate(v Vec2) {
	for i := 0; i < len(p.coords); i += 2 {
		p.coords[i] += v.X
		p.coords[i+1] += v.Y
	}
	p.changed()
}

// Transform applies aff to every point of the path, rounding to the grid.
func (p *Path) Transform(aff Affine) {
	for i := 0; i < len(p.coords); i += 2 {
		pt := Pt(p.coords[i], p.coords[i+1]).Transform(aff)
		p.coords[i], p.coords[i+1] = pt.X, pt.Y
	}
	p.changed()
}

func (p *Path) Observe(fn func()) func() {
	return observe(&p.obs, p, fn)
}

func (p *Path) Kind() Kind { return PathKind }

// Len returns the number of elements in the path.
func (p *Path) Len() int { return len(p.kinds) }

func (p *Path) WindingRule() WindingRule {
	if p.rule == 0 {
		return NonZero
	}
	return p.rule
}

func (p *Path) SetWindingRule(rule WindingRule) {
	p.rule = rule
	p.changed()
}

func (p *Path) Clone() Shape {
	return &Path{
		coords:   slices.Clone(p.coords),
		kinds:    slices.Clone(p.kinds),
		rule:     p.rule,
		flatness: p.flatness,
	}
}

func (p *Path) String() string {
	return SVG(p.PathElements())
}

// CurrentPoint returns the point that the next drawing element starts from.
// After a ClosePath, that is the anchor of the closed subpath.
func (p *Path) CurrentPoint() (Point, bool) {
	k, ok := p.lastKind()
	if !ok {
		return Point{}, false
	}
	if k != ClosePathKind {
		n := len(p.coords)
		return Pt(p.coords[n-2], p.coords[n-1]), true
	}
	o := len(p.coords)
	for i := len(p.kinds) - 1; i >= 0; i-- {
		o -= coordCount(p.kinds[i])
		if p.kinds[i] == MoveToKind {
			return Pt(p.coords[o], p.coords[o+1]), true
		}
	}
	panic("path doesn't start with MoveTo")
}

// ContainsControlPoint reports whether pt is one of the points stored in the
// path, control points included.
func (p *Path) ContainsControlPoint(pt Point) bool {
	for i := 0; i < len(p.coords); i += 2 {
		if p.coords[i] == pt.X && p.coords[i+1] == pt.Y {
			return true
		}
	}
	return false
}

// IsPolygon reports whether the path is a single closed subpath. Curves are
// allowed.
func (p *Path) IsPolygon() bool {
	if len(p.kinds) == 0 || p.kinds[0] != MoveToKind || p.kinds[len(p.kinds)-1] != ClosePathKind {
		return false
	}
	for _, k := range p.kinds[1:] {
		if k == MoveToKind {
			return false
		}
	}
	return true
}

// IsPolyline reports whether the path is a single open subpath made of lines
// only, with at least one line.
func (p *Path) IsPolyline() bool {
	if len(p.kinds) < 2 || p.kinds[0] != MoveToKind {
		return false
	}
	for _, k := range p.kinds[1:] {
		if k != LineToKind {
			return false
		}
	}
	return true
}

// IsCurved reports whether the path contains a quadratic or cubic Bézier.
func (p *Path) IsCurved() bool {
	return slices.ContainsFunc(p.kinds, func(k PathElementKind) bool {
		return k == QuadToKind || k == CubicToKind
	})
}

// IsMultiParts reports whether the path has more than one subpath.
func (p *Path) IsMultiParts() bool {
	n := 0
	for _, k := range p.kinds {
		if k == MoveToKind {
			n++
		}
	}
	return n >= 2
}

// IsEmpty reports whether the path draws nothing.
func (p *Path) IsEmpty() bool {
	for el := range p.PathElements() {
		if el.IsDrawable() {
			return false
		}
	}
	return true
}

// PathElements returns an iterator over the elements of the path, with From
// filled in.
func (p *Path) PathElements() iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		var cur, anchor option[Point]
		o := 0
		for _, k := range p.kinds {
			c := p.coords[o : o+coordCount(k)]
			o += len(c)
			var el PathElement
			switch k {
			case MoveToKind:
				to := Pt(c[0], c[1])
				el = PathElement{Kind: k, From: to, To: to}
				if cur.isSet {
					el.From = cur.value
				}
				anchor.set(to)
			case LineToKind:
				el = PathElement{Kind: k, From: cur.unwrap(), To: Pt(c[0], c[1])}
			case QuadToKind:
				el = PathElement{Kind: k, From: cur.unwrap(), Ctrl1: Pt(c[0], c[1]), To: Pt(c[2], c[3])}
			case CubicToKind:
				el = PathElement{Kind: k, From: cur.unwrap(), Ctrl1: Pt(c[0], c[1]), Ctrl2: Pt(c[2], c[3]), To: Pt(c[4], c[5])}
			case ClosePathKind:
				el = PathElement{Kind: k, From: cur.unwrap(), To: anchor.unwrap()}
			default:
				panic(fmt.Sprintf("unhandled case %v", k))
			}
			cur.set(el.To)
			if !yield(el) {
				return
			}
		}
	}
}

// Flatten returns the path flattened to lines. See [Flatten].
func (p *Path) Flatten(tolerance float64) iter.Seq[PathElement] {
	return Flatten(p.PathElements(), tolerance)
}

func (p *Path) edges() iter.Seq[edge] {
	return edges(p.Flatten(p.Flatness()), false)
}

// Length returns the length of the flattened path.
func (p *Path) Length() float64 {
	var l float64
	for e := range p.edges() {
		l += Pt(e.x0, e.y0).Distance(Pt(e.x1, e.y1))
	}
	return l
}

// LengthSquared returns the sum of the squared lengths of the edges of the
// flattened path. It is not the square of [Path.Length].
func (p *Path) LengthSquared() int {
	var l int
	for e := range p.edges() {
		l += Pt(e.x0, e.y0).DistanceSquared(Pt(e.x1, e.y1))
	}
	return l
}

// BoundingBox returns the bounding box of the drawable elements of the
// flattened path. Paths that draw nothing have the zero bounding box.
func (p *Path) BoundingBox() Rect {
	var bbox option[Rect]
	for el := range p.Flatten(p.Flatness()) {
		if !el.IsDrawable() {
			continue
		}
		if !bbox.isSet {
			bbox.set(NewRectFromPoints(el.From, el.To))
		} else {
			bbox.set(bbox.value.UnionPoint(el.From).UnionPoint(el.To))
		}
	}
	return bbox.value
}

// ControlBox returns the bounding box of all points stored in the path,
// control points included. It is cheaper than [Path.BoundingBox] and always
// encloses it.
func (p *Path) ControlBox() Rect {
	if len(p.coords) == 0 {
		return Rect{}
	}
	r := NewRect(p.coords[0], p.coords[1], 0, 0)
	for i := 2; i < len(p.coords); i += 2 {
		r = r.UnionPoint(Pt(p.coords[i], p.coords[i+1]))
	}
	return r
}

// crossings computes the crossings of the path against sh.
func (p *Path) crossings(sh Shadow, mode CrossingMode) CrossingResult {
	res, err := ComputeCrossingsContext(p.context(), p.PathElements(), sh, mode)
	if err != nil {
		panic(fmt.Sprintf("malformed path: %s", err))
	}
	return res
}

// intersectsShadow reports whether the shadow touches the path or lies in its
// interior.
func (p *Path) intersectsShadow(sh Shadow) bool {
	return p.crossings(sh, SimpleIntersectionWhenNotPolygon).Inside(p.WindingRule())
}

// Contains reports whether pt lies on the path or in the interior of one of its
// closed subpaths, under the path's winding rule.
func (p *Path) Contains(pt Point) bool {
	return p.intersectsShadow(PointShadow(pt))
}

// ContainsRect reports whether r lies in the interior of the path without
// touching its outline. Open subpaths are closed for this test.
func (p *Path) ContainsRect(r Rect) bool {
	res := p.crossings(RectShadow(r), AutoClose)
	n, ok := res.Count()
	return ok && p.WindingRule().Inside(n)
}

func (p *Path) Intersects(o Shape) bool {
	return Intersects(p, o)
}

// shadow returns the path as a shadow, flattened with its own tolerance.
func (p *Path) shadow() Shadow {
	return PathShadowContext(p.context(), p.PathElements())
}

// anchor returns the first point of the path.
func (p *Path) anchor() (Point, bool) {
	if len(p.coords) < 2 {
		return Point{}, false
	}
	return Pt(p.coords[0], p.coords[1]), true
}

// ClosestPointTo returns pt if the path contains it. Otherwise it returns the
// rounded projection of pt onto the nearest edge of the flattened path. A path
// without edges returns its first point, or the zero point if it is empty.
func (p *Path) ClosestPointTo(pt Point) Point {
	if p.Contains(pt) {
		return pt
	}
	var best option[Point]
	bestD := math.Inf(1)
	for e := range p.edges() {
		s := e.segment()
		if d := s.DistanceSquared(pt); d < bestD {
			bestD = d
			best.set(s.ClosestPointTo(pt))
		}
	}
	if best.isSet {
		return best.value
	}
	a, _ := p.anchor()
	return a
}

// FarthestPointTo returns the vertex of the flattened path farthest from pt.
func (p *Path) FarthestPointTo(pt Point) Point {
	var best option[Point]
	bestD := -1
	for el := range p.Flatten(p.Flatness()) {
		if d := el.To.DistanceSquared(pt); d > bestD {
			bestD = d
			best.set(el.To)
		}
	}
	return best.value
}

func (p *Path) Distance(pt Point) float64 {
	return math.Sqrt(p.DistanceSquared(pt))
}

// DistanceSquared returns the squared distance between pt and the path, zero
// if the path contains pt. An empty path is infinitely far away.
func (p *Path) DistanceSquared(pt Point) float64 {
	if p.Contains(pt) {
		return 0
	}
	bestD := math.Inf(1)
	found := false
	for e := range p.edges() {
		found = true
		bestD = min(bestD, segmentDistanceSquared(pt.X, pt.Y, e.x0, e.y0, e.x1, e.y1))
	}
	if !found {
		if a, ok := p.anchor(); ok {
			return float64(pt.DistanceSquared(a))
		}
	}
	return bestD
}

func (p *Path) DistanceL1(pt Point) int {
	return pt.DistanceL1(p.ClosestPointTo(pt))
}

func (p *Path) DistanceLinf(pt Point) int {
	return pt.DistanceLinf(p.ClosestPointTo(pt))
}

// Points returns the pixels drawn for the edges of the flattened path. See
// [Segment.Points]. Points shared by consecutive edges are yielded once.
func (p *Path) Points() iter.Seq[Point] {
	return func(yield func(Point) bool) {
		var cur Point
		open := false
		flush := func() bool {
			if !open {
				return true
			}
			open = false
			return yield(cur)
		}
		for el := range p.Flatten(p.Flatness()) {
			switch el.Kind {
			case MoveToKind:
				if !flush() {
					return
				}
			case LineToKind, ClosePathKind:
				if el.From == el.To {
					if el.Kind == ClosePathKind {
						open = false
					}
					continue
				}
				for q := range newPixelLine(el.From.X, el.From.Y, el.To.X, el.To.Y).pixels(false) {
					if !yield(q) {
						return
					}
				}
				open = el.Kind == LineToKind
				cur = el.To
			}
		}
		flush()
	}
}

func (p *Path) logFields() logrus.Fields {
	return logrus.Fields{
		"elements": len(p.kinds),
		"rule":     p.WindingRule().String(),
	}
}
