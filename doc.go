// Package lattice provides exact 2D geometry on the integer grid: shapes whose
// coordinates are integers, and queries about them that don't suffer from
// floating point error.
//
// # Shapes
//
// All shapes implement [Shape]:
//   - [Rect], an axis-aligned rectangle. It also serves as the bounding box
//     type of every shape.
//   - [Circle], a closed disk.
//   - [Segment], a closed line segment.
//   - [Path], a sequence of subpaths made of lines, quadratic and cubic
//     Béziers, and elliptical arcs (see [Path.ArcTo]).
//   - [MultiShape], an ordered collection of shapes that acts as their union.
//
// Shapes are mutable through their pointer methods. Every mutation notifies
// the callbacks registered with Observe; [MultiShape] uses this to keep its
// cached bounding box current.
//
// Containment is closed: points on the outline of a shape are contained.
// Paths decide which enclosed points are inside with a [WindingRule].
//
// # Pairwise queries
//
// [Intersects], [ClosestPoint], [DistanceSquared], [Distance] and
// [ContainsShape] work on any pair of shapes. Intersection and containment are
// exact. Closest points are grid points; where the true closest point lies
// between grid points, it is rounded.
//
// # Crossings
//
// Paths answer containment and intersection queries by casting a horizontal
// ray from a query shape, its shadow, and accumulating the signed crossings
// of every edge of the flattened path, see [ComputeCrossings]. The crossing
// functions for single edges, such as [PointCrossings] and [RectCrossings],
// are exported for building custom queries.
//
// Segments and path edges are discrete: a point lies on one when it is one of
// the pixels Bresenham's algorithm draws for it, see [Segment.Points]. Tests
// between two shapes, such as segment against segment, treat edges as
// continuous lines.
//
// # Exactness
//
// Orientation and distance predicates are exact for coordinates whose
// magnitude is below 2^29. Curves are flattened to lines, with the tolerance
// of [Path.SetFlatness] or [Context.Flatten], and the resulting points are
// rounded to the grid before any predicate sees them, so queries on curved
// paths are exact with respect to the flattened outline.
//
// # Coordinate systems
//
// Most queries don't depend on the orientation of the y axis. The few that do,
// such as [Segment.SideOf], [Rect.Outcode], [Rect.Sides] and
// [Circle.Octants], take a [Context].
//
// # Logging
//
// The package is silent by default. [SetLogger] installs a logrus logger that
// receives debug-level diagnostics.
package lattice
