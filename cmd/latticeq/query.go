package main

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"honnef.co/go/lattice"
	"honnef.co/go/lattice/internal/scene"
)

func labels(sc *scene.Scene, shapes []lattice.Shape) []string {
	var out []string
	for _, s := range shapes {
		for i, t := range sc.Shapes {
			if s == t {
				out = append(out, sc.Label(i))
				break
			}
		}
	}
	return out
}

func (a *app) boundsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bounds <scene>",
		Short: "Print the bounding box of every shape and of the whole scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := a.load(args[0])
			if err != nil {
				return err
			}
			for i, s := range sc.Shapes {
				a.printf(cmd, "%s\t%s\t%s\n", sc.Label(i), s.Kind(), s.BoundingBox())
			}
			all := lattice.NewMultiShape(sc.Shapes...)
			a.printf(cmd, "scene\t%s\t%s\n", all.Kind(), all.BoundingBox())
			return nil
		},
	}
}

func (a *app) containsCmd() *cobra.Command {
	var x, y int
	cmd := &cobra.Command{
		Use:   "contains <scene>",
		Short: "List the shapes that contain a point",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := a.load(args[0])
			if err != nil {
				return err
			}
			pt := lattice.Pt(x, y)
			hits := lattice.NewMultiShape(sc.Shapes...).ShapesContaining(pt)
			a.log.WithFields(logrus.Fields{
				"point": pt,
				"hits":  len(hits),
			}).Debug("containment query")
			for _, l := range labels(sc, hits) {
				a.printf(cmd, "%s\n", l)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&x, "x", 0, "x coordinate")
	cmd.Flags().IntVar(&y, "y", 0, "y coordinate")
	return cmd
}

func (a *app) intersectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "intersects <scene> <shape> <shape>",
		Short: "Report whether two shapes intersect, and how far apart they are",
		Long: `Shapes are referenced by name or by their index in the scene. The
closest point is the point of the first shape nearest to the second.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := a.load(args[0])
			if err != nil {
				return err
			}
			s1, err := sc.Lookup(args[1])
			if err != nil {
				return err
			}
			s2, err := sc.Lookup(args[2])
			if err != nil {
				return err
			}
			hit := lattice.Intersects(s1, s2)
			a.log.WithFields(logrus.Fields{
				"a":      s1.Kind(),
				"b":      s2.Kind(),
				"result": hit,
			}).Debug("intersection query")
			a.printf(cmd, "intersects\t%t\n", hit)
			a.printf(cmd, "distance\t%g\n", lattice.Distance(s1, s2))
			a.printf(cmd, "closest\t%s\n", lattice.ClosestPoint(s1, s2))
			return nil
		},
	}
}

func (a *app) clipCmd() *cobra.Command {
	var segRef, rectRef string
	cmd := &cobra.Command{
		Use:   "clip <scene>",
		Short: "Clip a segment to a rectangle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := a.load(args[0])
			if err != nil {
				return err
			}
			s, err := sc.Lookup(segRef)
			if err != nil {
				return err
			}
			seg, ok := s.(*lattice.Segment)
			if !ok {
				return fmt.Errorf("shape %q is a %s, not a segment: %w", segRef, s.Kind(), lattice.ErrInvalidArgument)
			}
			r, err := sc.Lookup(rectRef)
			if err != nil {
				return err
			}
			rect, ok := r.(*lattice.Rect)
			if !ok {
				return fmt.Errorf("shape %q is a %s, not a rectangle: %w", rectRef, r.Kind(), lattice.ErrInvalidArgument)
			}
			if !seg.Clip(a.ctx, *rect) {
				a.printf(cmd, "miss\n")
				return nil
			}
			a.printf(cmd, "%s\n", seg)
			return nil
		},
	}
	cmd.Flags().StringVar(&segRef, "segment", "", "segment to clip, by name or index")
	cmd.Flags().StringVar(&rectRef, "rect", "", "clip rectangle, by name or index")
	cmd.MarkFlagRequired("segment")
	cmd.MarkFlagRequired("rect")
	return cmd
}

func (a *app) svgCmd() *cobra.Command {
	var flatten bool
	cmd := &cobra.Command{
		Use:   "svg <scene>",
		Short: "Print the outline of every shape as SVG path data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := a.load(args[0])
			if err != nil {
				return err
			}
			for i, s := range sc.Shapes {
				els := s.PathElements()
				if flatten {
					els = a.ctx.Flatten(els)
				}
				a.printf(cmd, "%s\t", sc.Label(i))
				if err := lattice.WriteSVG(cmd.OutOrStdout(), els); err != nil {
					return err
				}
				a.printf(cmd, "\n")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&flatten, "flatten", false, "replace curves with lines")
	return cmd
}

func (a *app) pointsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "points <scene> <shape>",
		Short: "Print the grid points on the outline of a shape",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := a.load(args[0])
			if err != nil {
				return err
			}
			s, err := sc.Lookup(args[1])
			if err != nil {
				return err
			}
			var sb strings.Builder
			for pt := range s.Points() {
				fmt.Fprintf(&sb, "%d %d\n", pt.X, pt.Y)
			}
			a.printf(cmd, "%s", sb.String())
			return nil
		},
	}
}
