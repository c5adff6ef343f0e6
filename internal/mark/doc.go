// Package mark is the catalog of plot marks: Lines, Scatter (over the
// abstract ScatterBase), Histogram and Bars, all deriving from the abstract
// Base.
//
// Every constructor takes its two mandatory scales up front and binds them
// into the scales mapping, together with default orientation and dimension
// metadata, before the mark is registered. A missing or unresolvable scale
// fails with *ConstructionError and nothing is registered:
//
//	x, _ := scale.NewLinear(mgr)
//	y, _ := scale.NewLinear(mgr)
//	lines, err := mark.NewLines(mgr, x.ID(), y.ID(),
//		widget.With("line_style", "dashed"),
//		mark.WithScale("color", colors.ID()),
//	)
//
// A mark holds a registry reference on each scale it is bound to; releasing
// the mark releases them. Histograms bind "sample" and "count" instead of
// "x" and "y".
package mark
