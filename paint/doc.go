// Package paint describes how geometry and layers are painted: colors,
// shaders, color filters and image filters.
//
// Nothing here produces pixels. The types are descriptions handed to a
// backend through the recording package. Color filters and the
// color-only subset of image filters can be evaluated pointwise with
// Apply and EvalColor, which is enough to check color-space handling
// without a rasterizer.
//
// Image filters are pointer types so that a filter value can serve as a
// map key identifying one node of a filter graph.
package paint
