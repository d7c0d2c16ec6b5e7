// Package change quantifies surface-water change between binary water masks.
//
// Three layers build on each other:
//
//   - DetectChange classifies every cell of two same-shaped masks into one
//     of four transition classes (stable non-water, stable water, loss,
//     gain) and summarizes the counts.
//   - ComputeArea converts a mask and a pixel size into physical area.
//   - CompareSeries runs both over an ordered mask sequence: per-date areas,
//     consecutive-pair change maps, and the min/max extent envelope across
//     all dates.
//
// All operations are pure: inputs are never mutated and outputs are freshly
// allocated. Pixel counts are exact integers; percentages are unrounded
// floats (rounding is a presentation concern).
package change
