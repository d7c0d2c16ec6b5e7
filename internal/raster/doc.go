// Package raster defines the grid types shared by the water analysis packages.
//
// All grids are row-major 2-D slices indexed as grid[row][col], with row 0 at
// the top. The four grid kinds mirror the stages of the analysis pipeline:
//
//   - Band: floating-point reflectance values, conventionally in [0, 1]
//   - WaterIndex: a normalized difference index in [-1, 1] with an explicit
//     per-cell defined flag (cells where the band sum is zero are undefined)
//   - WaterMask: binary water/non-water classification (1 = water)
//   - ChangeMap: 4-class water transition labels between two dates
//
// # Undefined index cells
//
// A water index cell is undefined exactly when the denominator of the
// normalized difference was zero. WaterIndex tracks this with an explicit
// boolean grid rather than relying on NaN comparison semantics; the Values
// grid still carries NaN at undefined cells so exported data stays
// recognizable, but all classification decisions consult Defined.
//
// # Error Handling
//
// The sentinel errors in this package cover every precondition the analysis
// operations check: shape mismatches, unknown index formulas, missing bands,
// too-short mask series, and invalid scalar parameters. Callers match them
// with errors.Is.
package raster
