// Package scene supplies reflectance bands for the water analysis tools.
//
// Two sources are supported: synthetic lake scenes generated from a handful
// of parameters (a circular lake on a land background, with realistic
// per-class reflectance ranges and gaussian noise), and grayscale image
// files interpreted as single-band reflectance grids. Both produce plain
// raster.Band values; downstream packages do not care which source a band
// came from.
//
// Synthetic scenes are seedable so tests and demos are reproducible.
package scene
