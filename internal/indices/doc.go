// Package indices computes spectral water indices and derives binary water
// masks from them.
//
// Both supported indices are normalized differences of two reflectance
// bands:
//
//	NDWI  = (green - nir)  / (green + nir)    (McFeeters, 1996)
//	MNDWI = (green - swir) / (green + swir)   (Xu, 2006)
//
// Cells where the band sum is exactly zero have no defined index value; they
// are marked undefined rather than raising a division fault, and thresholding
// always classifies them as non-water.
//
// Threshold selection is pluggable: ThresholdOptions can carry a
// ThresholdSelector (such as the one in the otsu package) that derives a cut
// from the defined index values. When automatic selection is requested but no
// selector is available, or the selector fails, the call degrades to the
// manual threshold and reports a warning instead of an error.
package indices
