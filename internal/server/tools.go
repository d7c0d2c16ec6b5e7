package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// bandProperty describes one reflectance band argument: an inline 2-D array
// of numbers in [0,1].
func bandProperty(desc string) map[string]interface{} {
	return map[string]interface{}{
		"type": "array",
		"items": map[string]interface{}{
			"type":  "array",
			"items": map[string]interface{}{"type": "number"},
		},
		"description": desc,
	}
}

// maskProperty describes one binary water mask argument: a 2-D array where
// non-zero means water.
func maskProperty(desc string) map[string]interface{} {
	return map[string]interface{}{
		"type": "array",
		"items": map[string]interface{}{
			"type":  "array",
			"items": map[string]interface{}{"type": "integer"},
		},
		"description": desc,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Scene Generation
		{
			Name:        "generate_synthetic_scene",
			Description: "Generate a synthetic lake scene (green, NIR, and SWIR reflectance bands) and store it for subsequent index and extent calls. Returns a scene_id handle.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Scene width in pixels (default 512)",
						"default":     512,
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Scene height in pixels (default 512)",
						"default":     512,
					},
					"lake_center_row": map[string]interface{}{
						"type":        "integer",
						"description": "Lake center row in pixels (default: image center)",
					},
					"lake_center_col": map[string]interface{}{
						"type":        "integer",
						"description": "Lake center column in pixels (default: image center)",
					},
					"lake_radius": map[string]interface{}{
						"type":        "integer",
						"description": "Lake radius in pixels (default 100)",
						"default":     100,
					},
					"noise_sigma": map[string]interface{}{
						"type":        "number",
						"description": "Standard deviation of additive gaussian noise (default 0.02)",
						"default":     0.02,
					},
					"seed": map[string]interface{}{
						"type":        "integer",
						"description": "Random seed for reproducible scenes (default: time-based)",
					},
				},
			},
		},

		// Index Computation
		{
			Name:        "compute_water_index",
			Description: "Compute a spectral water index (NDWI or MNDWI) from reflectance bands. Bands come from a stored scene, grayscale image files, or inline arrays. Returns index statistics and a colormapped preview.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"method": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"ndwi", "mndwi"},
						"description": "Index formula: ndwi (green, NIR) or mndwi (green, SWIR)",
					},
					"scene_id":   map[string]interface{}{"type": "string", "description": "Handle of a stored synthetic scene"},
					"green":      bandProperty("Green band values"),
					"nir":        bandProperty("Near-infrared band values (NDWI)"),
					"swir":       bandProperty("Short-wave infrared band values (MNDWI)"),
					"green_path": map[string]interface{}{"type": "string", "description": "Path to a grayscale image for the green band"},
					"nir_path":   map[string]interface{}{"type": "string", "description": "Path to a grayscale image for the NIR band"},
					"swir_path":  map[string]interface{}{"type": "string", "description": "Path to a grayscale image for the SWIR band"},
					"smooth_radius": map[string]interface{}{
						"type":        "number",
						"description": "Optional gaussian blur radius applied to bands loaded from files",
					},
				},
				"required": []string{"method"},
			},
		},
		{
			Name:        "threshold_water_mask",
			Description: "Derive a binary water mask from a water index grid. Cells strictly above the threshold are water; null (undefined) cells are always non-water. Otsu auto-thresholding falls back to the manual threshold with a warning when it cannot run.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"index": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type":  "array",
							"items": map[string]interface{}{"type": []string{"number", "null"}},
						},
						"description": "Water index values in [-1,1]; null marks undefined cells",
					},
					"threshold": map[string]interface{}{
						"type":        "number",
						"description": "Manual classification threshold (default 0.0)",
						"default":     0.0,
					},
					"auto_threshold": map[string]interface{}{
						"type":        "boolean",
						"description": "Select the threshold automatically with Otsu's method",
						"default":     false,
					},
				},
				"required": []string{"index"},
			},
		},
		{
			Name:        "compute_water_extent",
			Description: "Compute a water index and threshold it into a mask in one call. Same band sources as compute_water_index. Returns the applied threshold, water pixel count, and index plus mask previews.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"method": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"ndwi", "mndwi"},
						"description": "Index formula to use",
					},
					"threshold": map[string]interface{}{
						"type":        "number",
						"description": "Classification threshold (default 0.0)",
						"default":     0.0,
					},
					"auto_threshold": map[string]interface{}{
						"type":        "boolean",
						"description": "Select the threshold automatically with Otsu's method",
						"default":     false,
					},
					"scene_id":   map[string]interface{}{"type": "string", "description": "Handle of a stored synthetic scene"},
					"green":      bandProperty("Green band values"),
					"nir":        bandProperty("Near-infrared band values (NDWI)"),
					"swir":       bandProperty("Short-wave infrared band values (MNDWI)"),
					"green_path": map[string]interface{}{"type": "string"},
					"nir_path":   map[string]interface{}{"type": "string"},
					"swir_path":  map[string]interface{}{"type": "string"},
					"smooth_radius": map[string]interface{}{
						"type":        "number",
						"description": "Optional gaussian blur radius applied to bands loaded from files",
					},
				},
				"required": []string{"method"},
			},
		},

		// Change Detection
		{
			Name:        "detect_water_change",
			Description: "Classify every cell of two same-shaped water masks into stable non-water, stable water, loss, or gain. Returns per-class counts and percentages, net change, and a palette-colored change map preview.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"mask_a": maskProperty("Water mask of the earlier date"),
					"mask_b": maskProperty("Water mask of the later date"),
					"pixel_size": map[string]interface{}{
						"type":        "number",
						"description": "Optional pixel size; when given, per-date areas are included",
					},
				},
				"required": []string{"mask_a", "mask_b"},
			},
		},
		{
			Name:        "compute_water_area",
			Description: "Convert a water mask and a pixel linear size into water pixel count and physical area (m² and km² when the pixel size is in meters).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"mask": maskProperty("Binary water mask"),
					"pixel_size": map[string]interface{}{
						"type":        "number",
						"description": "Pixel linear size, e.g. 30.0 for Landsat (default 30.0)",
						"default":     30.0,
					},
				},
				"required": []string{"mask"},
			},
		},
		{
			Name:        "compare_water_series",
			Description: "Compare water extent across an ordered series of masks (at least 2): per-date areas, consecutive-pair change statistics, and the min/max extent envelope with previews.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"masks": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "array",
							"items": map[string]interface{}{
								"type":  "array",
								"items": map[string]interface{}{"type": "integer"},
							},
						},
						"description": "Ordered sequence of same-shaped water masks",
					},
					"labels": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Optional date labels, one per mask (default Date_1, Date_2, ...)",
					},
					"pixel_size": map[string]interface{}{
						"type":        "number",
						"description": "Pixel linear size (default 30.0)",
						"default":     30.0,
					},
				},
				"required": []string{"masks"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
