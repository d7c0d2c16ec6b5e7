package server

import (
	"encoding/json"
	"fmt"
	"log"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ironsheep/water-tools-mcp/internal/change"
	"github.com/ironsheep/water-tools-mcp/internal/indices"
	"github.com/ironsheep/water-tools-mcp/internal/preview"
	"github.com/ironsheep/water-tools-mcp/internal/raster"
	"github.com/ironsheep/water-tools-mcp/internal/scene"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "compute_water_index").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Resolves band/mask grids from scenes, files, or inline arrays
//  4. Calls the appropriate core function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "generate_synthetic_scene":
		return s.handleGenerateSyntheticScene(args)
	case "compute_water_index":
		return s.handleComputeWaterIndex(args)
	case "threshold_water_mask":
		return s.handleThresholdWaterMask(args)
	case "compute_water_extent":
		return s.handleComputeWaterExtent(args)
	case "detect_water_change":
		return s.handleDetectWaterChange(args)
	case "compute_water_area":
		return s.handleComputeWaterArea(args)
	case "compare_water_series":
		return s.handleCompareWaterSeries(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Grid decoding helpers ===

// decodeMask converts a JSON integer grid to a water mask. Any non-zero cell
// counts as water; the grid must be rectangular.
func decodeMask(grid [][]int, name string) (raster.WaterMask, error) {
	m := make(raster.WaterMask, len(grid))
	for r, row := range grid {
		m[r] = make([]uint8, len(row))
		for c, v := range row {
			if v != 0 {
				m[r][c] = 1
			}
		}
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%s is not rectangular: %w", name, err)
	}
	return m, nil
}

// decodeIndex converts a JSON number-or-null grid to a water index; null
// cells are undefined.
func decodeIndex(grid [][]*float64) (*raster.WaterIndex, error) {
	rows := len(grid)
	cols := 0
	if rows > 0 {
		cols = len(grid[0])
	}
	idx := raster.NewWaterIndex(rows, cols)
	for r, row := range grid {
		if len(row) != cols {
			return nil, fmt.Errorf("index grid is not rectangular: %w", raster.ErrShapeMismatch)
		}
		for c, v := range row {
			if v != nil {
				idx.Set(r, c, *v)
			}
		}
	}
	return idx, nil
}

// bandSourceArgs are the shared band-source arguments of the index tools.
type bandSourceArgs struct {
	SceneID string `json:"scene_id"`

	Green raster.Band `json:"green"`
	NIR   raster.Band `json:"nir"`
	SWIR  raster.Band `json:"swir"`

	GreenPath string `json:"green_path"`
	NIRPath   string `json:"nir_path"`
	SWIRPath  string `json:"swir_path"`

	SmoothRadius float64 `json:"smooth_radius"`
}

// resolveBands produces the green/nir/swir bands from whichever source the
// arguments name: a stored scene, image files, or inline arrays. Missing
// bands stay nil; the core decides which ones the chosen method requires.
func (s *Server) resolveBands(a *bandSourceArgs) (green, nir, swir raster.Band, err error) {
	if a.SceneID != "" {
		sc, ok := s.lookupScene(a.SceneID)
		if !ok {
			return nil, nil, nil, fmt.Errorf("unknown scene_id: %s", a.SceneID)
		}
		return sc.Green, sc.NIR, sc.SWIR, nil
	}

	green, nir, swir = a.Green, a.NIR, a.SWIR
	if green == nil && a.GreenPath != "" {
		if green, err = scene.LoadBand(a.GreenPath, a.SmoothRadius); err != nil {
			return nil, nil, nil, err
		}
	}
	if nir == nil && a.NIRPath != "" {
		if nir, err = scene.LoadBand(a.NIRPath, a.SmoothRadius); err != nil {
			return nil, nil, nil, err
		}
	}
	if swir == nil && a.SWIRPath != "" {
		if swir, err = scene.LoadBand(a.SWIRPath, a.SmoothRadius); err != nil {
			return nil, nil, nil, err
		}
	}

	if green == nil {
		return nil, nil, nil, fmt.Errorf("%w: green band is required", raster.ErrMissingBand)
	}
	for _, b := range []raster.Band{green, nir, swir} {
		if b == nil {
			continue
		}
		if err := b.Validate(); err != nil {
			return nil, nil, nil, fmt.Errorf("band is not rectangular: %w", err)
		}
	}
	return green, nir, swir, nil
}

// === Scene Generation Handlers ===

type generateSceneArgs struct {
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	LakeCenterRow int     `json:"lake_center_row"`
	LakeCenterCol int     `json:"lake_center_col"`
	LakeRadius    int     `json:"lake_radius"`
	NoiseSigma    float64 `json:"noise_sigma"`
	Seed          uint64  `json:"seed"`
}

type generateSceneResult struct {
	SceneID string `json:"scene_id"`
	*scene.Bands
}

func (s *Server) handleGenerateSyntheticScene(args json.RawMessage) (interface{}, error) {
	var a generateSceneArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Width == 0 {
		a.Width = 512
	}
	if a.Height == 0 {
		a.Height = 512
	}
	if a.LakeRadius == 0 {
		a.LakeRadius = 100
	}

	bands, err := scene.Synthetic(scene.Config{
		Width:         a.Width,
		Height:        a.Height,
		LakeCenterRow: a.LakeCenterRow,
		LakeCenterCol: a.LakeCenterCol,
		LakeRadius:    a.LakeRadius,
		NoiseSigma:    a.NoiseSigma,
		Seed:          a.Seed,
	})
	if err != nil {
		return nil, err
	}

	return &generateSceneResult{
		SceneID: s.storeScene(bands),
		Bands:   bands,
	}, nil
}

// === Index Computation Handlers ===

type computeIndexArgs struct {
	Method string `json:"method"`
	bandSourceArgs
}

type computeIndexResult struct {
	Method        string         `json:"method"`
	Rows          int            `json:"rows"`
	Cols          int            `json:"cols"`
	DefinedPixels int            `json:"defined_pixels"`
	Min           float64        `json:"min"`
	Max           float64        `json:"max"`
	Mean          float64        `json:"mean"`
	Preview       *preview.Image `json:"preview"`
}

func (s *Server) handleComputeWaterIndex(args json.RawMessage) (interface{}, error) {
	var a computeIndexArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	green, nir, swir, err := s.resolveBands(&a.bandSourceArgs)
	if err != nil {
		return nil, err
	}

	res, err := indices.ComputeExtent(green, nir, swir, indices.ExtentOptions{Method: a.Method})
	if err != nil {
		return nil, err
	}
	idx := res.Index

	out := &computeIndexResult{
		Method:        a.Method,
		Rows:          idx.Rows(),
		Cols:          idx.Cols(),
		DefinedPixels: idx.DefinedCount(),
	}
	if vals := idx.DefinedValues(); len(vals) > 0 {
		out.Min = floats.Min(vals)
		out.Max = floats.Max(vals)
		out.Mean = stat.Mean(vals, nil)
	}
	if out.Preview, err = preview.Index(idx); err != nil {
		return nil, err
	}
	return out, nil
}

type thresholdMaskArgs struct {
	Index         [][]*float64 `json:"index"`
	Threshold     float64      `json:"threshold"`
	AutoThreshold bool         `json:"auto_threshold"`
}

type thresholdMaskResult struct {
	*indices.ThresholdResult
	Rows    int            `json:"rows"`
	Cols    int            `json:"cols"`
	Preview *preview.Image `json:"preview"`
}

func (s *Server) handleThresholdWaterMask(args json.RawMessage) (interface{}, error) {
	var a thresholdMaskArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	idx, err := decodeIndex(a.Index)
	if err != nil {
		return nil, err
	}

	res := indices.ThresholdMask(idx, indices.ThresholdOptions{
		Threshold: a.Threshold,
		Auto:      a.AutoThreshold,
		Selector:  s.selector,
	})
	if res.Warning != "" {
		log.Printf("threshold_water_mask: %s", res.Warning)
	}

	p, err := preview.Mask(res.Mask)
	if err != nil {
		return nil, err
	}
	return &thresholdMaskResult{
		ThresholdResult: res,
		Rows:            idx.Rows(),
		Cols:            idx.Cols(),
		Preview:         p,
	}, nil
}

type computeExtentArgs struct {
	Method        string  `json:"method"`
	Threshold     float64 `json:"threshold"`
	AutoThreshold bool    `json:"auto_threshold"`
	bandSourceArgs
}

type computeExtentResult struct {
	Method string `json:"method"`
	*indices.ThresholdResult
	Rows         int            `json:"rows"`
	Cols         int            `json:"cols"`
	IndexPreview *preview.Image `json:"index_preview"`
	MaskPreview  *preview.Image `json:"mask_preview"`
}

func (s *Server) handleComputeWaterExtent(args json.RawMessage) (interface{}, error) {
	var a computeExtentArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	green, nir, swir, err := s.resolveBands(&a.bandSourceArgs)
	if err != nil {
		return nil, err
	}

	res, err := indices.ComputeExtent(green, nir, swir, indices.ExtentOptions{
		Method:    a.Method,
		Threshold: a.Threshold,
		Auto:      a.AutoThreshold,
		Selector:  s.selector,
	})
	if err != nil {
		return nil, err
	}
	if res.Threshold.Warning != "" {
		log.Printf("compute_water_extent: %s", res.Threshold.Warning)
	}

	out := &computeExtentResult{
		Method:          a.Method,
		ThresholdResult: res.Threshold,
		Rows:            res.Index.Rows(),
		Cols:            res.Index.Cols(),
	}
	if out.IndexPreview, err = preview.Index(res.Index); err != nil {
		return nil, err
	}
	if out.MaskPreview, err = preview.Mask(res.Threshold.Mask); err != nil {
		return nil, err
	}
	return out, nil
}

// === Change Detection Handlers ===

type detectChangeArgs struct {
	MaskA     [][]int `json:"mask_a"`
	MaskB     [][]int `json:"mask_b"`
	PixelSize float64 `json:"pixel_size"`
}

type detectChangeResult struct {
	Statistics  change.ChangeStatistics `json:"statistics"`
	TotalPixels int                     `json:"total_pixels"`
	AreaA       *change.AreaStatistics  `json:"area_a,omitempty"`
	AreaB       *change.AreaStatistics  `json:"area_b,omitempty"`
	Preview     *preview.Image          `json:"preview"`
}

func (s *Server) handleDetectWaterChange(args json.RawMessage) (interface{}, error) {
	var a detectChangeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	maskA, err := decodeMask(a.MaskA, "mask_a")
	if err != nil {
		return nil, err
	}
	maskB, err := decodeMask(a.MaskB, "mask_b")
	if err != nil {
		return nil, err
	}

	res, err := change.DetectChange(maskA, maskB)
	if err != nil {
		return nil, err
	}

	out := &detectChangeResult{
		Statistics:  res.Stats,
		TotalPixels: maskA.Rows() * maskA.Cols(),
	}
	if a.PixelSize != 0 {
		if out.AreaA, err = change.ComputeArea(maskA, a.PixelSize); err != nil {
			return nil, err
		}
		if out.AreaB, err = change.ComputeArea(maskB, a.PixelSize); err != nil {
			return nil, err
		}
	}
	if out.Preview, err = preview.ChangeMap(res.Map); err != nil {
		return nil, err
	}
	return out, nil
}

type computeAreaArgs struct {
	Mask      [][]int `json:"mask"`
	PixelSize float64 `json:"pixel_size"`
}

func (s *Server) handleComputeWaterArea(args json.RawMessage) (interface{}, error) {
	var a computeAreaArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.PixelSize == 0 {
		a.PixelSize = 30.0
	}
	mask, err := decodeMask(a.Mask, "mask")
	if err != nil {
		return nil, err
	}
	return change.ComputeArea(mask, a.PixelSize)
}

type compareSeriesArgs struct {
	Masks     [][][]int `json:"masks"`
	Labels    []string  `json:"labels"`
	PixelSize float64   `json:"pixel_size"`
}

type compareSeriesResult struct {
	*change.SeriesResult
	MaxExtentPreview *preview.Image `json:"max_extent_preview"`
	MinExtentPreview *preview.Image `json:"min_extent_preview"`
}

func (s *Server) handleCompareWaterSeries(args json.RawMessage) (interface{}, error) {
	var a compareSeriesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.PixelSize == 0 {
		a.PixelSize = 30.0
	}

	masks := make([]raster.WaterMask, len(a.Masks))
	for i, g := range a.Masks {
		m, err := decodeMask(g, fmt.Sprintf("masks[%d]", i))
		if err != nil {
			return nil, err
		}
		masks[i] = m
	}

	res, err := change.CompareSeries(masks, a.Labels, a.PixelSize)
	if err != nil {
		return nil, err
	}

	out := &compareSeriesResult{SeriesResult: res}
	if out.MaxExtentPreview, err = preview.Mask(res.MaxExtent); err != nil {
		return nil, err
	}
	if out.MinExtentPreview, err = preview.Mask(res.MinExtent); err != nil {
		return nil, err
	}
	return out, nil
}
