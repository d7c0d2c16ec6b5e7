// Package server implements the MCP (Model Context Protocol) server for the
// surface-water analysis tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the water index,
// change detection, and area computation core through the MCP protocol, so
// MCP-compatible clients can run surface-water analyses on band grids.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - generate_synthetic_scene: Create a synthetic lake scene and keep it in
//     the scene store for later calls
//   - compute_water_index: NDWI/MNDWI from bands (inline, file, or scene)
//   - threshold_water_mask: Binary mask from an index grid, manual or Otsu
//     threshold
//   - compute_water_extent: Index plus mask in one call
//   - detect_water_change: 4-class change map and statistics for two masks
//   - compute_water_area: Physical area from a mask and pixel size
//   - compare_water_series: Multi-date areas, pairwise changes, and the
//     extent envelope
//
// # Band Sources
//
// Tools that consume reflectance bands accept them three ways, checked in
// this order: a scene_id referencing a stored synthetic scene, *_path
// arguments naming grayscale image files, or inline 2-D JSON arrays. Water
// index grids are passed inline with null marking undefined cells.
//
// # Grid Previews
//
// Tools that produce grids attach base64 PNG previews (fixed class palettes,
// capped at 512 pixels per edge) alongside the numeric statistics, so
// clients can inspect results without decoding the arrays.
package server
