// Package server provides the HTTP surface for exposing reactive cells.
//
// It wraps a Gin engine with the standard middleware stack (recovery,
// request ID, CORS, request logging, telemetry) and mounts the cell
// API:
//
//	PUT  /v1/cells/:name   write a value to an exposed cell
//	GET  /v1/cells/:name   read a cell's current value
//	GET  /v1/cells         list exposed cells
//	GET  /v1/stream        SSE stream of settled values by topic
//	GET  /health           aggregated component health
//
// Cells are registered through the API type. ExposeCell adapts a typed
// cell for JSON access; ExposeSource adapts a read-only source such as
// a debounced pipeline output.
package server
