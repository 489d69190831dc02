// Package httputil provides the JSON plumbing shared by blockboard's HTTP
// handlers.
//
//   - [WriteJSON] and [WriteError] encode responses. Errors carrying a
//     pkg/errors code become {"error": {"code": ..., "message": ...}}
//     with the status from errors.HTTPStatus.
//   - [DecodeJSON] reads a size-limited request body and rejects unknown
//     fields.
//   - [Instrument] is chi middleware that reports method, route pattern,
//     status and latency of every request to a [Recorder] and logs it.
package httputil
