// Package mcp implements the localstore Model Context Protocol server.
//
// The server exposes the sandboxed document store to MCP clients over a
// transport (stdio in production, in-memory in tests):
//
//   - resources/list returns the static root-collection entry
//   - resources/templates/list returns the storage://local/ URI template
//   - resources/read serves whole-file reads by URI
//   - tools/list advertises the single write_file tool
//   - tools/call dispatches validated write_file invocations
//
// # Error Handling
//
// The server distinguishes two kinds of tool failure:
//
//   - Domain errors (sandbox escape, missing parent, bad argument, I/O
//     failure): returned as a CallToolResult with IsError=true so the
//     caller receives a well-formed failure payload, never a transport
//     fault.
//
//   - System errors (implementation bugs): returned as Go errors and
//     surfaced by the SDK as protocol faults.
//
// Resource read errors propagate to the SDK's generic fault handling;
// the read path does not use the tool-result envelope.
//
// # Thread Safety
//
// The server holds no cross-call mutable state. Message handling and
// transport lifecycle are managed by the MCP SDK.
package mcp
