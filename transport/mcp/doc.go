// Package mcp exposes the 2048 game to AI agents over the Model Context Protocol.
//
// The package is a thin client: every tool call is translated into a request
// against the REST API served by package api, and the JSON response is
// rendered back as plain text the agent can read.
//
// MCP Tools:
//   - create_session: Create a new session, optionally from a named config
//   - list_sessions: List all active sessions with score and status
//   - get_session: Get specific session details
//   - game_state: Board, score, max tile and possible moves
//   - move: Slide, merge and spawn in one step
//   - bulk_move: Execute multiple moves, stopping early on game over
//   - collapse: Slide and merge without spawning
//   - spawn: Place the pending tile after collapse
//   - reset_game: Start over on the same session
//   - move_history: Paginated move history
//   - list_configs: List available game configurations
//   - game_instructions: Rules and strategy tips
//
// Boards are rendered as right-aligned columns with "." for empty cells:
//
//	  2   .   .   .
//	  .   4   .   .
//	  .   .   .   .
//	  .   .   . 128
//
// Transport Modes:
//
// The server returned by GetMCPServer can be served over stdio with
// server.ServeStdio, or mounted on an HTTP route that feeds request bodies to
// HandleMessage.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
