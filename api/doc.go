// Package api provides the HTTP REST API for the 2048 game server.
//
// Endpoints:
//
// Sessions:
//   - POST   /api/sessions                    create a session ({"config_id": "small"}, empty body for the default)
//   - GET    /api/sessions                    list sessions (?sort=accessed|created|score&order=asc|desc&limit=N)
//   - GET    /api/sessions/leaderboard        sessions ranked by score (?config=classic)
//   - GET    /api/sessions/{id}               session info with state and config
//   - DELETE /api/sessions/{id}               delete a session
//
// Game:
//   - GET  /api/sessions/{id}/state           current game state
//   - POST /api/sessions/{id}/move            {"direction": "left", "reset": false}
//   - POST /api/sessions/{id}/bulk-move       {"moves": ["left", "up"], "reset": false}
//   - POST /api/sessions/{id}/collapse        first phase of a move, {"direction": "up"}
//   - POST /api/sessions/{id}/spawn           second phase, places the new tile
//   - POST /api/sessions/{id}/reset           start over on the same session
//   - GET  /api/sessions/{id}/history         ?page=1&limit=20&order=desc
//
// Configuration:
//   - GET  /api/configs                       list configs
//   - GET  /api/configs/{name}                one config
//   - POST /api/configs                       save a config (?id=name, else derived from its name)
//
// WebSocket:
//   - GET /ws?session={id}                    state_update and game_over pushes
//
// Errors are JSON objects of the form {"error": "..."}. Missing sessions and
// configs answer 404, bad directions and invalid configs 400, and two-phase
// misuse (collapse while a spawn is pending, spawn with nothing pending) 409.
//
// Every response carries an X-Request-ID header; a caller-supplied value is
// echoed back and attached to the request context.
package api
