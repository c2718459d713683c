// Package websocket pushes game state changes to browser clients.
//
// A single Hub goroutine owns the client sets. Clients attach to one session
// via /ws?session=<id> and receive JSON messages:
//
//	{"session_id": "ab12", "event": "state_update", "game_state": {...}}
//	{"session_id": "ab12", "event": "game_over", "game_state": {...},
//	 "data": {"final_score": 1024, "max_tile": 128}}
//
// Several queued messages may be coalesced into one frame, separated by
// newlines. Incoming client messages are read only to keep the connection
// alive.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//
//	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("session"))
//	})
//
//	hub.BroadcastToSession(sessionID, state)
//
// Broadcast calls never block: when the hub's queue is full the update is
// dropped and logged, and a client whose send buffer is full is disconnected.
package websocket
