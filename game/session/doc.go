// Package session provides session management for the 2048 game server.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session cleanup and expiration
//
// Manager is the main session manager. Every session owns its own engine
// instance, so boards and scores are never shared between sessions.
//
// Session Identifiers:
//
// Sessions use 4-character hex IDs for easy reference. Lookups are
// case-insensitive and generated IDs are retried until a free one is found.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sess.ID)
//	sessions := manager.List()
//
// Cleanup:
//
// Sessions live in memory only. RunCleanup prunes sessions that have not been
// touched within a retention window until its context is cancelled:
//
//	go manager.RunCleanup(ctx, time.Minute, 24*time.Hour)
package session
