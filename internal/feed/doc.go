// Package feed fans draft events out to independent consumers.
//
// The scheduler publishes every observable step of a draft as a
// model.DraftEvent. The feed delivers each event to every subscriber
// through a growable per-subscriber buffer, so a slow consumer (a stalled
// websocket, a struggling database) can never block the auction floor.
package feed
