// Package draft implements the auction engine.
//
// Two pieces:
//   - Lot: the per-item bid state machine (increment/minimum validation,
//     budget and reserve checks, self-raise ban, append-only bid history)
//   - Scheduler: the draft orchestrator (nomination rotation, shuffled
//     bidding rounds, lot resolution, termination), the single owner of all
//     mutable draft state
//
// The scheduler is single-threaded and cooperative: one lot at a time, one
// decision at a time. Agent decisions arrive through the agent.Decider
// boundary and are parsed through the extract.Extractor strategy; a failed
// or empty decision is a silent pass. Shuffling uses an injectable RNG so a
// fixed seed with scripted deciders replays an identical draft.
package draft
