// Package prompt renders the system and user messages sent to LLM managers.
//
// Every builder is a pure function over a model.Snapshot: the scheduler
// assembles the snapshot, the agent picks the message pair for the phase,
// and the transport client sends it. Nothing here reads or mutates draft
// state directly.
package prompt
