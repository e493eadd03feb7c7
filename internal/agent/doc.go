// Package agent defines the decision boundary between the draft engine and
// whoever is playing each team.
//
// The engine hands a Decider a snapshot of the draft as that team sees it
// and gets back free-form text. LLM players answer through the OpenRouter
// chat API with a persona and a running plan document; Func and Scripted
// are in-process implementations for tests, dry runs, and harnesses.
package agent
