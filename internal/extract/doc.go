// Package extract pulls structured decisions out of free-form agent text.
//
// Agents reply in prose. The engine needs exactly two facts from a reply:
// the bid amount, if any, and the nominated player, if any. Extractor is
// the strategy seam; Pattern is the production implementation (regex token
// scan plus longest-name-first matching) and Exact is a strict single-token
// variant used by harnesses and scripted agents.
package extract
