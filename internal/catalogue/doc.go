// Package catalogue implements the item catalogue component.
//
// The catalogue owns the set of draftable items and the available/drafted
// partition:
//   - Loads items from a players CSV (Name required, Pos/PTS optional)
//   - Resolves proposed names case-insensitively against available items
//   - Records sales via Take, the only mutation of the partition
//   - Serves isolated snapshot copies for prompts, exports, and the live view
package catalogue
