// Package ledger implements the team ledger component.
//
// The ledger exclusively owns per-team budget and roster state:
//   - Computes remaining slots and the reserve-constrained bid ceiling
//   - Applies sales, the only mutation of team state
//   - Serves isolated team copies in rotation order
package ledger
