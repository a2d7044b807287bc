// Package order provides the Order aggregate and its lifecycle state machine.
//
// The package includes:
//   - Order: the aggregate root holding parties, waypoints, price, settlement flags,
//     status history and chat
//   - Status: the lifecycle state machine with a fixed adjacency table
//   - HistoryEntry and ChatMessage: append-only logs owned by the aggregate
//
// Key business rules:
//   - Every status change appends exactly one history entry in the same call
//   - A rejected change leaves the order untouched
//   - DELIVERED and CANCELED are terminal
//   - Only delivered orders can be rated
package order
