// Package services provides the stateless domain services of the dispatch core.
//
// The package includes:
//   - RouteSequencer: orders a courier's pending stops
//   - DelayMonitor: flags orders stuck in one status
//   - OrderDispatcher: picks the nearest online courier for a priced order
//
// None of them perform I/O; callers pass in the snapshot they want evaluated.
package services
