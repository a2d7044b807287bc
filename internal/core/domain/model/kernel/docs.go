// Package kernel holds the value objects shared by every aggregate of the
// dispatch core.
//
// The package includes:
//   - UUID: identifier of orders, couriers, clients and chat messages
//   - Location: a latitude/longitude pair with haversine distance
//   - Role: the kind of actor behind a request (client, admin, courier)
//
// Values are immutable once built and validate themselves on construction.
package kernel
