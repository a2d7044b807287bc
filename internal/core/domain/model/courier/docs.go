// Package courier provides the Courier aggregate: a driver with a name, an
// online flag and the last position reported by their device.
package courier
