// Package protocol owns the native messaging wire contract.
//
// Ownership boundary:
// - frame subpackage: length-prefix byte layer
// - request/response envelope shapes
// - JSON codec over a stream pair
package protocol
