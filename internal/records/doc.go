// Package records manages the registration collection: one JSON array of
// Record values kept under a single storage key.
//
// Repository performs the load, mutate and persist passes over that array.
// Service sits on top of it and drives the registration form: validation,
// password sealing, user feedback, logging and metrics.
package records
