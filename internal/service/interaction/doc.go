// Package interaction implements the simulation funnel log: one record per
// (campaign, recipient) send, advanced by the unauthenticated tracking
// endpoints, plus the append-only captured-credential log.
//
// The service layer owns the funnel semantics (stage flags and timestamps
// always set together, flags never reset). It depends on repository
// interfaces defined in this package and should never import from the
// tracking or api packages.
//
// Repository implementations live in repository/postgres/ and
// repository/memory/.
package interaction
