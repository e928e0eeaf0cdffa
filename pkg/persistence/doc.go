// Package persistence remembers device configurations across
// associations.
//
// A manager that has accepted an agent's extended configuration stores it
// keyed by the agent's system id and dev-configuration-id, so that the next
// association with the same configuration id is answered "accepted" without
// another configuring phase. Standard configurations are registered once and
// shared by every agent.
//
// Records hold the MDER encoding of the configuration object list inside a
// small CBOR envelope.
package persistence
