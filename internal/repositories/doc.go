// Package repositories groups the carpool collections stored in the
// key-value store: the user directory (upsert by email plus the session
// pointer) and the append-only trip and comment ledgers. Each collection is
// persisted whole under one JSON slot and filtered with linear scans.
package repositories

// Slot names in the key-value store.
const (
	SlotUsers       = "users"
	SlotCurrentUser = "currentUser"
	SlotTrips       = "trips"
	SlotComments    = "comments"
)
