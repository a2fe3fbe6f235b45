// Package services holds the carpool application logic used by the CLI:
// session handling, home/work addresses, trip posting and public profiles.
//
// Services are built over a kv.Store and open their repositories on demand,
// so a multi-record update can run inside Store.Atomically with repositories
// bound to the transactional view.
package services
