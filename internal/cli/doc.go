// Package cli implements the interactive carpool shell.
//
// The App owns the session state explicitly (the logged-in user and the last
// map it rendered) and dispatches REPL commands to the services, printing the
// pages built by the views package. Until the logged-in user has both a home
// and a work address, only address entry, logout, help and exit are allowed.
package cli
