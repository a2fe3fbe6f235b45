// Package geo talks to the external address services.
//
// Resolver turns a free-text address into a coordinate. NominatimClient is
// the network implementation; it never fails loudly, a lookup that cannot be
// answered for any reason is simply unresolved. CachedResolver memoizes any
// Resolver so repeated addresses cost one request.
//
// AddressClient queries the api-adresse autocomplete service and Debouncer
// collapses bursts of keystrokes into one query.
package geo
