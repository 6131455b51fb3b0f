// Package server wires the HTTP surface: router, middleware and the
// stores the endpoint handlers pull from.
package server
