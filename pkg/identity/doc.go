// Package identity carries the authenticated identity for a request.
package identity
