// Package authenticator defines the pluggable credential verification
// layer. Each authenticator maps a set of credentials to a profile;
// session issuance and role enforcement live elsewhere.
package authenticator
