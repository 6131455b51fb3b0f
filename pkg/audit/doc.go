// Package audit records privileged mutations as append-only audit entries.
//
// Events are written to an RFC5424-style log line and, when a database is
// configured, persisted to the audit_entries table. Persistence is
// best-effort: a failed append is logged but never blocks or rolls back
// the mutation it documents.
package audit
