package store

// HealthStore abstracts the storage health check
type HealthStore interface {
	// Ping verifies database connectivity
	Ping() error
}
