// Package store defines the storage interfaces consumed by the server
// and services. Implementations live in the gorm subpackage.
package store
