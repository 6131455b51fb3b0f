// Package gorm implements the store interfaces using GORM over Postgres.
package gorm
