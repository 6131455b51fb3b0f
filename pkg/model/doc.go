// Package model contains the database models for the admissions service.
package model
