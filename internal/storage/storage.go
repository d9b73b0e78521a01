// Package storage implements the PostgreSQL persistence layer.
package storage

import "errors"

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("storage: not found")

// Counter names the aggregate counters on the singleton stats row.
type Counter string

const (
	CounterUsers         Counter = "total_users"
	CounterRegistrations Counter = "total_registrations"
	CounterPayments      Counter = "total_payments"
	CounterVisits        Counter = "total_visits"
)
