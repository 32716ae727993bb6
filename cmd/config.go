package cmd

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// Config carries everything the composition root needs to wire the
// application: database access, the HTTP listener, pricing parameters, cash
// handling rules, and background job cadence.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	BaseFee   kernel.Money
	PerKmRate kernel.Money

	CashDenominations    []int64
	CashNoteCeilingCents int64

	DispatchRetryCron string
	OfferTimeout      time.Duration
}
