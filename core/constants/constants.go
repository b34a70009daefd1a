package constants

import "time"

// Context keys
const (
	ContextRequestID = "request_id"
)

// Headers
const (
	HeaderRequestID = "X-Request-ID"
)

// Ledger defaults
const (
	DefaultLedgerFile  = "reservations.csv"
	DefaultLockTimeout = 5 * time.Second
	DefaultCallTimeout = 10 * time.Second
)

// DateLayout is the calendar-date format used everywhere: in the API,
// in the ledger file, and for availability comparisons.
const DateLayout = "2006-01-02"

// Background task types
const (
	TaskLedgerAudit = "ledger:audit"
)

// Server defaults
const (
	DefaultServerHost      = "0.0.0.0"
	DefaultServerPort      = 7070
	ServerShutdownTimeout  = 10 * time.Second
	DefaultAuditSchedule   = "@every 6h"
	DefaultWorkerQueueName = "maintenance"
)
