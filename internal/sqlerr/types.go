// Package sqlerr handles database driver errors.
//
// It parses SQLSTATE codes from the Postgres driver and converts them
// into user-friendly application errors (e.g. a unique violation
// becomes a "already exists" bad request).
package sqlerr

import "fmt"

// Code classifies a database error into a category the application
// can switch on without caring about raw SQLSTATE values.
type Code int

const (
	// Other covers every error this package does not classify.
	Other Code = iota
	UniqueViolation
	ForeignKeyViolation
	NotNullViolation
	CheckViolation
	InvalidTextRepresentation
	ConnectionFailure
)

// Severity mirrors the Postgres error severity field.
type Severity int

const (
	SeverityUnknown Severity = iota
	SeverityError
	SeverityFatal
	SeverityPanic
	SeverityWarning
)

// MapCode maps a SQLSTATE string (pgconn.PgError.Code) to a Code.
func MapCode(sqlstate string) Code {
	switch sqlstate {
	case "23505":
		return UniqueViolation
	case "23503":
		return ForeignKeyViolation
	case "23502":
		return NotNullViolation
	case "23514":
		return CheckViolation
	case "22P02":
		return InvalidTextRepresentation
	case "08000", "08003", "08006":
		return ConnectionFailure
	default:
		return Other
	}
}

// MapSeverity maps the Postgres severity string to a Severity.
func MapSeverity(severity string) Severity {
	switch severity {
	case "ERROR":
		return SeverityError
	case "FATAL":
		return SeverityFatal
	case "PANIC":
		return SeverityPanic
	case "WARNING":
		return SeverityWarning
	default:
		return SeverityUnknown
	}
}

// Error is the normalized database error. It keeps the original
// driver error for unwrapping plus the schema metadata needed to
// build client-facing messages.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string

	driverErr error
}

func (e *Error) Error() string {
	if e.TableName != "" {
		return fmt.Sprintf("sqlerr: table:%s: %s", e.TableName, e.Message)
	}
	return "sqlerr: " + e.Message
}

// Unwrap exposes the original driver error to errors.Is/As.
func (e *Error) Unwrap() error {
	return e.driverErr
}
