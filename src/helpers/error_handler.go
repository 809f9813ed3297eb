package helpers

import (
	"errors"
	"fmt"
	"sales-report/src/logger"
)

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type SalesReportError struct {
	Message string
	Cause   error
}

func (e *SalesReportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *SalesReportError) Unwrap() error {
	return e.Cause
}

// DataLoadError reports a malformed or missing input table. Row-level defects
// never surface as this error; they are dropped and counted.
type DataLoadError struct {
	SalesReportError
	Table   string
	Dropped int
}

// InconsistentGeoError reports a city recorded with more than one coordinate pair.
type InconsistentGeoError struct {
	SalesReportError
	City        string
	Coordinates [][2]float64
}

// ReferenceNotFoundError reports a policy reference absent from the data.
type ReferenceNotFoundError struct {
	SalesReportError
	Reference string
	Scope     string
}

// ContractViolationError reports an aggregate missing something the output
// contract requires. It indicates a programming defect.
type ContractViolationError struct {
	SalesReportError
	Field string
}

type ConfigurationError struct{ SalesReportError }
type DatabaseError struct{ SalesReportError }
type NetworkError struct{ SalesReportError }

// -----------------------------------------------------------------------------
// Constructors
// -----------------------------------------------------------------------------

func NewDataLoadError(table string, dropped int, message string, cause error) *DataLoadError {
	return &DataLoadError{
		SalesReportError: SalesReportError{Message: fmt.Sprintf("load %s: %s", table, message), Cause: cause},
		Table:            table,
		Dropped:          dropped,
	}
}

func NewInconsistentGeoError(city string, coords [][2]float64) *InconsistentGeoError {
	return &InconsistentGeoError{
		SalesReportError: SalesReportError{Message: fmt.Sprintf("city %q has %d coordinate pairs %v", city, len(coords), coords)},
		City:             city,
		Coordinates:      coords,
	}
}

func NewReferenceNotFoundError(scope, reference string) *ReferenceNotFoundError {
	return &ReferenceNotFoundError{
		SalesReportError: SalesReportError{Message: fmt.Sprintf("reference %q not found in %s", reference, scope)},
		Reference:        reference,
		Scope:            scope,
	}
}

func NewContractViolationError(field, message string) *ContractViolationError {
	return &ContractViolationError{
		SalesReportError: SalesReportError{Message: fmt.Sprintf("contract violation on %s: %s", field, message)},
		Field:            field,
	}
}

func NewConfigurationError(message string, cause error) *ConfigurationError {
	return &ConfigurationError{SalesReportError{Message: message, Cause: cause}}
}

func NewDatabaseError(message string, cause error) *DatabaseError {
	return &DatabaseError{SalesReportError{Message: message, Cause: cause}}
}

func NewNetworkError(message string, cause error) *NetworkError {
	return &NetworkError{SalesReportError{Message: message, Cause: cause}}
}

// -----------------------------------------------------------------------------

// ErrorKind returns a stable label for metrics and logs.
func ErrorKind(err error) string {
	var (
		loadErr     *DataLoadError
		geoErr      *InconsistentGeoError
		refErr      *ReferenceNotFoundError
		contractErr *ContractViolationError
		cfgErr      *ConfigurationError
		dbErr       *DatabaseError
		netErr      *NetworkError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &loadErr):
		return "data_load"
	case errors.As(err, &geoErr):
		return "inconsistent_geo"
	case errors.As(err, &refErr):
		return "reference_not_found"
	case errors.As(err, &contractErr):
		return "contract_violation"
	case errors.As(err, &cfgErr):
		return "configuration"
	case errors.As(err, &dbErr):
		return "database"
	case errors.As(err, &netErr):
		return "network"
	default:
		return "other"
	}
}

// -----------------------------------------------------------------------------
// Error Handler
// -----------------------------------------------------------------------------

// ErrorHandler counts consecutive failed refreshes. Nothing is retried: the
// pipeline is deterministic over a fixed snapshot.
type ErrorHandler struct {
	Logger     *logger.Logger
	ErrorCount int
}

func NewErrorHandler(log *logger.Logger) *ErrorHandler {
	return &ErrorHandler{
		Logger:     log,
		ErrorCount: 0,
	}
}

// -----------------------------------------------------------------------------

func (e *ErrorHandler) ResetErrorCount() {
	e.ErrorCount = 0
}

// -----------------------------------------------------------------------------

func (e *ErrorHandler) Handle(err error, context string) {
	if err == nil {
		return
	}
	e.ErrorCount++

	var contractErr *ContractViolationError
	if errors.As(err, &contractErr) {
		e.Logger.Error("Programming defect in %s (%d consecutive failures): %v", context, e.ErrorCount, err)
		return
	}
	e.Logger.Error("Error in %s [%s] (%d consecutive failures): %v", context, ErrorKind(err), e.ErrorCount, err)
}
