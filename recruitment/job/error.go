package job

import (
	"net/http"

	"github.com/Abraxas-365/jobboard/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("JOB")

// Error codes
var (
	CodeJobNotFound        = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Job not found")
	CodeCompanyReference   = ErrRegistry.Register("COMPANY_REFERENCE", errx.TypeConflict, http.StatusConflict, "The referenced company does not exist")
	CodeConstraintViolated = ErrRegistry.Register("CONSTRAINT_VIOLATED", errx.TypeConflict, http.StatusConflict, "Job violates a data constraint")
	CodeInvalidEquity      = ErrRegistry.Register("INVALID_EQUITY", errx.TypeValidation, http.StatusBadRequest, "Equity must be between 0 and 1")
	CodeInvalidPagination  = ErrRegistry.Register("INVALID_PAGINATION", errx.TypeValidation, http.StatusBadRequest, "Offset and count must be non-negative")
	CodeInvalidID          = ErrRegistry.Register("INVALID_ID", errx.TypeValidation, http.StatusBadRequest, "Invalid job id")
	CodeValidationFailed   = ErrRegistry.Register("VALIDATION_FAILED", errx.TypeValidation, http.StatusBadRequest, "Request validation failed")
)

// Helper functions
func ErrJobNotFound() *errx.Error {
	return ErrRegistry.New(CodeJobNotFound)
}

func ErrCompanyReference() *errx.Error {
	return ErrRegistry.New(CodeCompanyReference)
}

func ErrConstraintViolated() *errx.Error {
	return ErrRegistry.New(CodeConstraintViolated)
}

func ErrInvalidEquity() *errx.Error {
	return ErrRegistry.New(CodeInvalidEquity)
}

func ErrInvalidPagination() *errx.Error {
	return ErrRegistry.New(CodeInvalidPagination)
}

func ErrInvalidID() *errx.Error {
	return ErrRegistry.New(CodeInvalidID)
}

func ErrValidationFailed() *errx.Error {
	return ErrRegistry.New(CodeValidationFailed)
}
