// Package errors renders application failures as RFC 7807 problem documents.
package errors

import (
	"fmt"
	"net/http"
)

// ProblemDetail is an RFC 7807 problem document.
// See: https://www.rfc-editor.org/rfc/rfc7807
type ProblemDetail struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	// Extensions carries problem-specific members such as stock conflicts.
	Extensions map[string]any `json:"extensions,omitempty"`
}

// Error implements the error interface.
func (p ProblemDetail) Error() string {
	if p.Detail != "" {
		return fmt.Sprintf("%s: %s", p.Title, p.Detail)
	}
	return p.Title
}

// WithDetail returns a copy with the given detail message.
func (p ProblemDetail) WithDetail(detail string) ProblemDetail {
	p.Detail = detail
	return p
}

// WithInstance returns a copy with the given instance URI.
func (p ProblemDetail) WithInstance(instance string) ProblemDetail {
	p.Instance = instance
	return p
}

// WithExtension returns a copy carrying an additional extension member.
// The extension map is copied so templates are never mutated.
func (p ProblemDetail) WithExtension(key string, value any) ProblemDetail {
	ext := make(map[string]any, len(p.Extensions)+1)
	for k, v := range p.Extensions {
		ext[k] = v
	}
	ext[key] = value
	p.Extensions = ext
	return p
}

// Problem type URI references.
const (
	TypeValidation         = "/problems/validation-error"
	TypeBadRequest         = "/problems/bad-request"
	TypeNotFound           = "/problems/not-found"
	TypeConflict           = "/problems/conflict"
	TypeInsufficientStock  = "/problems/insufficient-stock"
	TypeStockConflict      = "/problems/stock-conflict"
	TypeEmptyCart          = "/problems/empty-cart"
	TypeReferenced         = "/problems/referential-conflict"
	TypeServiceUnavailable = "/problems/service-unavailable"
	TypeInternal           = "/problems/internal-error"
)

var (
	ErrValidation = ProblemDetail{
		Type:   TypeValidation,
		Title:  "Validation Error",
		Status: http.StatusBadRequest,
	}

	ErrBadRequest = ProblemDetail{
		Type:   TypeBadRequest,
		Title:  "Bad Request",
		Status: http.StatusBadRequest,
	}

	ErrNotFound = ProblemDetail{
		Type:   TypeNotFound,
		Title:  "Resource Not Found",
		Status: http.StatusNotFound,
	}

	ErrConflict = ProblemDetail{
		Type:   TypeConflict,
		Title:  "Conflict",
		Status: http.StatusConflict,
	}

	// ErrInsufficientStock is returned when a line asks for more than is on the shelf.
	ErrInsufficientStock = ProblemDetail{
		Type:   TypeInsufficientStock,
		Title:  "Insufficient Stock",
		Status: http.StatusConflict,
	}

	// ErrStockConflict is returned when stock moved between cart building and checkout.
	ErrStockConflict = ProblemDetail{
		Type:   TypeStockConflict,
		Title:  "Stock Conflict",
		Status: http.StatusConflict,
	}

	ErrEmptyCart = ProblemDetail{
		Type:   TypeEmptyCart,
		Title:  "Cart Is Empty",
		Status: http.StatusUnprocessableEntity,
	}

	ErrReferenced = ProblemDetail{
		Type:   TypeReferenced,
		Title:  "Resource Still Referenced",
		Status: http.StatusConflict,
	}

	// ErrServiceUnavailable covers storage failures; the request may be retried.
	ErrServiceUnavailable = ProblemDetail{
		Type:   TypeServiceUnavailable,
		Title:  "Service Unavailable",
		Status: http.StatusServiceUnavailable,
	}

	ErrInternal = ProblemDetail{
		Type:   TypeInternal,
		Title:  "Internal Server Error",
		Status: http.StatusInternalServerError,
	}
)

// NewValidationProblem creates a validation problem with field-level details.
func NewValidationProblem(fieldErrors map[string]string) ProblemDetail {
	return ErrValidation.WithExtension("fields", fieldErrors)
}

// NewNotFoundProblem creates a not found problem for a specific resource.
func NewNotFoundProblem(resourceType string, identifier any) ProblemDetail {
	return ErrNotFound.
		WithDetail(fmt.Sprintf("%s '%v' not found", resourceType, identifier)).
		WithExtension("resourceType", resourceType).
		WithExtension("identifier", identifier)
}
