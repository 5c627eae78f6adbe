package posserver

import (
	"errors"
	"log/slog"

	catalogapp "github.com/Apurer/autoparts-pos/internal/domains/catalog/application"
	catalogports "github.com/Apurer/autoparts-pos/internal/domains/catalog/ports"
	customerapp "github.com/Apurer/autoparts-pos/internal/domains/customers/application"
	customerdomain "github.com/Apurer/autoparts-pos/internal/domains/customers/domain"
	customerports "github.com/Apurer/autoparts-pos/internal/domains/customers/ports"
	salesdomain "github.com/Apurer/autoparts-pos/internal/domains/sales/domain"
	salesports "github.com/Apurer/autoparts-pos/internal/domains/sales/ports"
	apierrors "github.com/Apurer/autoparts-pos/internal/shared/errors"
)

// NewResponder returns a problem responder that knows the errors of every
// bounded context served over HTTP.
func NewResponder(baseURI string, logger *slog.Logger) *apierrors.Responder {
	return apierrors.NewResponder(baseURI, mapSalesError, mapCatalogError, mapCustomerError).WithLogger(logger)
}

func mapCatalogError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, catalogports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()).WithExtension("resourceType", "part"), true
	case errors.Is(err, catalogports.ErrDuplicate):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, catalogapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapCustomerError(err error) (apierrors.ProblemDetail, bool) {
	var conflict *customerdomain.ReferentialConflictError
	switch {
	case errors.As(err, &conflict):
		problem := apierrors.ErrReferenced.WithDetail(conflict.Error())
		if conflict.References > 0 {
			problem = problem.WithExtension("references", conflict.References)
		}
		return problem, true
	case errors.Is(err, customerports.ErrInUse):
		return apierrors.ErrReferenced.WithDetail(err.Error()), true
	case errors.Is(err, customerports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()).WithExtension("resourceType", "customer"), true
	case errors.Is(err, customerports.ErrDuplicate):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, customerapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapSalesError(err error) (apierrors.ProblemDetail, bool) {
	var (
		validation *salesdomain.ValidationError
		shortage   *salesdomain.InsufficientStockError
		conflict   *salesdomain.StockConflictError
	)
	switch {
	case errors.As(err, &validation):
		return apierrors.NewValidationProblem(map[string]string{validation.Field: validation.Reason}).
			WithDetail(validation.Error()), true
	case errors.As(err, &shortage):
		return apierrors.ErrInsufficientStock.WithDetail(shortage.Error()).
			WithExtension("partId", shortage.PartID).
			WithExtension("requested", shortage.Requested).
			WithExtension("available", shortage.Available), true
	case errors.As(err, &conflict):
		return apierrors.ErrStockConflict.WithDetail(conflict.Error()).
			WithExtension("conflicts", conflict.Conflicts), true
	case errors.Is(err, salesdomain.ErrEmptyCart):
		return apierrors.ErrEmptyCart.WithDetail(err.Error()), true
	case errors.Is(err, salesports.ErrSessionNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()).WithExtension("resourceType", "session"), true
	case errors.Is(err, salesdomain.ErrPersistence):
		return apierrors.ErrServiceUnavailable.WithDetail("the sale could not be recorded, nothing was charged"), true
	}
	return apierrors.ProblemDetail{}, false
}
