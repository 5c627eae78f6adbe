package errors

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the media type for problem documents.
const ContentTypeProblemJSON = "application/problem+json"

// ErrorMapper translates an application error into a problem document.
// It reports false when the error is not one it knows about.
type ErrorMapper func(err error) (ProblemDetail, bool)

// Responder writes problem documents, consulting its mappers in order.
type Responder struct {
	// BaseURI is prepended to relative problem type URIs.
	BaseURI string
	logger  *slog.Logger
	mappers []ErrorMapper
}

// NewResponder builds a responder with the given mapper chain.
func NewResponder(baseURI string, mappers ...ErrorMapper) *Responder {
	return &Responder{BaseURI: baseURI, logger: slog.Default(), mappers: mappers}
}

// WithLogger sets the logger used for unmapped errors.
func (r *Responder) WithLogger(logger *slog.Logger) *Responder {
	if logger != nil {
		r.logger = logger
	}
	return r
}

// AddMapper appends a mapper to the chain.
func (r *Responder) AddMapper(mapper ErrorMapper) {
	r.mappers = append(r.mappers, mapper)
}

// Respond writes the problem with the problem+json content type.
func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	if r.BaseURI != "" && len(problem.Type) > 0 && problem.Type[0] == '/' {
		problem.Type = r.BaseURI + problem.Type
	}
	if problem.Instance == "" {
		problem.Instance = c.Request.URL.Path
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.AbortWithStatusJSON(problem.Status, problem)
}

// RespondError maps err through the chain. A ProblemDetail passes through
// untouched; anything unmapped becomes a 500 without leaking internals.
func (r *Responder) RespondError(c *gin.Context, err error) {
	var problem ProblemDetail
	if errors.As(err, &problem) {
		r.Respond(c, problem)
		return
	}
	for _, mapper := range r.mappers {
		if mapped, ok := mapper(err); ok {
			r.Respond(c, mapped)
			return
		}
	}
	r.logger.ErrorContext(c.Request.Context(), "unmapped request error",
		slog.String("path", c.Request.URL.Path),
		slog.String("error", err.Error()),
	)
	r.Respond(c, ErrInternal.WithDetail("an unexpected error occurred"))
}

// BadRequest sends a 400 problem response.
func (r *Responder) BadRequest(c *gin.Context, detail string) {
	r.Respond(c, ErrBadRequest.WithDetail(detail))
}

// NotFound sends a 404 problem response.
func (r *Responder) NotFound(c *gin.Context, resourceType string, identifier any) {
	r.Respond(c, NewNotFoundProblem(resourceType, identifier))
}

// HTTPStatusFromError extracts the HTTP status carried by a problem error.
func HTTPStatusFromError(err error) int {
	var problem ProblemDetail
	if errors.As(err, &problem) {
		return problem.Status
	}
	return http.StatusInternalServerError
}
