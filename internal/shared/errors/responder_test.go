package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var errOutOfParts = stderrors.New("out of parts")

func serve(t *testing.T, r *Responder, err error) (*httptest.ResponseRecorder, ProblemDetail) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/v1/thing", func(c *gin.Context) { r.RespondError(c, err) })

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/thing", nil))

	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return rec, problem
}

func TestRespondErrorUsesMapperChain(t *testing.T) {
	r := NewResponder("https://pos.example",
		func(err error) (ProblemDetail, bool) { return ProblemDetail{}, false },
		func(err error) (ProblemDetail, bool) {
			if stderrors.Is(err, errOutOfParts) {
				return ErrStockConflict.WithDetail(err.Error()).WithExtension("partId", 7), true
			}
			return ProblemDetail{}, false
		},
	)

	rec, problem := serve(t, r, errOutOfParts)

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	require.Equal(t, "https://pos.example"+TypeStockConflict, problem.Type)
	require.Equal(t, "/v1/thing", problem.Instance)
	require.EqualValues(t, 7, problem.Extensions["partId"])
}

func TestRespondErrorHidesUnmappedErrors(t *testing.T) {
	rec, problem := serve(t, NewResponder(""), stderrors.New("dial tcp 10.0.0.1:5432: refused"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, TypeInternal, problem.Type)
	require.NotContains(t, problem.Detail, "10.0.0.1")
}

func TestWithExtensionDoesNotMutateTemplate(t *testing.T) {
	_ = ErrConflict.WithExtension("a", 1)
	require.Nil(t, ErrConflict.Extensions)
}
