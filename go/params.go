package posserver

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	"github.com/oapi-codegen/runtime/types"
)

func bindIDParam(c *gin.Context, name string) (int64, error) {
	var id int64
	if err := runtime.BindStyledParameterWithLocation("simple", false, name, runtime.ParamLocationPath, c.Param(name), &id); err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid format for parameter %s: must be a positive integer", name)
	}
	return id, nil
}

func bindSessionID(c *gin.Context) (string, error) {
	raw := c.Param("sessionId")
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid format for parameter sessionId: %w", err)
	}
	return id.String(), nil
}

func bindOptionalInt(c *gin.Context, name string) (*int, error) {
	var value *int
	if err := runtime.BindQueryParameter("form", true, false, name, c.Request.URL.Query(), &value); err != nil {
		return nil, err
	}
	return value, nil
}

func bindOptionalBool(c *gin.Context, name string) (bool, error) {
	var value *bool
	if err := runtime.BindQueryParameter("form", true, false, name, c.Request.URL.Query(), &value); err != nil {
		return false, err
	}
	return value != nil && *value, nil
}

// bindOptionalDate reads a YYYY-MM-DD query parameter as midnight UTC.
func bindOptionalDate(c *gin.Context, name string) (*time.Time, error) {
	var value *types.Date
	if err := runtime.BindQueryParameter("form", true, false, name, c.Request.URL.Query(), &value); err != nil {
		return nil, err
	}
	if value == nil {
		return nil, nil
	}
	t := time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.UTC)
	return &t, nil
}
