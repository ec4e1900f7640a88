package controller

import (
	"errors"
	"net/http"
	"strconv"

	"jobboard/logger"
	"jobboard/util/common"
	"jobboard/web/entity"

	"github.com/gin-gonic/gin"
)

// jsonError converts a business error into the matching status code
// and structured body. Unrecognized errors become 500; nothing else
// escapes the boundary.
func jsonError(c *gin.Context, err error) {
	if v, ok := common.AsValidationError(err); ok {
		c.JSON(http.StatusBadRequest, entity.FieldErrors{Errors: v.Fields})
		return
	}
	switch {
	case errors.Is(err, common.ErrDuplicateApplication),
		errors.Is(err, common.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, entity.APIError{Error: err.Error()})
	case errors.Is(err, common.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, entity.APIError{Error: err.Error()})
	case errors.Is(err, common.ErrForbidden):
		c.JSON(http.StatusForbidden, entity.APIError{Error: "You do not have permission to perform this action."})
	case errors.Is(err, common.ErrNotFound):
		c.JSON(http.StatusNotFound, entity.APIError{Error: "Not found."})
	default:
		logger.Error("unexpected error:", err)
		c.JSON(http.StatusInternalServerError, entity.APIError{Error: "Internal server error."})
	}
}

// badRequest reports a malformed request body.
func badRequest(c *gin.Context, err error) {
	logger.Debug("bad request body:", err)
	c.JSON(http.StatusBadRequest, entity.APIError{Error: "Invalid request body."})
}

// boolQuery parses an optional boolean query parameter.
func boolQuery(c *gin.Context, name string) *bool {
	value := c.Query(name)
	if value == "" {
		return nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return nil
	}
	return &parsed
}

// intQuery parses an optional integer query parameter.
func intQuery(c *gin.Context, name string) *int {
	value := c.Query(name)
	if value == "" {
		return nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &parsed
}
