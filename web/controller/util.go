package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/kitchenhub/recipe-service/logger"
	"github.com/kitchenhub/recipe-service/web/entity"
	"github.com/kitchenhub/recipe-service/web/service"

	"github.com/gin-gonic/gin"
)

// errorStatus maps a service error kind onto its HTTP status.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrInactive):
		return http.StatusMethodNotAllowed
	case errors.Is(err, service.ErrStorage):
		return http.StatusInternalServerError
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrNotOwner),
		errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidType),
		errors.Is(err, service.ErrInvalidExtension),
		errors.Is(err, service.ErrInvalidUsername),
		errors.Is(err, service.ErrInvalidPassword):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// jsonError writes the error in the entity.Msg shape with its mapped status.
// Storage details stay in the log.
func jsonError(c *gin.Context, err error) {
	status := errorStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error(c.Request.Method, " ", c.Request.URL.Path, ": ", err)
		msg = "Internal server error"
	}
	pureJsonMsg(c, status, false, msg)
}

// pureJsonMsg sends a pure JSON message response with custom status code.
func pureJsonMsg(c *gin.Context, statusCode int, success bool, msg string) {
	c.AbortWithStatusJSON(statusCode, entity.Msg{
		Success: success,
		Msg:     msg,
	})
}

// paramId parses a numeric path parameter, answering 400 when it is not one.
func paramId(c *gin.Context, name string, what string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "Invalid "+what+" must be a number")
		return 0, false
	}
	return id, true
}
