package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Machine-readable error codes carried in the response envelope.
const (
	CodeValidation      = "validation_error"
	CodeConflict        = "conflict"
	CodeNotFound        = "not_found"
	CodeForbidden       = "forbidden"
	CodeOwnerNotGranted = "owner_not_approved"
	CodeUnauthorized    = "unauthorized"
	CodeUnauthenticated = "unauthenticated"
	CodeInvalidToken    = "invalid_token"
	CodeInternal        = "internal_error"
)

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func OK(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

func Created(c echo.Context, message string, data any) error {
	return c.JSON(http.StatusCreated, Response{Success: true, Message: message, Data: data})
}

func Message(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, Response{Success: true, Message: message})
}

func Fail(c echo.Context, status int, code, message string) error {
	return c.JSON(status, Response{Success: false, Error: code, Message: message})
}

func Internal(c echo.Context, err error) error {
	return Fail(c, http.StatusInternalServerError, CodeInternal, err.Error())
}
