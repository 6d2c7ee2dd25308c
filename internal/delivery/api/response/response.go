// Package response renders the JSON bodies the API returns.
package response

import (
	"net/http"

	deliverycontext "noteful/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Name    string    `json:"name"`              // Error category, e.g. "AuthenticationError"
	Message string    `json:"message"`           // User-friendly error message
	Code    string    `json:"code"`              // Machine-readable error code, e.g. "USERNAME_TAKEN"
	Details any       `json:"details,omitempty"` // Additional error context (only for 4xx errors other than 401/403)
	Meta    *MetaInfo `json:"meta"`
}

// MetaInfo represents response metadata
type MetaInfo struct {
	RequestID string `json:"request_id"` // Request tracking ID
}

// JSON writes a successful body as-is.
func JSON(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, data)
}

// Created writes 201 with a Location header.
func Created(c echo.Context, location string, data any) error {
	c.Response().Header().Set(echo.HeaderLocation, location)

	return c.JSON(http.StatusCreated, data)
}

// Error returns an error response
func Error(c echo.Context, statusCode int, name, errorCode, message string, details any) error {
	// Details should not be included for 5xx errors or authentication/authorization errors
	if statusCode >= http.StatusInternalServerError || statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden {
		details = nil
	}
	if s, ok := details.(string); ok && s == "" {
		details = nil
	}

	return c.JSON(statusCode, ErrorResponse{
		Name:    name,
		Message: message,
		Code:    errorCode,
		Details: details,
		Meta: &MetaInfo{
			RequestID: deliverycontext.GetRequestID(c),
		},
	})
}
