package dto

import "github.com/invoiceapp/backend/internal/domain/shared"

// Response is the standard API envelope. List responses carry Meta with
// pagination and filter counters; single resources carry Data alone.
type Response struct {
	Data  interface{}      `json:"data,omitempty"`
	Meta  *shared.PageMeta `json:"meta,omitempty"`
	Error *ErrorInfo       `json:"error,omitempty"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data interface{}) Response {
	return Response{Data: data}
}

// NewSuccessResponseWithMeta creates a success response with pagination meta
func NewSuccessResponseWithMeta(data interface{}, meta shared.PageMeta) Response {
	return Response{Data: data, Meta: &meta}
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) Response {
	return Response{
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	}
}

// IDRequest represents a request with an ID path parameter
type IDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}
