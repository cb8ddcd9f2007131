package models

import "time"

// ApiResponse is the envelope every endpoint responds with.
type ApiResponse[T any] struct {
	Success   bool      `json:"success"`
	Message   *string   `json:"message"`
	ErrorCode *string   `json:"errorCode"`
	Data      T         `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

func NewSuccessResponse[T any](data T) ApiResponse[T] {
	return ApiResponse[T]{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
}

func NewErrorResponse(errorCode, message string) ApiResponse[any] {
	return ApiResponse[any]{
		Success:   false,
		Message:   &message,
		ErrorCode: &errorCode,
		Timestamp: time.Now().UTC(),
	}
}

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPagination computes the page count for total items.
func NewPagination(page, pageSize, total int) Pagination {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return Pagination{Page: page, PageSize: pageSize, Total: total, TotalPages: totalPages}
}

type ListResponse[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}
