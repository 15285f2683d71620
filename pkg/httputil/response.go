package httputil

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/medicare-platform/admin-api/pkg/errors"
)

// Response wraps all API responses
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Pagination represents pagination metadata
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// PaginatedResponse wraps paginated list responses
type PaginatedResponse struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// RespondWithSuccess sends a 200 response with data
func RespondWithSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// RespondWithMessage sends a 200 response with a message and data
func RespondWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// RespondCreated sends a 201 response with a message and data
func RespondCreated(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// RespondWithPagination sends a paginated list response
func RespondWithPagination(c *gin.Context, data interface{}, page, limit, total int) {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	c.JSON(http.StatusOK, PaginatedResponse{
		Success: true,
		Data:    data,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	})
}

// RespondWithError sends an error envelope. AppErrors carry their own
// HTTP status; anything else is a 500 with the raw error surfaced,
// which is acceptable for an admin-only internal tool.
func RespondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		resp := Response{
			Success: false,
			Message: appErr.Message,
		}
		if appErr.Err != nil {
			resp.Error = appErr.Err.Error()
		}
		c.JSON(appErr.StatusCode(), resp)
		return
	}

	c.JSON(http.StatusInternalServerError, Response{
		Success: false,
		Message: "internal server error",
		Error:   err.Error(),
	})
}
