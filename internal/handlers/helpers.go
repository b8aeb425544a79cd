package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "tresoria/internal/errors"
	"tresoria/internal/logger"
	"tresoria/internal/models"
)

// respondWithError writes a consistent JSON error response. AppErrors carrying
// StatusOK are the contract's validation errors and are delivered as a bare
// {error} string in a 200 body; other AppErrors use their status code. Anything
// else is logged and returned as a generic internal error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		if appErr.StatusCode == http.StatusOK {
			c.JSON(http.StatusOK, gin.H{"error": appErr.Message})
			return
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}

// parseFlexibleDate accepts the ISO calendar form used by the screen as well
// as full RFC 3339 timestamps.
func parseFlexibleDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD", s)
}

// categoryResponse mirrors the contract's category shape.
type categoryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

func newCategoryResponse(category *models.Category) categoryResponse {
	return categoryResponse{
		ID:    category.ID,
		Name:  category.Name,
		Color: category.Color,
	}
}
