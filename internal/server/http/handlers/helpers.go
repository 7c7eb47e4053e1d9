package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/servery/servery/internal/domain/errors"
	"github.com/servery/servery/internal/server/http/middleware"
)

// CurrentUser extracts the authenticated username from context. Empty means
// anonymous.
func CurrentUser(c *gin.Context) string {
	val, ok := c.Get(middleware.UsernameContextKey)
	if !ok {
		return ""
	}
	username, _ := val.(string)
	return username
}

// pathID parses a numeric path parameter. An unparseable id cannot name an
// existing resource, so the response is 404.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return 0, false
	}
	return id, true
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// refusalStatus maps a domain refusal to its HTTP status. Anything outside the
// taxonomy, corrupt stored state included, is an internal error.
func refusalStatus(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound),
		errors.Is(err, domainErrors.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrRestaurantUnavailable),
		errors.Is(err, domainErrors.ErrInvalidTransition),
		errors.Is(err, domainErrors.ErrOrderNotEditable),
		errors.Is(err, domainErrors.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, domainErrors.ErrNotOwner),
		errors.Is(err, domainErrors.ErrNotEmployee):
		return http.StatusForbidden
	case errors.Is(err, domainErrors.ErrIncompleteBilling),
		errors.Is(err, domainErrors.ErrEmptyOrder),
		errors.Is(err, domainErrors.ErrDeletedItem),
		errors.Is(err, domainErrors.ErrCrossRestaurantItem):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondRefusal writes the domain error as a JSON body with the mapped
// status. Internal errors hide the cause from the client and log it instead.
func respondRefusal(c *gin.Context, logger *slog.Logger, err error) {
	status := refusalStatus(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("error", err.Error()),
		)
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// formatCents renders an integer cent amount as a decimal dollar string.
func formatCents(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
