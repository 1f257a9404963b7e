package app

import (
	"errors"
	"net/http"
	"strconv"

	"socialite/internal/service"
	"socialite/internal/util"

	"github.com/gin-gonic/gin"
)

// currentUserID reads the authenticated user set by the auth middleware.
// Returns "" and writes a 401 when the request is not authenticated.
func currentUserID(c *gin.Context) string {
	userID, exists := c.Get("userID")
	if !exists {
		util.Unauthorized(c, "User not authenticated")
		return ""
	}
	return userID.(string)
}

// respondError maps a domain error to its HTTP status. Anything that is
// not a service.Error is a storage or infrastructure fault and stays a 500
// with a generic message.
func respondError(c *gin.Context, err error) {
	var domainErr *service.Error
	if !errors.As(err, &domainErr) {
		util.InternalError(c, "Something went wrong")
		return
	}

	status := http.StatusInternalServerError
	switch domainErr.Kind {
	case service.KindNotFound:
		status = http.StatusNotFound
	case service.KindUnauthorized:
		status = http.StatusForbidden
	case service.KindConflict:
		status = http.StatusConflict
	case service.KindInvalidArgument:
		status = http.StatusBadRequest
	}

	util.ErrorResponse(c, status, domainErr.Message, nil)
}

// pagination reads limit/offset query params with sane caps.
func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
