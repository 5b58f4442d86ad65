package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jwhan/playgrid-backend/internal/errors"
)

// idParam parses a numeric path parameter. On failure it writes the 400
// response itself and returns false.
func idParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		errors.RespondWithError(c, http.StatusBadRequest, errors.ValidationInvalidID, "invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}

// pagination reads offset/limit query parameters with a default page size.
func pagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return offset, limit
}
