package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"wenlock-health-server/internal/utils"
)

// parseIDParam reads a numeric path parameter. On failure it writes a 400
// response and returns false.
func parseIDParam(c *gin.Context, name, label string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.BadRequest(c, "Invalid "+label+" ID format")
		return 0, false
	}
	return uint(id), true
}
