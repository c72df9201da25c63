package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/admin/reports/overview
func (h Handler) ReportsOverview(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	overview, err := h.reportsSvc().Overview(p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}
