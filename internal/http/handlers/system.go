package handlers

import (
	"net/http"

	intconfig "agencyportal/internal/config"
	intdb "agencyportal/internal/db"

	"github.com/gin-gonic/gin"
)

// GET /api/health
func (h Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GET /api/db-check
func (h Handler) DBCheck(c *gin.Context) {
	if err := intconfig.EnsureDB(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "error": err.Error()})
		return
	}
	tables := gin.H{}
	for _, t := range []string{"users", "agencies", "circuits", "departures", "pre_bookings", "payments", "documents"} {
		tables[t] = intdb.HasTable(intconfig.DB, t)
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "tables": tables})
}
