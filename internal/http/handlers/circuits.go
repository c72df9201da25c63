package handlers

import (
	"net/http"

	"agencyportal/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// GET /api/circuits?continent=
func (h Handler) ListCircuits(c *gin.Context) {
	out, err := h.catalogSvc(c).ListCircuits(c.Query("continent"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"circuits": out})
}

// GET /api/circuits/:slug
func (h Handler) GetCircuit(c *gin.Context) {
	circuit, departures, err := h.catalogSvc(c).GetCircuitBySlug(c.Param("slug"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"circuit":    circuit,
		"departures": departures,
	})
}

// POST /api/admin/circuits
func (h Handler) CreateCircuit(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req models.Circuit
	if !BindJSONOrError(c, &req) {
		return
	}
	circuit, err := h.catalogSvc(c).CreateCircuit(p, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"circuit": circuit})
}

// PUT /api/admin/circuits/:id
func (h Handler) UpdateCircuit(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.Circuit
	if !BindJSONOrError(c, &req) {
		return
	}
	req.ID = id
	circuit, err := h.catalogSvc(c).UpdateCircuit(p, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"circuit": circuit})
}

// DELETE /api/admin/circuits/:id
func (h Handler) DeleteCircuit(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.catalogSvc(c).DeleteCircuit(p, id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// POST /api/admin/circuits/:id/departures
func (h Handler) CreateDeparture(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	circuitID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.Departure
	if !BindJSONOrError(c, &req) {
		return
	}
	req.CircuitID = circuitID
	departure, err := h.catalogSvc(c).CreateDeparture(p, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"departure": departure})
}

// PUT /api/admin/departures/:id
func (h Handler) UpdateDeparture(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.Departure
	if !BindJSONOrError(c, &req) {
		return
	}
	req.ID = id
	departure, err := h.catalogSvc(c).UpdateDeparture(p, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"departure": departure})
}

// DELETE /api/admin/departures/:id
func (h Handler) DeleteDeparture(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.catalogSvc(c).DeleteDeparture(p, id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
