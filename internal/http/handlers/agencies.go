package handlers

import (
	"net/http"

	"agencyportal/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// GET /api/admin/agencies?status=all|pending|active|suspended
func (h Handler) ListAgencies(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	out, err := h.agencySvc(c).List(p, c.Query("status"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"agencies": out})
}

type agencyIDRequest struct {
	AgencyID int64 `json:"agencyId"`
}

// POST /api/admin/agencies/activate {agencyId}
func (h Handler) ActivateAgency(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req agencyIDRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	agency, err := h.agencySvc(c).Activate(p, req.AgencyID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"agency": agency})
}

// POST /api/admin/agencies/suspend {agencyId}
func (h Handler) SuspendAgency(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req agencyIDRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	agency, err := h.agencySvc(c).Suspend(p, req.AgencyID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"agency": agency})
}

type agencyUpdateRequest struct {
	AgencyID int64 `json:"agencyId"`
	models.AgencyUpdate
}

// PATCH /api/admin/agencies/update {agencyId, commission_rate?, contact_person?, phone?, ...}
func (h Handler) UpdateAgency(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req agencyUpdateRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	agency, err := h.agencySvc(c).Update(p, req.AgencyID, req.AgencyUpdate)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"agency": agency})
}

// GET /api/agency/profile returns the caller's own agency.
func (h Handler) AgencyProfile(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	agency, err := h.agencySvc(c).GetProfile(p, 0)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"agency": agency})
}

// PATCH /api/agency/profile is the self-service update of non-financial fields.
// The service drops commission/notes for agency callers regardless of the
// payload.
func (h Handler) UpdateAgencyProfile(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req models.AgencyUpdate
	if !BindJSONOrError(c, &req) {
		return
	}
	agency, err := h.agencySvc(c).Update(p, 0, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"agency": agency})
}
