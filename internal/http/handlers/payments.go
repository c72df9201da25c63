package handlers

import (
	"net/http"
	"strconv"

	"agencyportal/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/payments?booking_id=
func (h Handler) ListPayments(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	bookingID, err := strconv.ParseInt(c.Query("booking_id"), 10, 64)
	if err != nil || bookingID <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_id", "booking_id query parameter is required")
		return
	}
	payments, err := h.paymentSvc(c).ListForBooking(p, bookingID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

// POST /api/payments
func (h Handler) CreatePayment(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req services.RecordPaymentInput
	if !BindJSONOrError(c, &req) {
		return
	}
	payment, err := h.paymentSvc(c).Record(p, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"payment": payment})
}

// DELETE /api/payments/:id
func (h Handler) DeletePayment(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.paymentSvc(c).Delete(p, id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
