package handlers

import (
	"net/http"
	"strconv"

	"agencyportal/internal/services"

	"github.com/gin-gonic/gin"
)

type quoteRequest struct {
	CircuitID int64  `json:"circuit_id"`
	RoomType  string `json:"room_type"`
}

// POST /api/bookings/quote prices an option before submitting.
func (h Handler) QuoteBooking(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req quoteRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	quote, err := h.bookingSvc(c).QuoteOption(p, req.CircuitID, req.RoomType)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quote": quote})
}

// POST /api/bookings
func (h Handler) CreateBooking(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req services.CreateBookingInput
	if !BindJSONOrError(c, &req) {
		return
	}
	booking, err := h.bookingSvc(c).CreatePreBooking(p, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": booking})
}

// GET /api/bookings?status=&agency_id=
func (h Handler) ListBookings(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var agencyID int64
	if v := c.Query("agency_id"); v != "" {
		agencyID, _ = strconv.ParseInt(v, 10, 64)
	}
	out, err := h.bookingSvc(c).List(p, agencyID, c.Query("status"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": out})
}

// GET /api/bookings/:id
func (h Handler) GetBooking(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	booking, err := h.bookingSvc(c).GetByID(p, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

type approveRequest struct {
	Notes string `json:"notes"`
}

// POST /api/bookings/:id/approve
func (h Handler) ApproveBooking(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req approveRequest
	if c.Request.ContentLength > 0 && !BindJSONOrError(c, &req) {
		return
	}
	if err := h.bookingSvc(c).Approve(p, id, req.Notes); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "status": "approved"})
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

// POST /api/bookings/:id/reject
func (h Handler) RejectBooking(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req rejectRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := h.bookingSvc(c).Reject(p, id, req.Reason); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "status": "rejected"})
}

// POST /api/bookings/:id/cancel
func (h Handler) CancelBooking(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.bookingSvc(c).Cancel(p, id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "status": "cancelled"})
}

// GET /api/bookings/:id/payment-status
func (h Handler) BookingPaymentStatus(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	status, err := h.paymentSvc(c).StatusFor(p, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// GET /api/bookings/:id/confirmation
func (h Handler) BookingConfirmationPDF(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	data, filename, err := h.docsSvc(c).Confirmation(p, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// GET /api/bookings/:id/invoice
func (h Handler) BookingInvoicePDF(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	data, filename, err := h.docsSvc(c).Invoice(p, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
