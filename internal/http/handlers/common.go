package handlers

import (
	"net/http"
	"strconv"

	intconfig "agencyportal/internal/config"
	"agencyportal/internal/domain"
	"agencyportal/internal/http/middleware"
	"agencyportal/internal/services"

	"github.com/gin-gonic/gin"
)

// Handler wires env-derived settings into the service layer. Services are
// built per request so each carries the request id for its log lines.
type Handler struct {
	Env intconfig.Env
}

func New(env intconfig.Env) Handler {
	return Handler{Env: env}
}

func (h Handler) bookingSvc(c *gin.Context) services.BookingService {
	return services.BookingService{
		DefaultCommissionRate: h.Env.CommissionRate,
		RequestID:             middleware.GetRequestID(c),
	}
}

func (h Handler) paymentSvc(c *gin.Context) services.PaymentService {
	return services.PaymentService{
		BookingSvc:   h.bookingSvc(c),
		DeadlineDays: h.Env.PaymentDeadlineDays,
		RequestID:    middleware.GetRequestID(c),
	}
}

func (h Handler) agencySvc(c *gin.Context) services.AgencyService {
	return services.AgencyService{RequestID: middleware.GetRequestID(c)}
}

func (h Handler) catalogSvc(c *gin.Context) services.CatalogService {
	return services.CatalogService{RequestID: middleware.GetRequestID(c)}
}

func (h Handler) documentSvc(c *gin.Context) services.DocumentService {
	return services.DocumentService{
		BookingSvc: h.bookingSvc(c),
		UploadDir:  h.Env.UploadDir,
		RequestID:  middleware.GetRequestID(c),
	}
}

func (h Handler) docsSvc(c *gin.Context) services.DocsService {
	return services.DocsService{
		BookingSvc:   h.bookingSvc(c),
		DeadlineDays: h.Env.PaymentDeadlineDays,
		RequestID:    middleware.GetRequestID(c),
	}
}

func (h Handler) reportsSvc() services.ReportsService {
	return services.ReportsService{}
}

// principal pulls the authenticated identity; routes behind Auth always
// have one, this guards direct handler reuse.
func principal(c *gin.Context) (domain.Principal, bool) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthenticated", "authentication required")
		return domain.Principal{}, false
	}
	return p, true
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_id", "invalid "+name)
		return 0, false
	}
	return id, true
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		respondError(c, http.StatusBadRequest, "invalid_body", "empty body")
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_json", "invalid payload")
		return false
	}
	return true
}
