package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/Gunvolt24/purchase-order/internal/domain"
	"github.com/Gunvolt24/purchase-order/internal/ports"
	"github.com/Gunvolt24/purchase-order/pkg/httpx"
	"github.com/Gunvolt24/purchase-order/pkg/validate"
	"github.com/gin-gonic/gin"
)

const basePath = "/api/purchaseorder"

type Handler struct {
	service ports.PurchaseOrderService
	log     ports.Logger
	timeout time.Duration    // таймаут чтения; при 0 без таймаута
	now     func() time.Time // часы для /api/health
}

func NewHandler(service ports.PurchaseOrderService, log ports.Logger, timeout time.Duration) *Handler {
	return &Handler{service: service, log: log, timeout: timeout, now: time.Now}
}

// getPurchaseOrder: GET /api/purchaseorder/:poId
func (h *Handler) getPurchaseOrder(c *gin.Context) {
	poID, ok := httpx.ParseIntParam(c, "poId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid purchase order id"})
		return
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	h.writeOutcome(c, h.service.GetByID(ctx, poID))
}

// submitPurchaseOrder: POST /api/purchaseorder
func (h *Handler) submitPurchaseOrder(c *gin.Context) {
	var payload validate.OrderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.log.Warnf(c.Request.Context(), "bad purchase order body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	// Отключение клиента не прерывает конвейер: заказ записывается до конца.
	ctx := context.WithoutCancel(c.Request.Context())

	h.writeOutcome(c, h.service.Process(ctx, payload.ToDomain()))
}

// health: GET /api/health
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, "Healthy @"+h.now().Format(time.RFC3339))
}

// writeOutcome: отображение результата прикладного слоя на HTTP.
func (h *Handler) writeOutcome(c *gin.Context, out domain.Outcome) {
	switch out.Kind {
	case domain.OutcomeCreated:
		c.Header("Location", basePath+"/"+strconv.Itoa(out.Summary.PoID))
		c.JSON(http.StatusCreated, out.Summary)
	case domain.OutcomeFound:
		c.JSON(http.StatusOK, out.Summary)
	case domain.OutcomeNotFound:
		c.JSON(http.StatusNotFound, out.Message)
	case domain.OutcomeValidationFailed:
		c.JSON(http.StatusBadRequest, newValidationProblem(http.StatusBadRequest, out.Failures))
	case domain.OutcomeUnprocessable:
		c.JSON(http.StatusUnprocessableEntity, out.Message)
	case domain.OutcomeFailed:
		c.JSON(http.StatusInternalServerError, out.Message)
	default:
		h.log.Errorf(c.Request.Context(), "unexpected outcome kind=%s", out.Kind)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
