package handlers

import (
	"errors"
	"net/http"

	"gym_backend/internal/services"
	"gym_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PaymentHandler holds the payment service.
type PaymentHandler struct {
	paymentService services.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(ps services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: ps}
}

// RegisterPayment handles POST /pagos.
func (h *PaymentHandler) RegisterPayment(c *gin.Context) {
	var req services.RegisterPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "RegisterPayment: Failed to bind JSON")
		utils.RespondValidationFailed(c, "Datos incompletos")
		return
	}

	payment, err := h.paymentService.RegisterPayment(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPaymentValidation):
			utils.RespondValidationFailed(c, "Datos incompletos")
		case errors.Is(err, services.ErrClientNotFound):
			respondClientNotFound(c)
		default:
			utils.LogError(err, "RegisterPayment: Error from paymentService.RegisterPayment")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Error al registrar pago", "").WithCause(err))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Pago registrado correctamente 💰", "id": payment.ID})
}
