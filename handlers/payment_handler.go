package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/middleware"
	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/models"
	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/repositories"
	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/services"
	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/services/payments"
	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/utils"
)

// CreatePaymentIntentRequest asks the provider for a payment intent
type CreatePaymentIntentRequest struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

// CreateOrderRequest records a payment order for a registration
type CreateOrderRequest struct {
	RegistrationID uuid.UUID `json:"registration_id" validate:"required"`
	Amount         int64     `json:"amount" validate:"required,gt=0"`
	TransactionID  string    `json:"transaction_id" validate:"required"`
}

// PaymentHandler handles payment-related HTTP requests
type PaymentHandler struct {
	orders        repositories.OrderRepository
	registrations repositories.RegistrationRepository
	provider      payments.Provider
	currency      string
	logger        *zap.Logger
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(
	orders repositories.OrderRepository,
	registrations repositories.RegistrationRepository,
	provider payments.Provider,
	currency string,
	logger *zap.Logger,
) *PaymentHandler {
	return &PaymentHandler{
		orders:        orders,
		registrations: registrations,
		provider:      provider,
		currency:      currency,
		logger:        logger,
	}
}

// HandleCreatePaymentIntent handles POST /create-payment-intent
func (h *PaymentHandler) HandleCreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req CreatePaymentIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		_ = utils.WriteBadRequest(w, err.Error(), toDetails(utils.GetValidationFields(err)))
		return
	}

	intent, err := h.provider.CreateIntent(r.Context(), req.Amount, h.currency)
	if err != nil {
		h.logger.Error("payment intent creation failed", zap.Error(err))
		HandleServiceError(w, services.NewDomainError(services.ErrorTypeExternal, "payment provider request failed", err), h.logger)
		return
	}

	_ = utils.WriteOK(w, map[string]string{"clientSecret": intent.ClientSecret})
}

// HandleCreateOrder handles POST /order. The participant email comes
// from the session; the order opens as pending.
func (h *PaymentHandler) HandleCreateOrder(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityEmail(r.Context())

	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		_ = utils.WriteBadRequest(w, err.Error(), toDetails(utils.GetValidationFields(err)))
		return
	}

	reg, err := h.registrations.GetByID(r.Context(), req.RegistrationID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	if !reg.IsOwnedBy(identity) {
		HandleServiceError(w, services.ErrNotOwner, h.logger)
		return
	}

	now := time.Now()
	order := &models.Order{
		ID:               uuid.New(),
		RegistrationID:   reg.ID,
		CampID:           reg.CampID,
		CampName:         reg.CampName,
		ParticipantEmail: identity,
		Amount:           req.Amount,
		Currency:         h.currency,
		TransactionID:    req.TransactionID,
		Status:           models.OrderPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := h.orders.Create(r.Context(), order); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("order created",
		zap.String("id", order.ID.String()),
		zap.String("registration_id", reg.ID.String()),
		zap.Int64("amount", order.Amount))

	_ = utils.WriteCreated(w, order)
}

// HandleUpdatePaymentStatus handles PATCH /payment-status-update?id=&status=.
// Marks the order and its registration's payment status together. Only
// the paying participant may update their own order.
func (h *PaymentHandler) HandleUpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityEmail(r.Context())

	id, err := uuid.Parse(r.URL.Query().Get("id"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid order id", nil)
		return
	}

	status := r.URL.Query().Get("status")
	if !models.ValidOrderStatus(status) {
		_ = utils.WriteBadRequest(w, "Invalid status value", nil)
		return
	}

	order, err := h.orders.GetByID(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	if !order.IsOwnedBy(identity) {
		h.logger.Warn("payment status update denied",
			zap.String("order_id", id.String()),
			zap.String("identity", identity))
		HandleServiceError(w, services.ErrNotOwner, h.logger)
		return
	}

	if err := h.orders.UpdateStatus(r.Context(), id, models.OrderStatus(status)); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	if models.OrderStatus(status) == models.OrderPaid {
		if err := h.registrations.UpdatePaymentStatus(r.Context(), order.RegistrationID, models.PaymentPaid); err != nil {
			HandleServiceError(w, err, h.logger)
			return
		}
	}

	h.logger.Info("payment status updated",
		zap.String("order_id", id.String()),
		zap.String("status", status))

	_ = utils.WriteOK(w, map[string]bool{"success": true})
}

// HandleGetPaymentHistory handles GET /payment-status-update. Returns
// the session participant's orders, newest first.
func (h *PaymentHandler) HandleGetPaymentHistory(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityEmail(r.Context())

	orders, err := h.orders.GetByParticipant(r.Context(), identity)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, orders)
}
