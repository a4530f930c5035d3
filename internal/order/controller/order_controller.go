package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"qrmenu/internal/auth"
	"qrmenu/internal/domain"
	"qrmenu/internal/dto"
	apperrors "qrmenu/internal/errors"
)

type CreateOrderUseCase interface {
	CreatePublic(ctx context.Context, placeID uint64, req dto.CreateOrderRequest) (*domain.Order, error)
	CreateOwned(ctx context.Context, actorID, placeID uint64, req dto.CreateOrderRequest) (*domain.Order, error)
	AppendItems(ctx context.Context, actorID, orderID uint64, req dto.AppendItemsRequest) (*domain.Order, error)
}

type OrderStatusUseCase interface {
	UpdateStatus(ctx context.Context, actorID, orderID uint64, newStatus string) (*domain.Order, error)
	CancelPublic(ctx context.Context, placeID, orderID uint64) (*dto.OrderDeletedPayload, error)
	Delete(ctx context.Context, actorID, orderID uint64) (*dto.OrderDeletedPayload, error)
}

type OrderQueryUseCase interface {
	GetOrder(ctx context.Context, actorID, orderID uint64) (*domain.Order, error)
	ListOrders(ctx context.Context, actorID, placeID uint64, statusFilter string) ([]domain.Order, error)
}

type OrderController struct {
	createUC CreateOrderUseCase
	statusUC OrderStatusUseCase
	queryUC  OrderQueryUseCase
	logger   *zap.Logger
}

func NewOrderController(createUC CreateOrderUseCase, statusUC OrderStatusUseCase, queryUC OrderQueryUseCase, logger *zap.Logger) *OrderController {
	return &OrderController{
		createUC: createUC,
		statusUC: statusUC,
		queryUC:  queryUC,
		logger:   logger,
	}
}

// POST /places/{placeId}/orders/public
func (c *OrderController) CreateOrderPublic(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger(r)

	placeID, ok := c.pathID(w, r, "placeId")
	if !ok {
		return
	}

	req, ok := c.decodeCreateRequest(w, r, logger)
	if !ok {
		return
	}

	order, err := c.createUC.CreatePublic(r.Context(), placeID, req)
	if err != nil {
		c.handleError(w, err, logger)
		return
	}

	c.writeData(w, http.StatusCreated, dto.NewOrderPayload(order))
}

// POST /places/{placeId}/orders
func (c *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger(r)

	actorID, ok := c.requireActor(w, r)
	if !ok {
		return
	}

	placeID, ok := c.pathID(w, r, "placeId")
	if !ok {
		return
	}

	req, ok := c.decodeCreateRequest(w, r, logger)
	if !ok {
		return
	}

	order, err := c.createUC.CreateOwned(r.Context(), actorID, placeID, req)
	if err != nil {
		c.handleError(w, err, logger)
		return
	}

	c.writeData(w, http.StatusCreated, dto.NewOrderPayload(order))
}

// PATCH /places/{placeId}/orders/{orderId}/cancel/public
func (c *OrderController) CancelOrderPublic(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger(r)

	placeID, ok := c.pathID(w, r, "placeId")
	if !ok {
		return
	}
	orderID, ok := c.pathID(w, r, "orderId")
	if !ok {
		return
	}

	result, err := c.statusUC.CancelPublic(r.Context(), placeID, orderID)
	if err != nil {
		c.handleError(w, err, logger)
		return
	}

	c.writeData(w, http.StatusOK, result)
}

// GET /places/{placeId}/orders?status=
func (c *OrderController) ListOrders(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger(r)

	actorID, ok := c.requireActor(w, r)
	if !ok {
		return
	}

	placeID, ok := c.pathID(w, r, "placeId")
	if !ok {
		return
	}

	orders, err := c.queryUC.ListOrders(r.Context(), actorID, placeID, r.URL.Query().Get("status"))
	if err != nil {
		c.handleError(w, err, logger)
		return
	}

	payloads := make([]dto.OrderPayload, len(orders))
	for i := range orders {
		payloads[i] = dto.NewOrderPayload(&orders[i])
	}

	c.writeData(w, http.StatusOK, payloads)
}

// GET /orders/{orderId}
func (c *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger(r)

	actorID, ok := c.requireActor(w, r)
	if !ok {
		return
	}

	orderID, ok := c.pathID(w, r, "orderId")
	if !ok {
		return
	}

	order, err := c.queryUC.GetOrder(r.Context(), actorID, orderID)
	if err != nil {
		c.handleError(w, err, logger)
		return
	}

	c.writeData(w, http.StatusOK, dto.NewOrderPayload(order))
}

// PATCH /orders/{orderId}/status
func (c *OrderController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger(r)

	actorID, ok := c.requireActor(w, r)
	if !ok {
		return
	}

	orderID, ok := c.pathID(w, r, "orderId")
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}
	if req.Status == "" {
		c.writeValidationError(w, "status is required", apperrors.ValidationDetail{
			Field:   "status",
			Message: "status is required",
		})
		return
	}

	order, err := c.statusUC.UpdateStatus(r.Context(), actorID, orderID, req.Status)
	if err != nil {
		c.handleError(w, err, logger)
		return
	}

	c.writeData(w, http.StatusOK, dto.NewOrderPayload(order))
}

// POST /orders/{orderId}/items
func (c *OrderController) AppendOrderItems(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger(r)

	actorID, ok := c.requireActor(w, r)
	if !ok {
		return
	}

	orderID, ok := c.pathID(w, r, "orderId")
	if !ok {
		return
	}

	var req dto.AppendItemsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if details := validateItems(req.Items); len(details) > 0 {
		c.writeValidationError(w, "validation failed", details...)
		return
	}

	order, err := c.createUC.AppendItems(r.Context(), actorID, orderID, req)
	if err != nil {
		c.handleError(w, err, logger)
		return
	}

	c.writeData(w, http.StatusOK, dto.NewOrderPayload(order))
}

// DELETE /orders/{orderId}
func (c *OrderController) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger(r)

	actorID, ok := c.requireActor(w, r)
	if !ok {
		return
	}

	orderID, ok := c.pathID(w, r, "orderId")
	if !ok {
		return
	}

	result, err := c.statusUC.Delete(r.Context(), actorID, orderID)
	if err != nil {
		c.handleError(w, err, logger)
		return
	}

	c.writeData(w, http.StatusOK, result)
}

func (c *OrderController) decodeCreateRequest(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (dto.CreateOrderRequest, bool) {
	var req dto.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return req, false
	}

	var details []apperrors.ValidationDetail
	if (req.TableID == nil || *req.TableID == 0) && req.TableNumber == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "tableId",
			Message: "either tableId or tableNumber must be provided",
		})
	}
	details = append(details, validateItems(req.Items)...)

	if len(details) > 0 {
		c.writeValidationError(w, "validation failed", details...)
		return req, false
	}

	return req, true
}

func validateItems(items []dto.OrderItemRequest) []apperrors.ValidationDetail {
	var details []apperrors.ValidationDetail

	if len(items) == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "items",
			Message: "items must not be empty",
		})
	}

	for idx, item := range items {
		if item.MenuItemID == 0 {
			details = append(details, apperrors.ValidationDetail{
				Field:   fmt.Sprintf("items[%d].menuItemId", idx),
				Message: "menuItemId must be a positive integer",
			})
		}
		if item.Quantity <= 0 {
			details = append(details, apperrors.ValidationDetail{
				Field:   fmt.Sprintf("items[%d].quantity", idx),
				Message: "quantity must be a positive integer",
			})
		}
	}

	return details
}

func (c *OrderController) requestLogger(r *http.Request) *zap.Logger {
	return c.logger.With(zap.String("traceId", uuid.New().String()))
}

func (c *OrderController) requireActor(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	actorID, ok := auth.ActorFrom(r.Context())
	if !ok {
		c.writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return 0, false
	}
	return actorID, true
}

func (c *OrderController) pathID(w http.ResponseWriter, r *http.Request, name string) (uint64, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		c.writeValidationError(w, "invalid "+name+" in path", apperrors.ValidationDetail{
			Field:   name,
			Message: name + " must be a positive integer",
		})
		return 0, false
	}
	return id, true
}

func (c *OrderController) handleError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeError(w, http.StatusBadRequest, "INVALID_INPUT", ve.Message, ve.Details)
		return
	}
	if nf, ok := apperrors.IsNotFoundError(err); ok {
		c.writeError(w, http.StatusNotFound, "NOT_FOUND", nf.Message, nil)
		return
	}
	if fe, ok := apperrors.IsForbiddenError(err); ok {
		c.writeError(w, http.StatusForbidden, "FORBIDDEN", fe.Message, nil)
		return
	}
	if ue, ok := apperrors.IsUnauthorizedError(err); ok {
		c.writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", ue.Message, nil)
		return
	}
	if ce, ok := apperrors.IsConflictError(err); ok {
		c.writeError(w, http.StatusConflict, "CONFLICT", ce.Message, nil)
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred", nil)
}

func (c *OrderController) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeError(w, http.StatusBadRequest, "INVALID_INPUT", message, details)
}

func (c *OrderController) writeError(w http.ResponseWriter, status int, code, message string, details interface{}) {
	c.writeJSON(w, status, dto.Err(code, message, details))
}

func (c *OrderController) writeData(w http.ResponseWriter, status int, data interface{}) {
	c.writeJSON(w, status, dto.OK(data))
}

func (c *OrderController) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
