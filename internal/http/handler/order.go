package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"calmicasa-api/internal/notify"
	"calmicasa-api/internal/resource"
	apperrors "calmicasa-api/pkg/errors"
	"calmicasa-api/pkg/validator"
)

const orderReferencePrefix = "ORD-"

// OrderStore persists order documents.
type OrderStore interface {
	Insert(ctx context.Context, fields resource.Document) (string, error)
}

// OrderNotifier dispatches the two order emails.
type OrderNotifier interface {
	SendOrderReceipt(o notify.Order) error
	SendOrderAlert(o notify.Order) error
}

type OrderHandler struct {
	store    OrderStore
	notifier OrderNotifier
}

func NewOrderHandler(store OrderStore, notifier OrderNotifier) *OrderHandler {
	return &OrderHandler{
		store:    store,
		notifier: notifier,
	}
}

type OrderForm struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	PaymentMethod string `json:"paymentMethod"`
	Message       string `json:"message"`
}

type OrderRequest struct {
	ModelName string    `json:"modelName"`
	Price     string    `json:"price"`
	Form      OrderForm `json:"form"`
}

// Submit is the public order intake. The order is placed once the document
// is persisted; the receipt to the customer and the alert to staff are each
// attempted independently afterwards, and a failed send is logged without
// failing the response or rolling anything back. A lost email is
// recoverable, a lost order record is not.
func (h *OrderHandler) Submit(c echo.Context) error {
	var req OrderRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	req.Form.Email = strings.TrimSpace(req.Form.Email)
	if req.Form.Name == "" || req.Form.Email == "" || req.Form.Phone == "" {
		return apperrors.Validation("name, email and phone are required")
	}

	if err := validator.Email(req.Form.Email); err != nil {
		return apperrors.Validation(err.Error())
	}

	reference := orderReferencePrefix + strings.ToUpper(uuid.NewString()[:8])

	ctx := c.Request().Context()
	_, err := h.store.Insert(ctx, resource.Document{
		"reference":     reference,
		"modelName":     req.ModelName,
		"price":         req.Price,
		"customerName":  req.Form.Name,
		"email":         req.Form.Email,
		"phone":         req.Form.Phone,
		"paymentMethod": req.Form.PaymentMethod,
		"message":       req.Form.Message,
		"status":        "Pending",
	})
	if err != nil {
		return err
	}

	order := notify.Order{
		Reference:     reference,
		ModelName:     req.ModelName,
		Price:         req.Price,
		CustomerName:  req.Form.Name,
		Email:         req.Form.Email,
		Phone:         req.Form.Phone,
		PaymentMethod: req.Form.PaymentMethod,
		Message:       req.Form.Message,
	}

	if err := h.notifier.SendOrderReceipt(order); err != nil {
		c.Logger().Warnf("order %s: receipt email failed: %v", reference, err)
	}

	if err := h.notifier.SendOrderAlert(order); err != nil {
		c.Logger().Warnf("order %s: staff alert failed: %v", reference, err)
	}

	return respondSuccess(c, http.StatusOK)
}
