package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"calmicasa-api/internal/notify"
	"calmicasa-api/internal/resource"
	apperrors "calmicasa-api/pkg/errors"
	"calmicasa-api/pkg/validator"
)

// ContactStore persists contact messages.
type ContactStore interface {
	Insert(ctx context.Context, fields resource.Document) (string, error)
}

// ContactNotifier dispatches the two contact-form emails.
type ContactNotifier interface {
	SendContactAck(m notify.ContactMessage) error
	SendContactAlert(m notify.ContactMessage) error
}

type ContactHandler struct {
	store    ContactStore
	notifier ContactNotifier
}

func NewContactHandler(store ContactStore, notifier ContactNotifier) *ContactHandler {
	return &ContactHandler{
		store:    store,
		notifier: notifier,
	}
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Submit is the public contact intake. Same persistence-first shape as order
// intake: the message is saved unread, then the staff alert and sender
// acknowledgement are attempted independently and non-fatally.
func (h *ContactHandler) Submit(c echo.Context) error {
	var req ContactRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Subject == "" || req.Message == "" {
		return apperrors.Validation("name, email, subject and message are required")
	}

	if err := validator.Email(req.Email); err != nil {
		return apperrors.Validation(err.Error())
	}

	if err := validator.Subject(req.Subject); err != nil {
		return apperrors.Validation(err.Error())
	}

	ctx := c.Request().Context()
	_, err := h.store.Insert(ctx, resource.Document{
		"name":    req.Name,
		"email":   req.Email,
		"subject": req.Subject,
		"message": req.Message,
		"read":    false,
	})
	if err != nil {
		return err
	}

	msg := notify.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}

	if err := h.notifier.SendContactAlert(msg); err != nil {
		c.Logger().Warnf("contact form: staff alert failed: %v", err)
	}

	if err := h.notifier.SendContactAck(msg); err != nil {
		c.Logger().Warnf("contact form: acknowledgement to %s failed: %v", req.Email, err)
	}

	return respondSuccess(c, http.StatusOK)
}
