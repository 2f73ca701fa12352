package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"calmicasa-api/internal/resource"
)

// ResourceStore is the slice of the document store one CRUD family needs.
type ResourceStore interface {
	Kind() resource.Kind
	List(ctx context.Context) ([]resource.Document, error)
	Get(ctx context.Context, id string) (resource.Document, error)
	Insert(ctx context.Context, fields resource.Document) (string, error)
	Update(ctx context.Context, id string, fields resource.Document) error
	Delete(ctx context.Context, id string) error
}

// AssetReconciler cleans up object-store addresses a mutation stopped
// referencing. Implementations absorb their own failures.
type AssetReconciler interface {
	OnUpdate(ctx context.Context, kind resource.Kind, old, incoming resource.Document)
	OnDelete(ctx context.Context, kind resource.Kind, doc resource.Document)
}

// ResourceHandler serves one kind's CRUD family. The same handler code backs
// every collection; the descriptor decides validation, ordering, and whether
// reconciliation applies.
type ResourceHandler struct {
	store      ResourceStore
	reconciler AssetReconciler
}

func NewResourceHandler(store ResourceStore, reconciler AssetReconciler) *ResourceHandler {
	return &ResourceHandler{
		store:      store,
		reconciler: reconciler,
	}
}

func (h *ResourceHandler) List(c echo.Context) error {
	docs, err := h.store.List(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, docs)
}

func (h *ResourceHandler) Get(c echo.Context) error {
	doc, err := h.store.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, doc)
}

func (h *ResourceHandler) Create(c echo.Context) error {
	var fields resource.Document
	if err := bindJSON(c, &fields); err != nil {
		return err
	}

	id, err := h.store.Insert(c.Request().Context(), fields)
	if err != nil {
		return err
	}

	return respondCreated(c, http.StatusCreated, id)
}

// Update applies a partial field replacement. When the update touches an
// image field, the previous document is read first so the reconciler can
// delete addresses the update dropped - after the write has succeeded.
func (h *ResourceHandler) Update(c echo.Context) error {
	var fields resource.Document
	if err := bindJSON(c, &fields); err != nil {
		return err
	}

	ctx := c.Request().Context()
	id := c.Param("id")
	kind := h.store.Kind()

	var old resource.Document
	if kind.HasImages() && kind.TouchesImages(fields) {
		var err error
		old, err = h.store.Get(ctx, id)
		if err != nil {
			return err
		}
	}

	if err := h.store.Update(ctx, id, fields); err != nil {
		return err
	}

	if old != nil {
		h.reconciler.OnUpdate(ctx, kind, old, fields)
	}

	return respondSuccess(c, http.StatusOK)
}

// Delete removes the document, then reconciles away every asset it
// referenced. Reconciliation failures never surface here.
func (h *ResourceHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")
	kind := h.store.Kind()

	var old resource.Document
	if kind.HasImages() {
		var err error
		old, err = h.store.Get(ctx, id)
		if err != nil {
			return err
		}
	}

	if err := h.store.Delete(ctx, id); err != nil {
		return err
	}

	if old != nil {
		h.reconciler.OnDelete(ctx, kind, old)
	}

	return respondSuccess(c, http.StatusOK)
}
