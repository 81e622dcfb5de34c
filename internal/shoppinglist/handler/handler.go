// Package handler exposes shopping list operations over HTTP.
package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"shoplist/internal/identity"
	"shoplist/internal/shoppinglist/models"
	"shoplist/internal/shoppinglist/service"
	"shoplist/internal/shoppinglist/view"
	dErrors "shoplist/pkg/domain-errors"
	"shoplist/pkg/platform/httputil"
	"shoplist/pkg/requestcontext"
)

// Service defines the list operations the handler depends on.
type Service interface {
	ListOverview(ctx context.Context, caller identity.Identity, q models.ListQuery) (*view.Page, error)
	CreateList(ctx context.Context, caller identity.Identity, name string) (*view.Detail, error)
	GetList(ctx context.Context, caller identity.Identity, listID string, includeResolved bool) (*view.Detail, error)
	RenameList(ctx context.Context, caller identity.Identity, listID, name string) (*view.Detail, error)
	SetArchived(ctx context.Context, caller identity.Identity, listID string, archived bool) (*view.Detail, error)
	DeleteList(ctx context.Context, caller identity.Identity, listID string) (*service.DeleteResult, error)
	AddMember(ctx context.Context, caller identity.Identity, listID, userID string) (*view.Detail, error)
	RemoveMember(ctx context.Context, caller identity.Identity, listID, userID string) (*view.Detail, error)
	AddItem(ctx context.Context, caller identity.Identity, listID string, in service.NewItem) (*view.Detail, error)
	UpdateItem(ctx context.Context, caller identity.Identity, listID, itemID string, patch models.ItemPatch) (*view.Detail, error)
	RemoveItem(ctx context.Context, caller identity.Identity, listID, itemID string) (*view.Detail, error)
}

// Handler wires list endpoints to the list service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// ListResponse is the detail and mutation payload.
type ListResponse struct {
	List *view.Detail `json:"list"`
}

// Register mounts list endpoints on the router. Identity must already be
// resolved by middleware.
func (h *Handler) Register(r chi.Router) {
	r.Route("/lists", func(r chi.Router) {
		r.Get("/", h.HandleOverview(false))
		r.Get("/archived", h.HandleOverview(true))
		r.Post("/", h.HandleCreate)

		r.Route("/{listId}", func(r chi.Router) {
			r.Get("/", h.HandleGet)
			r.Patch("/", h.HandleRename)
			r.Delete("/", h.HandleDelete)
			r.Post("/archive", h.HandleArchive(true))
			r.Post("/unarchive", h.HandleArchive(false))
			r.Post("/members", h.HandleAddMember)
			r.Delete("/members/{userId}", h.HandleRemoveMember)
			r.Post("/items", h.HandleAddItem)
			r.Patch("/items/{itemId}", h.HandleUpdateItem)
			r.Delete("/items/{itemId}", h.HandleRemoveItem)
		})
	})
}

// HandleOverview handles GET /lists and GET /lists/archived.
func (h *Handler) HandleOverview(archived bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		caller, ok := h.caller(w, r)
		if !ok {
			return
		}
		req, err := parseListQuery(r)
		if err != nil {
			h.fail(ctx, w, "invalid list query", err, req)
			return
		}

		page, err := h.service.ListOverview(ctx, caller, req.Query(archived))
		if err != nil {
			h.fail(ctx, w, "failed to list lists", err, req)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, page, req)
	}
}

// HandleCreate handles POST /lists.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[CreateListRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	list, err := h.service.CreateList(ctx, caller, req.Name)
	if err != nil {
		h.fail(ctx, w, "failed to create list", err, req)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, ListResponse{List: list}, req)
}

// HandleGet handles GET /lists/{listId}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	req, err := parseDetailQuery(r)
	if err != nil {
		h.fail(ctx, w, "invalid detail query", err, req)
		return
	}

	list, err := h.service.GetList(ctx, caller, chi.URLParam(r, "listId"), req.IncludeResolved)
	if err != nil {
		h.fail(ctx, w, "failed to load list", err, req)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ListResponse{List: list}, req)
}

// HandleRename handles PATCH /lists/{listId}.
func (h *Handler) HandleRename(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[UpdateListRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	list, err := h.service.RenameList(ctx, caller, chi.URLParam(r, "listId"), *req.Name)
	if err != nil {
		h.fail(ctx, w, "failed to rename list", err, req)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ListResponse{List: list}, req)
}

// HandleArchive handles POST /lists/{listId}/archive and /unarchive.
func (h *Handler) HandleArchive(archived bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		caller, ok := h.caller(w, r)
		if !ok {
			return
		}

		list, err := h.service.SetArchived(ctx, caller, chi.URLParam(r, "listId"), archived)
		if err != nil {
			h.fail(ctx, w, "failed to change archive state", err, nil)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, ListResponse{List: list}, nil)
	}
}

// HandleDelete handles DELETE /lists/{listId}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	result, err := h.service.DeleteList(ctx, caller, chi.URLParam(r, "listId"))
	if err != nil {
		h.fail(ctx, w, "failed to delete list", err, nil)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result, nil)
}

// HandleAddMember handles POST /lists/{listId}/members.
func (h *Handler) HandleAddMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[AddMemberRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	list, err := h.service.AddMember(ctx, caller, chi.URLParam(r, "listId"), req.UserID)
	if err != nil {
		h.fail(ctx, w, "failed to add member", err, req)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, ListResponse{List: list}, req)
}

// HandleRemoveMember handles DELETE /lists/{listId}/members/{userId}.
func (h *Handler) HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	list, err := h.service.RemoveMember(ctx, caller, chi.URLParam(r, "listId"), chi.URLParam(r, "userId"))
	if err != nil {
		h.fail(ctx, w, "failed to remove member", err, nil)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ListResponse{List: list}, nil)
}

// HandleAddItem handles POST /lists/{listId}/items.
func (h *Handler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[AddItemRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	list, err := h.service.AddItem(ctx, caller, chi.URLParam(r, "listId"), service.NewItem{Name: req.Name, Quantity: *req.Quantity})
	if err != nil {
		h.fail(ctx, w, "failed to add item", err, req)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, ListResponse{List: list}, req)
}

// HandleUpdateItem handles PATCH /lists/{listId}/items/{itemId}.
func (h *Handler) HandleUpdateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[UpdateItemRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	list, err := h.service.UpdateItem(ctx, caller, chi.URLParam(r, "listId"), chi.URLParam(r, "itemId"), req.Patch())
	if err != nil {
		h.fail(ctx, w, "failed to update item", err, req)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ListResponse{List: list}, req)
}

// HandleRemoveItem handles DELETE /lists/{listId}/items/{itemId}.
func (h *Handler) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	list, err := h.service.RemoveItem(ctx, caller, chi.URLParam(r, "listId"), chi.URLParam(r, "itemId"))
	if err != nil {
		h.fail(ctx, w, "failed to remove item", err, nil)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ListResponse{List: list}, nil)
}

// caller reads the identity set by middleware. A missing identity means the
// route was mounted without the identity middleware.
func (h *Handler) caller(w http.ResponseWriter, r *http.Request) (identity.Identity, bool) {
	caller, err := identity.FromContext(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "identity missing from context",
			"request_id", requestcontext.RequestID(r.Context()),
		)
		httputil.WriteError(w, err, nil)
		return identity.Identity{}, false
	}
	return caller, true
}

// fail logs at a level matching the error class and writes the envelope.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error, dtoIn any) {
	level := slog.LevelWarn
	if dErrors.HasCode(err, dErrors.CodeInternal) {
		level = slog.LevelError
	} else if _, ok := dErrors.From(err); !ok {
		level = slog.LevelError
	}
	h.logger.Log(ctx, level, msg,
		"request_id", requestcontext.RequestID(ctx),
		"user_id", requestcontext.UserID(ctx),
		"error", err,
	)
	httputil.WriteError(w, err, dtoIn)
}
