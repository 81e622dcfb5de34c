package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"shoplist/internal/identity"
	"shoplist/internal/users/service"
	dErrors "shoplist/pkg/domain-errors"
	"shoplist/pkg/platform/httputil"
	"shoplist/pkg/requestcontext"
)

type Service interface {
	ListUsers(ctx context.Context, caller identity.Identity) (*service.Directory, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register wires the directory routes. The router must already resolve identity.
func (h *Handler) Register(r chi.Router) {
	r.Get("/users", h.HandleList)
}

type listUsersDtoIn struct {
	UserID string `json:"userId"`
}

// HandleList returns the user directory.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, err := identity.FromContext(ctx)
	if err != nil {
		httputil.WriteError(w, err, nil)
		return
	}
	dtoIn := listUsersDtoIn{UserID: caller.UserID}

	dir, err := h.service.ListUsers(ctx, caller)
	if err != nil {
		level := slog.LevelWarn
		if dErrors.HasCode(err, dErrors.CodeInternal) {
			level = slog.LevelError
		}
		h.logger.Log(ctx, level, "failed to list users",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err, dtoIn)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, dir, dtoIn)
}
