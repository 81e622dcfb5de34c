// Package service orchestrates shopping list operations: resolve the caller's
// role, apply the authorization policy, perform one atomic store call, and
// project the result.
package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"shoplist/internal/audit"
	"shoplist/internal/identity"
	"shoplist/internal/shoppinglist/metrics"
	"shoplist/internal/shoppinglist/models"
	"shoplist/internal/shoppinglist/policy"
	"shoplist/internal/shoppinglist/roles"
	id "shoplist/pkg/domain"
	dErrors "shoplist/pkg/domain-errors"
	"shoplist/pkg/requestcontext"
)

// Store is the list aggregate store. Every mutation is atomic per list and
// returns the committed aggregate.
type Store interface {
	CreateList(ctx context.Context, list *models.List) error
	DeleteList(ctx context.Context, listID id.ListID) error
	FindListsForUser(ctx context.Context, userID id.UserID, q models.ListQuery) (int, []*models.List, error)
	FindListForUser(ctx context.Context, listID id.ListID, userID id.UserID, includeResolved bool) (*models.List, error)
	FindMembershipRole(ctx context.Context, listID id.ListID, userID id.UserID) (models.Role, error)
	Rename(ctx context.Context, listID id.ListID, name string, now time.Time) (*models.List, error)
	SetArchived(ctx context.Context, listID id.ListID, archived bool, now time.Time) (*models.List, error)
	AddMembership(ctx context.Context, listID id.ListID, userID id.UserID, now time.Time) (*models.List, error)
	RemoveMembership(ctx context.Context, listID id.ListID, userID id.UserID, now time.Time) (*models.List, error)
	AddItem(ctx context.Context, listID id.ListID, item models.Item, now time.Time) (*models.List, error)
	UpdateItem(ctx context.Context, listID id.ListID, itemID id.ItemID, patch models.ItemPatch, now time.Time) (*models.List, error)
	RemoveItem(ctx context.Context, listID id.ListID, itemID id.ItemID, now time.Time) (*models.List, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event)
}

// Service orchestrates list access and mutation.
type Service struct {
	store          Store
	roles          *roles.Resolver
	logger         *slog.Logger
	metrics        *metrics.Metrics
	auditPublisher AuditPublisher
	tracer         trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// New constructs a Service. The role resolver reads memberships from the same store.
func New(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		roles:  roles.NewResolver(store),
		logger: slog.Default(),
		tracer: otel.Tracer("shoplist/shoppinglist"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// start opens a span and returns a finisher that records the outcome.
func (s *Service) start(ctx context.Context, action policy.Action, listID string) (context.Context, func(*error)) {
	begin := time.Now()
	ctx, span := s.tracer.Start(ctx, "shoppinglist."+string(action),
		trace.WithAttributes(attribute.String("list.id", listID)))
	return ctx, func(errp *error) {
		if err := *errp; err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		s.metrics.ObserveOperation(string(action), begin)
	}
}

// checkProfile applies the tier rule before any store access.
func (s *Service) checkProfile(ctx context.Context, action policy.Action, caller identity.Identity) error {
	d := policy.CheckProfile(caller.Profile)
	if d.Allowed {
		return nil
	}
	s.denied(ctx, action, d, caller)
	return d.Err()
}

// authorize resolves the caller's role on listID and applies the policy.
// target is only used for member removal and must already be canonical.
func (s *Service) authorize(ctx context.Context, caller identity.Identity, listID string, action policy.Action, target string) (roles.Resolution, error) {
	if err := s.checkProfile(ctx, action, caller); err != nil {
		return roles.Resolution{}, err
	}
	res, err := s.roles.Resolve(ctx, listID, caller)
	if err != nil {
		if _, ok := dErrors.From(err); ok {
			return roles.Resolution{}, err
		}
		return roles.Resolution{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve list role")
	}

	d := policy.Authorize(policy.Request{
		Action:       action,
		Role:         res.Role,
		Profile:      caller.Profile,
		CallerUserID: res.UserID.String(),
		TargetUserID: target,
	})
	if !d.Allowed {
		s.denied(ctx, action, d, caller)
		return res, withRole(d.Err(), res.Role)
	}
	return res, nil
}

func withRole(err error, role models.Role) error {
	de, ok := dErrors.From(err)
	if !ok || de.Code != dErrors.CodeInsufficientListRole {
		return err
	}
	return de.WithDetails(map[string]string{"role": string(role)})
}

func (s *Service) denied(ctx context.Context, action policy.Action, d policy.Decision, caller identity.Identity) {
	s.metrics.IncrementDenial(string(action), string(d.Reason))
	s.logger.WarnContext(ctx, "list action denied",
		"request_id", requestcontext.RequestID(ctx),
		"user_id", caller.UserID,
		"profile", caller.Profile,
		"action", action,
		"reason", d.Reason,
	)
}

// translate maps store facts to domain errors. Errors that already carry a code pass through.
func translate(err error, message string) error {
	switch {
	case errors.Is(err, models.ErrItemNotFound):
		return dErrors.New(dErrors.CodeItemNotFound, "item not found")
	case errors.Is(err, models.ErrListNotFound):
		return dErrors.New(dErrors.CodeListNotFound, "list not found")
	case errors.Is(err, models.ErrMembershipExists):
		return dErrors.New(dErrors.CodeMembershipExists, "user is already a member of the list")
	case errors.Is(err, models.ErrMembershipMissing):
		return dErrors.New(dErrors.CodeMembershipMissing, "user is not a member of the list")
	case errors.Is(err, models.ErrOwnerMembership):
		return policy.CanRemoveMembership(models.RoleOwner).Err()
	}
	if _, ok := dErrors.From(err); ok {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, message)
}

// committed records a successful mutation.
func (s *Service) committed(ctx context.Context, action policy.Action, event audit.Event) {
	s.metrics.IncrementMutation(string(action))
	if s.auditPublisher != nil {
		s.auditPublisher.Emit(ctx, event)
	}
	s.logger.InfoContext(ctx, "list mutated",
		"request_id", requestcontext.RequestID(ctx),
		"action", event.Action,
		"list_id", event.ListID,
		"user_id", event.ActorID,
	)
}

func now(ctx context.Context) time.Time {
	return requestcontext.Now(ctx).UTC()
}
