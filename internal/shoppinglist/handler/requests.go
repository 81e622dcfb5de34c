package handler

import (
	"net/http"
	"strconv"
	"strings"

	"shoplist/internal/shoppinglist/models"
	"shoplist/pkg/platform/validation"
)

// CreateListRequest is the body of POST /lists.
type CreateListRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

func (r *CreateListRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

func (r *CreateListRequest) Validate() error {
	return validation.Struct(r)
}

// UpdateListRequest is the body of PATCH /lists/{listId}.
type UpdateListRequest struct {
	Name *string `json:"name" validate:"omitnil,min=1,max=100"`
}

func (r *UpdateListRequest) Normalize() {
	r.Name = trimPtr(r.Name)
}

func (r *UpdateListRequest) Validate() error {
	if r.Name == nil {
		return validation.Failed(validation.AtLeastOne("name"))
	}
	return validation.Struct(r)
}

// AddMemberRequest is the body of POST /lists/{listId}/members.
type AddMemberRequest struct {
	UserID string `json:"userId" validate:"required,max=64"`
}

func (r *AddMemberRequest) Normalize() {
	r.UserID = strings.TrimSpace(r.UserID)
}

func (r *AddMemberRequest) Validate() error {
	return validation.Struct(r)
}

// AddItemRequest is the body of POST /lists/{listId}/items.
type AddItemRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Quantity *int   `json:"quantity" validate:"required,min=1,max=2147483647"`
}

// Normalize trims the name and defaults the quantity.
func (r *AddItemRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	if r.Quantity == nil {
		q := validation.DefaultQuantity
		r.Quantity = &q
	}
}

func (r *AddItemRequest) Validate() error {
	return validation.Struct(r)
}

// UpdateItemRequest is the body of PATCH /lists/{listId}/items/{itemId}.
type UpdateItemRequest struct {
	Name     *string `json:"name" validate:"omitnil,min=1,max=200"`
	Quantity *int    `json:"quantity" validate:"omitnil,min=1,max=2147483647"`
	Resolved *bool   `json:"resolved"`
}

func (r *UpdateItemRequest) Normalize() {
	r.Name = trimPtr(r.Name)
}

func (r *UpdateItemRequest) Validate() error {
	if r.Name == nil && r.Quantity == nil && r.Resolved == nil {
		return validation.Failed(validation.AtLeastOne("name", "quantity", "resolved"))
	}
	return validation.Struct(r)
}

// Patch converts the request into the domain patch.
func (r *UpdateItemRequest) Patch() models.ItemPatch {
	return models.ItemPatch{Name: r.Name, Quantity: r.Quantity, Resolved: r.Resolved}
}

// ListQueryRequest is the query of GET /lists and GET /lists/archived.
type ListQueryRequest struct {
	Search   string `json:"search" validate:"max=100"`
	Page     int    `json:"page" validate:"min=1,max=1000000"`
	PageSize int    `json:"pageSize" validate:"min=1,max=100"`
}

// parseListQuery reads and validates the overview query. Malformed integers
// are reported next to the tag violations.
func parseListQuery(r *http.Request) (*ListQueryRequest, error) {
	q := r.URL.Query()
	req := &ListQueryRequest{
		Search:   strings.TrimSpace(q.Get("search")),
		Page:     validation.DefaultPage,
		PageSize: validation.DefaultPageSize,
	}
	var extra []validation.Violation
	if v, ok := parseIntParam(q.Get("page"), "page", &req.Page); !ok {
		extra = append(extra, v)
	}
	if v, ok := parseIntParam(q.Get("pageSize"), "pageSize", &req.PageSize); !ok {
		extra = append(extra, v)
	}
	if err := validation.Struct(req, extra...); err != nil {
		return req, err
	}
	return req, nil
}

// Query converts the request into the store query.
func (r *ListQueryRequest) Query(archived bool) models.ListQuery {
	return models.ListQuery{Archived: archived, Search: r.Search, Page: r.Page, PageSize: r.PageSize}
}

// DetailQueryRequest is the query of GET /lists/{listId}.
type DetailQueryRequest struct {
	IncludeResolved bool `json:"includeResolved"`
}

func parseDetailQuery(r *http.Request) (*DetailQueryRequest, error) {
	req := &DetailQueryRequest{}
	raw := strings.TrimSpace(r.URL.Query().Get("includeResolved"))
	if raw == "" {
		return req, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return req, validation.Failed(validation.Violation{
			Field:   "includeResolved",
			Rule:    "boolean",
			Message: "includeResolved must be a boolean",
		})
	}
	req.IncludeResolved = b
	return req, nil
}

func parseIntParam(raw, field string, dst *int) (validation.Violation, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return validation.Violation{}, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return validation.Violation{Field: field, Rule: "integer", Message: field + " must be an integer"}, false
	}
	*dst = n
	return validation.Violation{}, true
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
