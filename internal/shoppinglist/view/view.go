// Package view projects list aggregates into the response shapes clients consume.
// Counts are recomputed on every projection and never stored.
package view

import (
	"time"

	"shoplist/internal/shoppinglist/models"
	id "shoplist/pkg/domain"
)

// Overview is one row of the list overview. It never exposes member ids.
type Overview struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	Archived             bool   `json:"archived"`
	ItemsCount           int    `json:"itemsCount"`
	UnresolvedItemsCount int    `json:"unresolvedItemsCount"`
	IsOwner              bool   `json:"isOwner"`
}

type Member struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

type Item struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Resolved bool   `json:"resolved"`
}

// Detail is the full view of one list.
type Detail struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	Archived             bool     `json:"archived"`
	Members              []Member `json:"members"`
	Items                []Item   `json:"items"`
	ItemsCount           int      `json:"itemsCount"`
	UnresolvedItemsCount int      `json:"unresolvedItemsCount"`
	CreatedAt            string   `json:"createdAt"`
	UpdatedAt            string   `json:"updatedAt"`
}

// Page is the overview payload.
type Page struct {
	Page     int        `json:"page"`
	PageSize int        `json:"pageSize"`
	Total    int        `json:"total"`
	Lists    []Overview `json:"lists"`
}

// ToOverview projects list for caller.
func ToOverview(list *models.List, caller id.UserID) Overview {
	total, unresolved := list.ItemCounts()
	return Overview{
		ID:                   list.ID.String(),
		Name:                 list.Name,
		Archived:             list.Archived,
		ItemsCount:           total,
		UnresolvedItemsCount: unresolved,
		IsOwner:              list.RoleOf(caller) == models.RoleOwner,
	}
}

// ToDetail projects list. Resolved items are dropped unless includeResolved is set,
// and the counts describe the projected items.
func ToDetail(list *models.List, includeResolved bool) Detail {
	if !includeResolved {
		list = list.WithoutResolved()
	}
	total, unresolved := list.ItemCounts()

	members := make([]Member, 0, len(list.Memberships))
	for _, m := range list.Memberships {
		members = append(members, Member{UserID: m.UserID.String(), Role: string(m.Role)})
	}
	items := make([]Item, 0, len(list.Items))
	for _, it := range list.Items {
		items = append(items, Item{ID: it.ID.String(), Name: it.Name, Quantity: it.Quantity, Resolved: it.Resolved})
	}

	return Detail{
		ID:                   list.ID.String(),
		Name:                 list.Name,
		Archived:             list.Archived,
		Members:              members,
		Items:                items,
		ItemsCount:           total,
		UnresolvedItemsCount: unresolved,
		CreatedAt:            list.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:            list.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// ToPage projects one page of lists for caller.
func ToPage(total int, q models.ListQuery, lists []*models.List, caller id.UserID) Page {
	rows := make([]Overview, 0, len(lists))
	for _, l := range lists {
		rows = append(rows, ToOverview(l, caller))
	}
	return Page{Page: q.Page, PageSize: q.PageSize, Total: total, Lists: rows}
}
