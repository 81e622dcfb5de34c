package models

import (
	"strings"
	"time"
	"unicode/utf8"

	id "shoplist/pkg/domain"
	"shoplist/pkg/platform/validation"
)

// Item is an entry on a list. Quantity is at least 1.
type Item struct {
	ID        id.ItemID
	Name      string
	Quantity  int
	Resolved  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewItem builds an unresolved item. A zero quantity means the default of 1.
func NewItem(itemID id.ItemID, name string, quantity int, now time.Time) (Item, error) {
	if quantity == 0 {
		quantity = validation.DefaultQuantity
	}
	name = strings.TrimSpace(name)
	var violations []validation.Violation
	if v, ok := checkItemName(name); !ok {
		violations = append(violations, v)
	}
	if v, ok := checkQuantity(quantity); !ok {
		violations = append(violations, v)
	}
	if len(violations) > 0 {
		return Item{}, validation.Failed(violations...)
	}
	return Item{
		ID:        itemID,
		Name:      name,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ItemPatch is a partial item update; nil fields are left untouched.
type ItemPatch struct {
	Name     *string
	Quantity *int
	Resolved *bool
}

// Empty reports whether the patch changes nothing.
func (p ItemPatch) Empty() bool {
	return p.Name == nil && p.Quantity == nil && p.Resolved == nil
}

// Normalize trims the name and checks every present field.
func (p ItemPatch) Normalize() (ItemPatch, error) {
	if p.Empty() {
		return p, validation.Failed(validation.AtLeastOne("name", "quantity", "resolved"))
	}
	var violations []validation.Violation
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		p.Name = &name
		if v, ok := checkItemName(name); !ok {
			violations = append(violations, v)
		}
	}
	if p.Quantity != nil {
		if v, ok := checkQuantity(*p.Quantity); !ok {
			violations = append(violations, v)
		}
	}
	if len(violations) > 0 {
		return p, validation.Failed(violations...)
	}
	return p, nil
}

// ApplyTo writes the present fields into item.
func (p ItemPatch) ApplyTo(item *Item, now time.Time) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Quantity != nil {
		item.Quantity = *p.Quantity
	}
	if p.Resolved != nil {
		item.Resolved = *p.Resolved
	}
	item.UpdatedAt = now
}

func checkItemName(name string) (validation.Violation, bool) {
	switch {
	case name == "":
		return validation.Violation{Field: "name", Rule: "required", Message: "name is required"}, false
	case utf8.RuneCountInString(name) > validation.MaxItemNameLength:
		return validation.Violation{Field: "name", Rule: "max", Message: "name must be at most 200 characters"}, false
	}
	return validation.Violation{}, true
}

func checkQuantity(q int) (validation.Violation, bool) {
	switch {
	case q < 1:
		return validation.Violation{Field: "quantity", Rule: "min", Message: "quantity must be at least 1"}, false
	case q > validation.MaxQuantity:
		return validation.Violation{Field: "quantity", Rule: "max", Message: "quantity must be at most 2147483647"}, false
	}
	return validation.Violation{}, true
}
