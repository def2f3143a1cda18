package models

import (
	"strings"
	"time"
)

// Dog is a dog registered for adoption. RegOwner is fixed at creation;
// AdoptOwner and ThankYouMsg are empty until the dog is adopted.
type Dog struct {
	ID          string    `db:"id" json:"_id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description,omitempty"`
	RegOwner    string    `db:"reg_owner" json:"reg_owner"`
	AdoptOwner  string    `db:"adopt_owner" json:"adopt_owner,omitempty"`
	ThankYouMsg string    `db:"thank_you_msg" json:"thank_you_msg,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// Adopted reports whether the dog has an adopting owner.
func (d *Dog) Adopted() bool {
	return d.AdoptOwner != ""
}

// NewDog is the response body for a freshly registered dog.
type NewDog struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Owner       string    `json:"owner"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (d *Dog) AsNewDog() NewDog {
	return NewDog{
		Name:        d.Name,
		Description: d.Description,
		Owner:       d.RegOwner,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// DeleteReceipt reports the outcome of a removal.
type DeleteReceipt struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// AdoptionFilter narrows an owner's listing by adoption status.
type AdoptionFilter int

const (
	AdoptedAny AdoptionFilter = iota
	AdoptedOnly
	NotAdoptedOnly
)

// ParseAdoptionFilter maps the "adopted" query value: "true" and "false"
// (case-insensitive, trimmed) select a filter, anything else means any.
func ParseAdoptionFilter(raw string) AdoptionFilter {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true":
		return AdoptedOnly
	case "false":
		return NotAdoptedOnly
	default:
		return AdoptedAny
	}
}

func (f AdoptionFilter) String() string {
	switch f {
	case AdoptedOnly:
		return "adopted"
	case NotAdoptedOnly:
		return "not_adopted"
	default:
		return "any"
	}
}
