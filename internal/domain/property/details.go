package property

import (
	"strings"

	vo "github.com/estatery/estatery/internal/domain/property/valueobjects"
)

// Details is the agent-editable content of a listing.
type Details struct {
	Title           string
	Location        string
	Description     string
	Price           int64
	Category        string
	PropertyType    string
	TransactionType vo.TransactionType
	Bedrooms        int
	Bathrooms       int
	Size            int
	Furnishing      vo.Furnishing
}

func (d *Details) normalize() {
	d.Title = strings.TrimSpace(d.Title)
	d.Location = strings.TrimSpace(d.Location)
	d.Description = strings.TrimSpace(d.Description)
	d.Category = strings.ToUpper(strings.TrimSpace(d.Category))
	d.PropertyType = strings.TrimSpace(d.PropertyType)
	if d.TransactionType == "" {
		d.TransactionType = vo.TransactionSale
	}
	if d.Furnishing == "" {
		d.Furnishing = vo.Unfurnished
	}
}

func (d Details) validate() error {
	switch {
	case d.Title == "":
		return invalid("title is required")
	case len(d.Title) > 200:
		return invalid("title must be at most 200 characters")
	case d.Location == "":
		return invalid("location is required")
	case d.Price <= 0:
		return invalid("price must be greater than 0")
	case d.Category == "":
		return invalid("category is required")
	case !d.TransactionType.IsValid():
		return invalid("invalid transaction type %q", d.TransactionType)
	case !d.Furnishing.IsValid():
		return invalid("invalid furnishing %q", d.Furnishing)
	case d.Bedrooms < 0 || d.Bathrooms < 0 || d.Size < 0:
		return invalid("bedrooms, bathrooms and size must not be negative")
	}
	return nil
}

// Patch carries optional changes; nil fields are left untouched.
type Patch struct {
	Title           *string
	Location        *string
	Description     *string
	Price           *int64
	Category        *string
	PropertyType    *string
	TransactionType *vo.TransactionType
	Bedrooms        *int
	Bathrooms       *int
	Size            *int
	Furnishing      *vo.Furnishing
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p == Patch{}
}

func (p Patch) applyTo(d Details) Details {
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.Location != nil {
		d.Location = *p.Location
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.Price != nil {
		d.Price = *p.Price
	}
	if p.Category != nil {
		d.Category = *p.Category
	}
	if p.PropertyType != nil {
		d.PropertyType = *p.PropertyType
	}
	if p.TransactionType != nil {
		d.TransactionType = *p.TransactionType
	}
	if p.Bedrooms != nil {
		d.Bedrooms = *p.Bedrooms
	}
	if p.Bathrooms != nil {
		d.Bathrooms = *p.Bathrooms
	}
	if p.Size != nil {
		d.Size = *p.Size
	}
	if p.Furnishing != nil {
		d.Furnishing = *p.Furnishing
	}
	return d
}
