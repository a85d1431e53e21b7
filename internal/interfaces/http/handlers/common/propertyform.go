package common

import (
	"github.com/gin-gonic/gin"

	"github.com/estatery/estatery/internal/application/property/usecases"
	"github.com/estatery/estatery/internal/shared/utils"
)

// PropertyForm is the create/update body of a listing. It binds from JSON or
// from multipart form fields.
type PropertyForm struct {
	Title           *string `json:"title" form:"title" binding:"omitempty,max=200" example:"3 bedroom flat"`
	Location        *string `json:"location" form:"location" binding:"omitempty,max=200" example:"Lekki, Lagos"`
	Description     *string `json:"description" form:"description" binding:"omitempty,max=20000"`
	Price           *int64  `json:"price" form:"price" binding:"omitempty,gt=0" example:"25000000"`
	Category        *string `json:"category" form:"category" binding:"omitempty,max=50" example:"RESIDENTIAL"`
	PropertyType    *string `json:"property_type" form:"property_type" binding:"omitempty,max=50" example:"APARTMENT"`
	TransactionType *string `json:"transaction_type" form:"transaction_type" example:"SALE"`
	Bedrooms        *int    `json:"bedrooms" form:"bedrooms" binding:"omitempty,gte=0"`
	Bathrooms       *int    `json:"bathrooms" form:"bathrooms" binding:"omitempty,gte=0"`
	Size            *int    `json:"size" form:"size" binding:"omitempty,gte=0"`
	Furnishing      *string `json:"furnishing" form:"furnishing" example:"SEMI_FURNISHED"`

	// Draft keeps an agent listing out of the review queue.
	Draft bool `json:"draft" form:"draft"`
	// Status and RejectionReason are honoured on the admin and agent submit paths only.
	Status          *string `json:"status" form:"status" example:"PENDING"`
	RejectionReason *string `json:"rejection_reason" form:"rejection_reason"`
	// AgentID assigns an admin-created listing to an agent profile.
	AgentID *uint `json:"agent_id" form:"agent_id"`
}

// BindPropertyForm binds the body by content type and collects the image parts.
func BindPropertyForm(c *gin.Context) (*PropertyForm, error) {
	var form PropertyForm
	if IsMultipart(c) {
		if err := c.ShouldBind(&form); err != nil {
			return nil, utils.BindingError(err)
		}
	} else if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&form); err != nil {
			return nil, utils.BindingError(err)
		}
	}
	return &form, nil
}

func (f *PropertyForm) Details() usecases.DetailsInput {
	return usecases.DetailsInput{
		Title:           deref(f.Title),
		Location:        deref(f.Location),
		Description:     deref(f.Description),
		Price:           deref(f.Price),
		Category:        deref(f.Category),
		PropertyType:    deref(f.PropertyType),
		TransactionType: deref(f.TransactionType),
		Bedrooms:        deref(f.Bedrooms),
		Bathrooms:       deref(f.Bathrooms),
		Size:            deref(f.Size),
		Furnishing:      deref(f.Furnishing),
	}
}

func (f *PropertyForm) Patch() usecases.PatchInput {
	return usecases.PatchInput{
		Title:           f.Title,
		Location:        f.Location,
		Description:     f.Description,
		Price:           f.Price,
		Category:        f.Category,
		PropertyType:    f.PropertyType,
		TransactionType: f.TransactionType,
		Bedrooms:        f.Bedrooms,
		Bathrooms:       f.Bathrooms,
		Size:            f.Size,
		Furnishing:      f.Furnishing,
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
