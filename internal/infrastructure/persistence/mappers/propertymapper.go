package mappers

import (
	"sort"

	"github.com/estatery/estatery/internal/domain/property"
	vo "github.com/estatery/estatery/internal/domain/property/valueobjects"
	"github.com/estatery/estatery/internal/infrastructure/persistence/models"
)

// PropertyToModel maps content and status. Images are mapped separately by
// PropertyImagesToModels since they are only written on replacement.
func PropertyToModel(p *property.Property) *models.PropertyModel {
	d := p.Details()
	return &models.PropertyModel{
		ID:              p.ID(),
		Title:           d.Title,
		Location:        d.Location,
		Description:     d.Description,
		Price:           d.Price,
		Status:          p.Status().String(),
		RejectionReason: p.RejectionReason(),
		Category:        d.Category,
		PropertyType:    d.PropertyType,
		TransactionType: d.TransactionType.String(),
		Bedrooms:        d.Bedrooms,
		Bathrooms:       d.Bathrooms,
		Size:            d.Size,
		Furnishing:      d.Furnishing.String(),
		ListedByAdmin:   p.ListedByAdmin(),
		AgentProfileID:  p.AgentID(),
		CreatedAt:       p.CreatedAt(),
		UpdatedAt:       p.UpdatedAt(),
	}
}

func PropertyImagesToModels(p *property.Property) []models.PropertyImageModel {
	images := p.Images()
	out := make([]models.PropertyImageModel, 0, len(images))
	for _, img := range images {
		out = append(out, models.PropertyImageModel{
			PropertyID: p.ID(),
			URL:        img.URL(),
			Position:   img.Position(),
			CreatedAt:  p.UpdatedAt(),
		})
	}
	return out
}

func PropertyToDomain(m *models.PropertyModel) (*property.Property, error) {
	sort.SliceStable(m.Images, func(i, j int) bool {
		return m.Images[i].Position < m.Images[j].Position
	})
	images := make([]property.Image, 0, len(m.Images))
	for _, img := range m.Images {
		images = append(images, property.ReconstructImage(img.ID, img.URL, img.Position))
	}

	d := property.Details{
		Title:           m.Title,
		Location:        m.Location,
		Description:     m.Description,
		Price:           m.Price,
		Category:        m.Category,
		PropertyType:    m.PropertyType,
		TransactionType: vo.TransactionType(m.TransactionType),
		Bedrooms:        m.Bedrooms,
		Bathrooms:       m.Bathrooms,
		Size:            m.Size,
		Furnishing:      vo.Furnishing(m.Furnishing),
	}

	return property.Reconstruct(
		m.ID,
		d,
		vo.Status(m.Status),
		m.RejectionReason,
		m.ListedByAdmin,
		m.AgentProfileID,
		images,
		m.CreatedAt, m.UpdatedAt,
	)
}
