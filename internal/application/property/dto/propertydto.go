package dto

import (
	"time"

	"github.com/estatery/estatery/internal/domain/agent"
	"github.com/estatery/estatery/internal/domain/property"
	"github.com/estatery/estatery/internal/domain/user"
	"github.com/estatery/estatery/internal/shared/mapper"
)

type ImageDTO struct {
	ID       uint   `json:"id"`
	URL      string `json:"url"`
	Position int    `json:"position"`
}

type PropertyDTO struct {
	ID              uint       `json:"id"`
	Title           string     `json:"title"`
	Location        string     `json:"location"`
	Description     string     `json:"description"`
	Price           int64      `json:"price"`
	Status          string     `json:"status"`
	RejectionReason *string    `json:"rejection_reason"`
	Category        string     `json:"category"`
	PropertyType    string     `json:"property_type"`
	TransactionType string     `json:"transaction_type"`
	Bedrooms        int        `json:"bedrooms"`
	Bathrooms       int        `json:"bathrooms"`
	Size            int        `json:"size"`
	Furnishing      string     `json:"furnishing"`
	Furnished       bool       `json:"furnished"`
	SemiFurnished   bool       `json:"semi_furnished"`
	Unfurnished     bool       `json:"unfurnished"`
	ListedByAdmin   bool       `json:"listed_by_admin"`
	AgentID         *uint      `json:"agent_id"`
	Images          []ImageDTO `json:"images"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// PublicPropertyDTO is a public list item with its ranking score.
type PublicPropertyDTO struct {
	PropertyDTO
	Priority int `json:"priority"`
}

type AgentContactDTO struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	AgencyName string `json:"agency_name"`
	Phone      string `json:"phone"`
	Whatsapp   string `json:"whatsapp"`
	Verified   bool   `json:"verified"`
}

type PropertyDetailDTO struct {
	PropertyDTO
	DescriptionHTML string           `json:"description_html"`
	Agent           *AgentContactDTO `json:"agent"`
}

func ToPropertyDTO(p *property.Property) PropertyDTO {
	d := p.Details()
	furnished, semi, unfurnished := d.Furnishing.Flags()
	return PropertyDTO{
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
		Furnished:       furnished,
		SemiFurnished:   semi,
		Unfurnished:     unfurnished,
		ListedByAdmin:   p.ListedByAdmin(),
		AgentID:         p.AgentID(),
		Images: mapper.MapSlice(p.Images(), func(i property.Image) ImageDTO {
			return ImageDTO{ID: i.ID(), URL: i.URL(), Position: i.Position()}
		}),
		CreatedAt: p.CreatedAt(),
		UpdatedAt: p.UpdatedAt(),
	}
}

func ToPropertyDTOs(props []*property.Property) []PropertyDTO {
	out := make([]PropertyDTO, 0, len(props))
	for _, p := range props {
		out = append(out, ToPropertyDTO(p))
	}
	return out
}

// ToAgentContactDTO tolerates a missing user row.
func ToAgentContactDTO(a *agent.Profile, u *user.User) *AgentContactDTO {
	if a == nil {
		return nil
	}
	c := &AgentContactDTO{
		ID:         a.ID(),
		AgencyName: a.AgencyName(),
		Phone:      a.Phone(),
		Whatsapp:   a.Whatsapp(),
		Verified:   a.Verified(),
	}
	if u != nil {
		c.Name = u.Name()
		c.Email = u.Email().String()
		if c.Phone == "" {
			c.Phone = u.Phone()
		}
	}
	return c
}
