package handlers

import (
	"context"

	commondto "github.com/estatery/estatery/internal/application/common/dto"
	"github.com/estatery/estatery/internal/application/property/dto"
	"github.com/estatery/estatery/internal/application/property/usecases"
)

type listPublicPropertiesUseCase interface {
	Execute(ctx context.Context, q usecases.ListPublicPropertiesQuery) (*commondto.Page[dto.PublicPropertyDTO], error)
}

type getPublicPropertyUseCase interface {
	Execute(ctx context.Context, propertyID uint) (*dto.PropertyDetailDTO, error)
}
