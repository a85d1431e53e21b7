package buyer

import (
	"context"

	"github.com/estatery/estatery/internal/application/buyer/dto"
	"github.com/estatery/estatery/internal/application/buyer/usecases"
	buyerdomain "github.com/estatery/estatery/internal/domain/buyer"
)

type getProfileUseCase interface {
	Execute(ctx context.Context, p *buyerdomain.Profile) (*dto.BuyerProfileDTO, error)
}

type updateProfileUseCase interface {
	Execute(ctx context.Context, cmd usecases.UpdateProfileCommand) (*dto.BuyerProfileDTO, error)
}

type savePropertyUseCase interface {
	Execute(ctx context.Context, cmd usecases.SavePropertyCommand) (*dto.SavedPropertyDTO, error)
}

type unsavePropertyUseCase interface {
	Execute(ctx context.Context, cmd usecases.SavePropertyCommand) error
}

type listSavedUseCase interface {
	Execute(ctx context.Context, buyerID uint) ([]dto.SavedPropertyDTO, error)
}

type purchaseUseCase interface {
	Execute(ctx context.Context, cmd usecases.PurchasePropertyCommand) (*dto.PurchaseDTO, error)
}

type listPurchasesUseCase interface {
	Execute(ctx context.Context, buyerID uint) ([]dto.PurchaseDTO, error)
}

type contactAgentUseCase interface {
	Execute(ctx context.Context, cmd usecases.ContactAgentCommand) (*dto.ContactResultDTO, error)
}
