package agent

import (
	"context"

	agentdto "github.com/estatery/estatery/internal/application/agent/dto"
	agentusecases "github.com/estatery/estatery/internal/application/agent/usecases"
	commondto "github.com/estatery/estatery/internal/application/common/dto"
	propertydto "github.com/estatery/estatery/internal/application/property/dto"
	propertyusecases "github.com/estatery/estatery/internal/application/property/usecases"
	agentdomain "github.com/estatery/estatery/internal/domain/agent"
)

type dashboardUseCase interface {
	Execute(ctx context.Context, a *agentdomain.Profile) (*agentdto.DashboardDTO, error)
}

type getProfileUseCase interface {
	Execute(ctx context.Context, agentID uint) (*agentdto.AgentProfileDTO, error)
}

type updateProfileUseCase interface {
	Execute(ctx context.Context, cmd agentusecases.UpdateProfileCommand) (*agentdto.AgentProfileDTO, error)
}

type listPropertiesUseCase interface {
	Execute(ctx context.Context, q propertyusecases.ListPropertiesQuery) (*commondto.Page[propertydto.PropertyDTO], error)
}

type createPropertyUseCase interface {
	Execute(ctx context.Context, cmd propertyusecases.CreateAgentPropertyCommand) (*propertydto.PropertyDTO, error)
}

type updatePropertyUseCase interface {
	Execute(ctx context.Context, cmd propertyusecases.UpdateAgentPropertyCommand) (*propertydto.PropertyDTO, error)
}

type deletePropertyUseCase interface {
	Execute(ctx context.Context, cmd propertyusecases.DeletePropertyCommand) error
}

type markSoldUseCase interface {
	Execute(ctx context.Context, cmd propertyusecases.MarkSoldCommand) (*propertydto.PropertyDTO, error)
}
