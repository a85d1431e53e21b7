package admin

import (
	"context"

	admindto "github.com/estatery/estatery/internal/application/admin/dto"
	agentdto "github.com/estatery/estatery/internal/application/agent/dto"
	agentusecases "github.com/estatery/estatery/internal/application/agent/usecases"
	buyerdto "github.com/estatery/estatery/internal/application/buyer/dto"
	commondto "github.com/estatery/estatery/internal/application/common/dto"
	propertydto "github.com/estatery/estatery/internal/application/property/dto"
	propertyusecases "github.com/estatery/estatery/internal/application/property/usecases"
	subdto "github.com/estatery/estatery/internal/application/subscription/dto"
	subusecases "github.com/estatery/estatery/internal/application/subscription/usecases"
)

type dashboardUseCase interface {
	Execute(ctx context.Context) (*admindto.AdminDashboardResponse, error)
}

type listAgentsUseCase interface {
	Execute(ctx context.Context, q agentusecases.ListAgentsQuery) (*commondto.Page[agentdto.AgentProfileDTO], error)
}

type moderateAgentUseCase interface {
	Execute(ctx context.Context, cmd agentusecases.ModerateAgentCommand) (*agentdto.AgentProfileDTO, error)
}

type listBuyersUseCase interface {
	Execute(ctx context.Context, page, pageSize int) (*commondto.Page[buyerdto.BuyerProfileDTO], error)
}

type listPropertiesUseCase interface {
	Execute(ctx context.Context, q propertyusecases.ListPropertiesQuery) (*commondto.Page[propertydto.PropertyDTO], error)
}

type createPropertyUseCase interface {
	Execute(ctx context.Context, cmd propertyusecases.CreateAdminPropertyCommand) (*propertydto.PropertyDTO, error)
}

type updatePropertyUseCase interface {
	Execute(ctx context.Context, cmd propertyusecases.UpdateAdminPropertyCommand) (*propertydto.PropertyDTO, error)
}

type deletePropertyUseCase interface {
	Execute(ctx context.Context, cmd propertyusecases.DeletePropertyCommand) error
}

type reviewPropertyUseCase interface {
	Execute(ctx context.Context, cmd propertyusecases.ReviewPropertyCommand) (*propertydto.PropertyDTO, error)
}

type listSubscriptionsUseCase interface {
	Execute(ctx context.Context, page, pageSize int) (*commondto.Page[subdto.SubscriptionDTO], error)
}

type assignSubscriptionUseCase interface {
	Execute(ctx context.Context, cmd subusecases.AssignSubscriptionCommand) (*subdto.SubscriptionDTO, error)
}
