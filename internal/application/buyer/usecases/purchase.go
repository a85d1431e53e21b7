package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/estatery/estatery/internal/application/buyer/dto"
	"github.com/estatery/estatery/internal/application/common"
	propertydto "github.com/estatery/estatery/internal/application/property/dto"
	"github.com/estatery/estatery/internal/domain/agent"
	"github.com/estatery/estatery/internal/domain/buyer"
	"github.com/estatery/estatery/internal/domain/property"
	vo "github.com/estatery/estatery/internal/domain/property/valueobjects"
	"github.com/estatery/estatery/internal/domain/user"
	"github.com/estatery/estatery/internal/infrastructure/email"
	"github.com/estatery/estatery/internal/shared/biztime"
	"github.com/estatery/estatery/internal/shared/goroutine"
	"github.com/estatery/estatery/internal/shared/logger"
)

type PurchasePropertyCommand struct {
	Buyer      *buyer.Profile
	PropertyID uint
}

type PurchasePropertyUseCase struct {
	propertyRepo property.Repository
	purchaseRepo buyer.PurchaseRepository
	agentRepo    agent.Repository
	userRepo     user.Repository
	txManager    TransactionManager
	notifier     AgentNotifier
	currency     string
	logger       logger.Interface
}

func NewPurchasePropertyUseCase(
	propertyRepo property.Repository,
	purchaseRepo buyer.PurchaseRepository,
	agentRepo agent.Repository,
	userRepo user.Repository,
	txManager TransactionManager,
	notifier AgentNotifier,
	currency string,
	logger logger.Interface,
) *PurchasePropertyUseCase {
	return &PurchasePropertyUseCase{
		propertyRepo: propertyRepo,
		purchaseRepo: purchaseRepo,
		agentRepo:    agentRepo,
		userRepo:     userRepo,
		txManager:    txManager,
		notifier:     notifier,
		currency:     currency,
		logger:       logger,
	}
}

// Execute flips the property from APPROVED to SOLD and records the purchase in
// one transaction. Of concurrent buyers exactly one wins; the rest get 409.
func (uc *PurchasePropertyUseCase) Execute(ctx context.Context, cmd PurchasePropertyCommand) (*dto.PurchaseDTO, error) {
	var (
		p        *property.Property
		purchase *buyer.Purchase
	)

	err := uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		p, err = uc.propertyRepo.GetByID(ctx, cmd.PropertyID)
		if err != nil {
			return err
		}
		if p.Status() != vo.StatusApproved {
			return property.ErrNotPurchasable
		}

		sold, err := uc.propertyRepo.MarkSoldIfApproved(ctx, p.ID())
		if err != nil {
			return err
		}
		if !sold {
			return property.ErrNotPurchasable
		}

		now := biztime.NowUTC()
		purchase = &buyer.Purchase{
			BuyerID:    cmd.Buyer.ID(),
			PropertyID: p.ID(),
			Price:      p.Price(),
			CreatedAt:  now,
		}
		if err := uc.purchaseRepo.Create(ctx, purchase); err != nil {
			return err
		}
		return p.MarkSold(now)
	})
	if err != nil {
		if isExpected(err) {
			uc.logger.Warnw("purchase refused", "property_id", cmd.PropertyID, "buyer_id", cmd.Buyer.ID(), "error", err)
		} else {
			uc.logger.Errorw("failed to purchase property", "property_id", cmd.PropertyID, "buyer_id", cmd.Buyer.ID(), "error", err)
		}
		return nil, common.TranslateError(err)
	}

	uc.logger.Infow("property purchased", "property_id", p.ID(), "buyer_id", cmd.Buyer.ID(), "price", purchase.Price)
	uc.notifyAgent(ctx, p, cmd.Buyer)

	pd := propertydto.ToPropertyDTO(p)
	return &dto.PurchaseDTO{
		ID:          purchase.ID,
		PropertyID:  p.ID(),
		Price:       purchase.Price,
		PurchasedAt: purchase.CreatedAt,
		Property:    &pd,
	}, nil
}

func isExpected(err error) bool {
	return stderrors.Is(err, property.ErrNotPurchasable) ||
		stderrors.Is(err, property.ErrPropertyNotFound) ||
		stderrors.Is(err, buyer.ErrAlreadyPurchased)
}

func (uc *PurchasePropertyUseCase) notifyAgent(ctx context.Context, p *property.Property, b *buyer.Profile) {
	to, name, ok := agentRecipient(ctx, uc.agentRepo, uc.userRepo, p, uc.logger)
	if !ok {
		return
	}
	notice := email.PurchaseNotice{
		PropertyTitle: p.Title(),
		Price:         p.Price(),
		Currency:      uc.currency,
	}
	if bu, err := uc.userRepo.GetByID(ctx, b.UserID()); err == nil {
		notice.BuyerName, notice.BuyerEmail = bu.Name(), bu.Email().String()
	}

	goroutine.SafeGo(uc.logger, "purchase-notification", func() {
		if err := uc.notifier.SendPurchaseEmail(to, name, notice); err != nil {
			uc.logger.Warnw("failed to send purchase email", "property_id", p.ID(), "error", err)
		}
	})
}

// agentRecipient looks up the owning agent's address. Missing agents or
// lookup failures skip the notification.
func agentRecipient(ctx context.Context, agentRepo agent.Repository, userRepo user.Repository, p *property.Property, log logger.Interface) (string, string, bool) {
	if p.AgentID() == nil {
		return "", "", false
	}
	a, err := agentRepo.GetByID(ctx, *p.AgentID())
	if err != nil {
		log.Warnw("notification skipped: agent lookup failed", "property_id", p.ID(), "error", err)
		return "", "", false
	}
	u, err := userRepo.GetByID(ctx, a.UserID())
	if err != nil {
		log.Warnw("notification skipped: user lookup failed", "property_id", p.ID(), "error", err)
		return "", "", false
	}
	return u.Email().String(), u.Name(), true
}

type ListPurchasesUseCase struct {
	purchaseRepo buyer.PurchaseRepository
	propertyRepo property.Repository
	logger       logger.Interface
}

func NewListPurchasesUseCase(purchaseRepo buyer.PurchaseRepository, propertyRepo property.Repository, logger logger.Interface) *ListPurchasesUseCase {
	return &ListPurchasesUseCase{purchaseRepo: purchaseRepo, propertyRepo: propertyRepo, logger: logger}
}

func (uc *ListPurchasesUseCase) Execute(ctx context.Context, buyerID uint) ([]dto.PurchaseDTO, error) {
	purchases, err := uc.purchaseRepo.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}

	ids := make([]uint, 0, len(purchases))
	for _, p := range purchases {
		ids = append(ids, p.PropertyID)
	}
	props, err := propertiesByID(ctx, uc.propertyRepo, ids)
	if err != nil {
		return nil, err
	}

	out := make([]dto.PurchaseDTO, 0, len(purchases))
	for _, p := range purchases {
		out = append(out, dto.PurchaseDTO{
			ID:          p.ID,
			PropertyID:  p.PropertyID,
			Price:       p.Price,
			PurchasedAt: p.CreatedAt,
			Property:    props[p.PropertyID],
		})
	}
	return out, nil
}
