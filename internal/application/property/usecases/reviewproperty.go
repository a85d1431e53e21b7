package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/estatery/estatery/internal/application/common"
	"github.com/estatery/estatery/internal/application/property/dto"
	"github.com/estatery/estatery/internal/domain/agent"
	"github.com/estatery/estatery/internal/domain/property"
	vo "github.com/estatery/estatery/internal/domain/property/valueobjects"
	"github.com/estatery/estatery/internal/domain/user"
	"github.com/estatery/estatery/internal/infrastructure/email"
	"github.com/estatery/estatery/internal/shared/biztime"
	"github.com/estatery/estatery/internal/shared/errors"
	"github.com/estatery/estatery/internal/shared/goroutine"
	"github.com/estatery/estatery/internal/shared/logger"
)

const (
	ReviewApprove = "approve"
	ReviewReject  = "reject"
)

type ReviewPropertyCommand struct {
	PropertyID uint
	Action     string
	Reason     string
}

type ReviewPropertyUseCase struct {
	propertyRepo property.Repository
	agentRepo    agent.Repository
	userRepo     user.Repository
	notifier     ReviewNotifier
	logger       logger.Interface
}

func NewReviewPropertyUseCase(
	propertyRepo property.Repository,
	agentRepo agent.Repository,
	userRepo user.Repository,
	notifier ReviewNotifier,
	logger logger.Interface,
) *ReviewPropertyUseCase {
	return &ReviewPropertyUseCase{
		propertyRepo: propertyRepo,
		agentRepo:    agentRepo,
		userRepo:     userRepo,
		notifier:     notifier,
		logger:       logger,
	}
}

// Execute approves or rejects a PENDING listing and tells the agent by email.
func (uc *ReviewPropertyUseCase) Execute(ctx context.Context, cmd ReviewPropertyCommand) (*dto.PropertyDTO, error) {
	action := strings.ToLower(strings.TrimSpace(cmd.Action))
	if action != ReviewApprove && action != ReviewReject {
		return nil, errors.NewValidationError("action must be approve or reject")
	}

	p, err := uc.propertyRepo.GetByID(ctx, cmd.PropertyID)
	if err != nil {
		return nil, common.TranslateError(err)
	}

	now := biztime.NowUTC()
	if action == ReviewApprove {
		err = p.Approve(now)
	} else {
		err = p.Reject(cmd.Reason, now)
	}
	if err != nil {
		return nil, common.TranslateError(err)
	}

	if err := uc.propertyRepo.Update(ctx, p, false); err != nil {
		uc.logger.Errorw("failed to save review", "property_id", p.ID(), "error", err)
		return nil, fmt.Errorf("failed to save review: %w", err)
	}

	uc.logger.Infow("property reviewed", "property_id", p.ID(), "status", p.Status())
	uc.notify(ctx, p)

	out := dto.ToPropertyDTO(p)
	return &out, nil
}

func (uc *ReviewPropertyUseCase) notify(ctx context.Context, p *property.Property) {
	if p.AgentID() == nil {
		return
	}
	a, err := uc.agentRepo.GetByID(ctx, *p.AgentID())
	if err != nil {
		uc.logger.Warnw("review notification skipped: agent lookup failed", "property_id", p.ID(), "error", err)
		return
	}
	u, err := uc.userRepo.GetByID(ctx, a.UserID())
	if err != nil {
		uc.logger.Warnw("review notification skipped: user lookup failed", "property_id", p.ID(), "error", err)
		return
	}

	notice := email.ReviewNotice{
		PropertyTitle: p.Title(),
		Approved:      p.Status() == vo.StatusApproved,
	}
	if r := p.RejectionReason(); r != nil {
		notice.Reason = *r
	}
	to, name := u.Email().String(), u.Name()

	goroutine.SafeGo(uc.logger, "review-notification", func() {
		if err := uc.notifier.SendReviewOutcomeEmail(to, name, notice); err != nil {
			uc.logger.Warnw("failed to send review email", "property_id", p.ID(), "error", err)
		}
	})
}
