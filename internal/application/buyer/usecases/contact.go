package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/estatery/estatery/internal/application/buyer/dto"
	"github.com/estatery/estatery/internal/application/common"
	"github.com/estatery/estatery/internal/domain/agent"
	"github.com/estatery/estatery/internal/domain/buyer"
	"github.com/estatery/estatery/internal/domain/property"
	"github.com/estatery/estatery/internal/domain/user"
	"github.com/estatery/estatery/internal/infrastructure/email"
	"github.com/estatery/estatery/internal/shared/biztime"
	"github.com/estatery/estatery/internal/shared/errors"
	"github.com/estatery/estatery/internal/shared/goroutine"
	"github.com/estatery/estatery/internal/shared/logger"
)

type ContactAgentCommand struct {
	BuyerID     uint
	BuyerUserID uint
	PropertyID  uint
	Message     string
	Channel     string
}

type ContactAgentUseCase struct {
	leadRepo     buyer.LeadRepository
	propertyRepo property.Repository
	agentRepo    agent.Repository
	userRepo     user.Repository
	notifier     AgentNotifier
	window       time.Duration
	logger       logger.Interface
}

func NewContactAgentUseCase(
	leadRepo buyer.LeadRepository,
	propertyRepo property.Repository,
	agentRepo agent.Repository,
	userRepo user.Repository,
	notifier AgentNotifier,
	window time.Duration,
	logger logger.Interface,
) *ContactAgentUseCase {
	return &ContactAgentUseCase{
		leadRepo:     leadRepo,
		propertyRepo: propertyRepo,
		agentRepo:    agentRepo,
		userRepo:     userRepo,
		notifier:     notifier,
		window:       window,
		logger:       logger,
	}
}

// Execute records a lead unless the buyer already contacted the agent about
// the property inside the dedup window, in which case the earlier lead is
// returned with Created false.
func (uc *ContactAgentUseCase) Execute(ctx context.Context, cmd ContactAgentCommand) (*dto.ContactResultDTO, error) {
	channel, err := buyer.ParseChannel(cmd.Channel)
	if err != nil {
		return nil, common.TranslateError(err)
	}

	p, err := uc.propertyRepo.GetByID(ctx, cmd.PropertyID)
	if err != nil {
		return nil, common.TranslateError(err)
	}
	if !p.IsPubliclyVisible() || p.AgentID() == nil {
		return nil, errors.NewNotFoundError("property not found")
	}

	a, err := uc.agentRepo.GetByID(ctx, *p.AgentID())
	if err != nil {
		return nil, common.TranslateError(err)
	}
	if a.Suspended() {
		return nil, errors.NewNotFoundError("property not found")
	}
	agentUser, err := uc.userRepo.GetByID(ctx, a.UserID())
	if err != nil {
		return nil, common.TranslateError(err)
	}

	text := strings.TrimSpace(cmd.Message)
	now := biztime.NowUTC()

	result := &dto.ContactResultDTO{
		AgentEmail:   agentUser.Email().String(),
		AgentPhone:   a.ContactNumber(),
		WhatsAppLink: buyer.WhatsAppLink(a.ContactNumber(), whatsAppText(text, p.Title())),
	}

	recent, err := uc.leadRepo.FindRecent(ctx, cmd.BuyerID, p.ID(), now.Add(-uc.window))
	if err != nil {
		uc.logger.Errorw("failed to look up recent lead", "buyer_id", cmd.BuyerID, "property_id", p.ID(), "error", err)
		return nil, fmt.Errorf("failed to look up recent lead: %w", err)
	}
	if recent.WithinWindow(uc.window, now) {
		result.Lead = dto.ToLeadDTO(recent)
		return result, nil
	}

	lead := &buyer.Lead{
		BuyerID:    cmd.BuyerID,
		PropertyID: p.ID(),
		AgentID:    a.ID(),
		Message:    text,
		Channel:    channel,
		CreatedAt:  now,
	}
	if err := uc.leadRepo.Create(ctx, lead); err != nil {
		uc.logger.Errorw("failed to create lead", "buyer_id", cmd.BuyerID, "property_id", p.ID(), "error", err)
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}

	uc.logger.Infow("lead created", "lead_id", lead.ID, "property_id", p.ID(), "agent_id", a.ID(), "channel", channel)
	result.Lead = dto.ToLeadDTO(lead)
	result.Created = true

	uc.notify(ctx, agentUser, p, lead, cmd.BuyerUserID)
	return result, nil
}

func (uc *ContactAgentUseCase) notify(ctx context.Context, agentUser *user.User, p *property.Property, lead *buyer.Lead, buyerUserID uint) {
	notice := email.LeadNotice{
		PropertyTitle: p.Title(),
		Channel:       string(lead.Channel),
		Text:          lead.Message,
	}
	if bu, err := uc.userRepo.GetByID(ctx, buyerUserID); err == nil {
		notice.BuyerName = bu.Name()
		notice.BuyerEmail = bu.Email().String()
		notice.BuyerPhone = bu.Phone()
	}

	to, name := agentUser.Email().String(), agentUser.Name()
	goroutine.SafeGo(uc.logger, "lead-notification", func() {
		if err := uc.notifier.SendNewLeadEmail(to, name, notice); err != nil {
			uc.logger.Warnw("failed to send lead email", "lead_id", lead.ID, "error", err)
		}
	})
}

func whatsAppText(message, title string) string {
	if message != "" {
		return message
	}
	return fmt.Sprintf("Hello, I am interested in %q listed on Estatery.", title)
}
