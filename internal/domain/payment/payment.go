package payment

import (
	"fmt"
	"time"

	"github.com/estatery/estatery/internal/domain/subscription"
)

// Payment is one gateway transaction buying a subscription period for an agent.
type Payment struct {
	id               uint
	reference        string
	agentID          uint
	plan             subscription.Plan
	amount           int64
	currency         string
	status           Status
	authorizationURL string
	gatewayResponse  map[string]any
	paidAt           *time.Time
	createdAt        time.Time
	updatedAt        time.Time
}

func NewPayment(reference string, agentID uint, plan subscription.Plan, amount int64, currency string, now time.Time) (*Payment, error) {
	if reference == "" {
		return nil, fmt.Errorf("reference is required")
	}
	if agentID == 0 {
		return nil, fmt.Errorf("agent ID is required")
	}
	if !plan.IsPaid() {
		return nil, fmt.Errorf("%w: %s cannot be purchased", subscription.ErrInvalidPlan, plan)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}
	return &Payment{
		reference: reference,
		agentID:   agentID,
		plan:      plan,
		amount:    amount,
		currency:  currency,
		status:    StatusPending,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// PaymentData carries the mutable persisted fields.
type PaymentData struct {
	Status           Status
	AuthorizationURL string
	GatewayResponse  map[string]any
	PaidAt           *time.Time
}

func ReconstructPayment(
	id uint,
	reference string,
	agentID uint,
	plan subscription.Plan,
	amount int64,
	currency string,
	d PaymentData,
	createdAt, updatedAt time.Time,
) (*Payment, error) {
	if id == 0 {
		return nil, fmt.Errorf("payment ID cannot be zero")
	}
	return &Payment{
		id:               id,
		reference:        reference,
		agentID:          agentID,
		plan:             plan,
		amount:           amount,
		currency:         currency,
		status:           d.Status,
		authorizationURL: d.AuthorizationURL,
		gatewayResponse:  d.GatewayResponse,
		paidAt:           d.PaidAt,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}, nil
}

func (p *Payment) SetAuthorizationURL(u string, now time.Time) {
	p.authorizationURL = u
	p.updatedAt = now
}

// MarkAsPaid checks the gateway amount and currency and records success.
// It reports false when the payment was already successful.
func (p *Payment) MarkAsPaid(amount int64, currency string, paidAt time.Time, raw map[string]any) (bool, error) {
	if p.status == StatusSuccess {
		return false, nil
	}
	if p.status.IsFinal() {
		return false, fmt.Errorf("%w: status is %s", ErrAlreadyFinal, p.status)
	}
	if amount != p.amount || (currency != "" && currency != p.currency) {
		return false, fmt.Errorf("%w: expected %d %s, got %d %s", ErrAmountMismatch, p.amount, p.currency, amount, currency)
	}

	p.status = StatusSuccess
	p.paidAt = &paidAt
	p.gatewayResponse = raw
	p.updatedAt = paidAt
	return true, nil
}

func (p *Payment) MarkAsFailed(reason string, raw map[string]any, now time.Time) error {
	if p.status.IsFinal() {
		return fmt.Errorf("%w: status is %s", ErrAlreadyFinal, p.status)
	}
	p.status = StatusFailed
	if raw == nil {
		raw = map[string]any{}
	}
	raw["failure_reason"] = reason
	p.gatewayResponse = raw
	p.updatedAt = now
	return nil
}

func (p *Payment) ID() uint {
	return p.id
}

func (p *Payment) Reference() string {
	return p.reference
}

func (p *Payment) AgentID() uint {
	return p.agentID
}

func (p *Payment) Plan() subscription.Plan {
	return p.plan
}

func (p *Payment) Amount() int64 {
	return p.amount
}

func (p *Payment) Currency() string {
	return p.currency
}

func (p *Payment) Status() Status {
	return p.status
}

func (p *Payment) AuthorizationURL() string {
	return p.authorizationURL
}

func (p *Payment) GatewayResponse() map[string]any {
	return p.gatewayResponse
}

func (p *Payment) PaidAt() *time.Time {
	return p.paidAt
}

func (p *Payment) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Payment) UpdatedAt() time.Time {
	return p.updatedAt
}

func (p *Payment) SetID(id uint) {
	p.id = id
}
