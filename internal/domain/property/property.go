package property

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/estatery/estatery/internal/domain/property/valueobjects"
)

// Property is the listing aggregate. Status changes only through its methods,
// which keep the rejection reason set exactly when the status is REJECTED.
type Property struct {
	id              uint
	details         Details
	status          vo.Status
	rejectionReason *string
	listedByAdmin   bool
	agentID         *uint
	images          []Image
	createdAt       time.Time
	updatedAt       time.Time
}

// NewAgentListing creates a property owned by an agent, in DRAFT when draft is
// set and PENDING otherwise.
func NewAgentListing(agentID uint, d Details, draft bool, now time.Time) (*Property, error) {
	if agentID == 0 {
		return nil, fmt.Errorf("agent ID is required")
	}
	d.normalize()
	if err := d.validate(); err != nil {
		return nil, err
	}

	status := vo.StatusPending
	if draft {
		status = vo.StatusDraft
	}

	return &Property{
		details:   d,
		status:    status,
		agentID:   &agentID,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// NewAdminListing creates an admin-listed property. A nil status defaults to APPROVED.
func NewAdminListing(agentID *uint, d Details, status *vo.Status, reason *string, now time.Time) (*Property, error) {
	d.normalize()
	if err := d.validate(); err != nil {
		return nil, err
	}

	p := &Property{
		details:       d,
		status:        vo.StatusApproved,
		listedByAdmin: true,
		agentID:       agentID,
		createdAt:     now,
		updatedAt:     now,
	}
	if status != nil {
		if err := p.setStatus(*status, reason); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Reconstruct rebuilds a property from persistence.
func Reconstruct(
	id uint,
	d Details,
	status vo.Status,
	rejectionReason *string,
	listedByAdmin bool,
	agentID *uint,
	images []Image,
	createdAt, updatedAt time.Time,
) (*Property, error) {
	if id == 0 {
		return nil, fmt.Errorf("property ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status %q", status)
	}
	if status != vo.StatusRejected {
		rejectionReason = nil
	}

	return &Property{
		id:              id,
		details:         d,
		status:          status,
		rejectionReason: rejectionReason,
		listedByAdmin:   listedByAdmin,
		agentID:         agentID,
		images:          images,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}, nil
}

// EnsureEditable fails with ErrPropertySold once the property is SOLD.
func (p *Property) EnsureEditable() error {
	if p.status.IsTerminal() {
		return ErrPropertySold
	}
	return nil
}

// ApplyPatch updates listing content. The status is not affected.
func (p *Property) ApplyPatch(patch Patch, now time.Time) error {
	if err := p.EnsureEditable(); err != nil {
		return err
	}
	d := patch.applyTo(p.details)
	d.normalize()
	if err := d.validate(); err != nil {
		return err
	}
	p.details = d
	p.updatedAt = now
	return nil
}

// Submit sends a DRAFT or REJECTED listing for review.
func (p *Property) Submit(now time.Time) error {
	return p.transition(vo.StatusPending, nil, now)
}

// Approve publishes a PENDING listing.
func (p *Property) Approve(now time.Time) error {
	return p.transition(vo.StatusApproved, nil, now)
}

// Reject sends a PENDING listing back to the agent with a reason.
func (p *Property) Reject(reason string, now time.Time) error {
	return p.transition(vo.StatusRejected, &reason, now)
}

// MarkSold closes an APPROVED listing. SOLD is terminal.
func (p *Property) MarkSold(now time.Time) error {
	return p.transition(vo.StatusSold, nil, now)
}

// AssignStatus is the admin path: any status may be set directly, except that
// a SOLD property cannot change and REJECTED needs a reason.
func (p *Property) AssignStatus(status vo.Status, reason *string, now time.Time) error {
	if err := p.EnsureEditable(); err != nil {
		return err
	}
	if err := p.setStatus(status, reason); err != nil {
		return err
	}
	p.updatedAt = now
	return nil
}

func (p *Property) transition(target vo.Status, reason *string, now time.Time) error {
	if err := p.EnsureEditable(); err != nil {
		return err
	}
	if !target.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidStatusTransition, target)
	}
	if !p.status.CanTransitionTo(target) {
		return ErrInvalidTransition(p.status, target)
	}
	if err := p.setStatus(target, reason); err != nil {
		return err
	}
	p.updatedAt = now
	return nil
}

func (p *Property) setStatus(status vo.Status, reason *string) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidStatusTransition, status)
	}
	if status == vo.StatusRejected {
		if reason == nil || strings.TrimSpace(*reason) == "" {
			return ErrRejectionReasonRequired
		}
		r := strings.TrimSpace(*reason)
		p.status = status
		p.rejectionReason = &r
		return nil
	}
	p.status = status
	p.rejectionReason = nil
	return nil
}

// ReplaceImages swaps the whole image set; images are never merged.
func (p *Property) ReplaceImages(urls []string, now time.Time) error {
	if err := p.EnsureEditable(); err != nil {
		return err
	}
	images := make([]Image, 0, len(urls))
	for i, u := range urls {
		images = append(images, Image{url: u, position: i})
	}
	p.images = images
	p.updatedAt = now
	return nil
}

// IsOwnedBy compares the owning agent profile id.
func (p *Property) IsOwnedBy(agentID uint) bool {
	return p.agentID != nil && *p.agentID == agentID
}

// IsPubliclyVisible is true only for APPROVED listings.
func (p *Property) IsPubliclyVisible() bool {
	return p.status == vo.StatusApproved
}

func (p *Property) ID() uint {
	return p.id
}

func (p *Property) Details() Details {
	return p.details
}

func (p *Property) Title() string {
	return p.details.Title
}

func (p *Property) Price() int64 {
	return p.details.Price
}

func (p *Property) Status() vo.Status {
	return p.status
}

func (p *Property) RejectionReason() *string {
	return p.rejectionReason
}

func (p *Property) ListedByAdmin() bool {
	return p.listedByAdmin
}

func (p *Property) AgentID() *uint {
	return p.agentID
}

func (p *Property) Images() []Image {
	return p.images
}

func (p *Property) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Property) UpdatedAt() time.Time {
	return p.updatedAt
}

func (p *Property) Furnishing() vo.Furnishing {
	return p.details.Furnishing
}

func (p *Property) TransactionType() vo.TransactionType {
	return p.details.TransactionType
}

// SetID is called by the repository after insert.
func (p *Property) SetID(id uint) {
	p.id = id
}
