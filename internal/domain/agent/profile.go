package agent

import (
	"fmt"
	"strings"
	"time"
)

// Profile is the seller side of a user. Its trial window starts when the
// profile is provisioned.
type Profile struct {
	id             uint
	userID         uint
	agencyName     string
	bio            string
	phone          string
	whatsapp       string
	verified       bool
	suspended      bool
	trialStartedAt *time.Time
	trialEndsAt    *time.Time
	createdAt      time.Time
	updatedAt      time.Time
}

func NewProfile(userID uint, trial time.Duration, now time.Time) (*Profile, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	p := &Profile{userID: userID, createdAt: now, updatedAt: now}
	if trial > 0 {
		start, end := now, now.Add(trial)
		p.trialStartedAt = &start
		p.trialEndsAt = &end
	}
	return p, nil
}

// ProfileData carries persisted fields when rebuilding a profile.
type ProfileData struct {
	AgencyName     string
	Bio            string
	Phone          string
	Whatsapp       string
	Verified       bool
	Suspended      bool
	TrialStartedAt *time.Time
	TrialEndsAt    *time.Time
}

func ReconstructProfile(id, userID uint, d ProfileData, createdAt, updatedAt time.Time) (*Profile, error) {
	if id == 0 {
		return nil, fmt.Errorf("agent profile ID cannot be zero")
	}
	return &Profile{
		id:             id,
		userID:         userID,
		agencyName:     d.AgencyName,
		bio:            d.Bio,
		phone:          d.Phone,
		whatsapp:       d.Whatsapp,
		verified:       d.Verified,
		suspended:      d.Suspended,
		trialStartedAt: d.TrialStartedAt,
		trialEndsAt:    d.TrialEndsAt,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

// Patch holds optional profile edits.
type Patch struct {
	AgencyName *string
	Bio        *string
	Phone      *string
	Whatsapp   *string
}

func (p *Profile) Apply(patch Patch, now time.Time) {
	if patch.AgencyName != nil {
		p.agencyName = strings.TrimSpace(*patch.AgencyName)
	}
	if patch.Bio != nil {
		p.bio = strings.TrimSpace(*patch.Bio)
	}
	if patch.Phone != nil {
		p.phone = strings.TrimSpace(*patch.Phone)
	}
	if patch.Whatsapp != nil {
		p.whatsapp = strings.TrimSpace(*patch.Whatsapp)
	}
	p.updatedAt = now
}

func (p *Profile) SetVerified(v bool, now time.Time) {
	p.verified = v
	p.updatedAt = now
}

func (p *Profile) SetSuspended(v bool, now time.Time) {
	p.suspended = v
	p.updatedAt = now
}

// ContactNumber prefers the WhatsApp number over the phone number.
func (p *Profile) ContactNumber() string {
	if p.whatsapp != "" {
		return p.whatsapp
	}
	return p.phone
}

func (p *Profile) ID() uint {
	return p.id
}

func (p *Profile) UserID() uint {
	return p.userID
}

func (p *Profile) AgencyName() string {
	return p.agencyName
}

func (p *Profile) Bio() string {
	return p.bio
}

func (p *Profile) Phone() string {
	return p.phone
}

func (p *Profile) Whatsapp() string {
	return p.whatsapp
}

func (p *Profile) Verified() bool {
	return p.verified
}

func (p *Profile) Suspended() bool {
	return p.suspended
}

func (p *Profile) TrialStartedAt() *time.Time {
	return p.trialStartedAt
}

func (p *Profile) TrialEndsAt() *time.Time {
	return p.trialEndsAt
}

func (p *Profile) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Profile) UpdatedAt() time.Time {
	return p.updatedAt
}

func (p *Profile) SetID(id uint) {
	p.id = id
}
