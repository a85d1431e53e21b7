package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estatery/estatery/internal/domain/property"
)

var now = time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

func ptr(t time.Time) *time.Time {
	return &t
}

func newSub(t *testing.T, plan Plan, expiresAt *time.Time) *Subscription {
	t.Helper()
	s, err := NewSubscription(1, plan, expiresAt, now)
	require.NoError(t, err)
	return s
}

func TestParsePlan(t *testing.T) {
	p, err := ParsePlan("premium")
	require.NoError(t, err)
	assert.Equal(t, PlanPremium, p)

	_, err = ParsePlan("PRO")
	assert.ErrorIs(t, err, ErrInvalidPlan)
}

func TestIsActive(t *testing.T) {
	assert.False(t, (*Subscription)(nil).IsActive(now))
	assert.False(t, newSub(t, PlanBasic, nil).IsActive(now))
	assert.False(t, newSub(t, PlanBasic, ptr(now)).IsActive(now), "expiry equal to now is not active")
	assert.True(t, newSub(t, PlanBasic, ptr(now.Add(time.Second))).IsActive(now))
}

func TestPriorityAt(t *testing.T) {
	tests := []struct {
		name string
		sub  *Subscription
		want int
	}{
		{"no subscription", nil, property.PriorityDefault},
		{"active premium", newSub(t, PlanPremium, ptr(now.Add(time.Hour))), property.PriorityPremium},
		{"active basic", newSub(t, PlanBasic, ptr(now.Add(time.Hour))), property.PriorityBasic},
		{"expired premium", newSub(t, PlanPremium, ptr(now.Add(-time.Hour))), property.PriorityDefault},
		{"premium without expiry", newSub(t, PlanPremium, nil), property.PriorityDefault},
		{"active free", newSub(t, PlanFree, ptr(now.Add(time.Hour))), property.PriorityDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PriorityAt(tt.sub, now))
		})
	}
}

func TestExtend(t *testing.T) {
	period := 30 * 24 * time.Hour

	t.Run("same active plan stacks", func(t *testing.T) {
		current := now.Add(5 * 24 * time.Hour)
		s := newSub(t, PlanBasic, ptr(current))
		require.NoError(t, s.Extend(PlanBasic, period, now))
		assert.Equal(t, current.Add(period), *s.ExpiresAt())
	})

	t.Run("plan change starts now", func(t *testing.T) {
		s := newSub(t, PlanBasic, ptr(now.Add(5*24*time.Hour)))
		require.NoError(t, s.Extend(PlanPremium, period, now))
		assert.Equal(t, PlanPremium, s.Plan())
		assert.Equal(t, now.Add(period), *s.ExpiresAt())
	})

	t.Run("expired plan starts now", func(t *testing.T) {
		s := newSub(t, PlanBasic, ptr(now.Add(-time.Hour)))
		require.NoError(t, s.Extend(PlanBasic, period, now))
		assert.Equal(t, now.Add(period), *s.ExpiresAt())
	})

	t.Run("rejects zero period", func(t *testing.T) {
		s := newSub(t, PlanBasic, nil)
		assert.ErrorIs(t, s.Extend(PlanBasic, 0, now), ErrInvalidExpiry)
	})
}

func TestEvaluate(t *testing.T) {
	trialEnds := now.Add(24 * time.Hour)

	t.Run("trial allows writes until the instant it ends", func(t *testing.T) {
		before := Evaluate(nil, &trialEnds, trialEnds.Add(-time.Nanosecond))
		assert.True(t, before.Allowed)
		assert.Equal(t, StatusTrial, before.Status)

		at := Evaluate(nil, &trialEnds, trialEnds)
		assert.False(t, at.Allowed)
		assert.Equal(t, StatusExpired, at.Status)
		assert.Equal(t, &trialEnds, at.TrialEndsAt)
	})

	t.Run("active subscription allows after trial", func(t *testing.T) {
		sub := newSub(t, PlanBasic, ptr(trialEnds.Add(48*time.Hour)))
		d := Evaluate(sub, &trialEnds, trialEnds.Add(time.Hour))
		assert.True(t, d.Allowed)
		assert.Equal(t, StatusActive, d.Status)
		assert.Equal(t, PlanBasic, d.Plan)
	})

	t.Run("expired subscription and trial denied", func(t *testing.T) {
		sub := newSub(t, PlanPremium, ptr(now.Add(-time.Hour)))
		d := Evaluate(sub, ptr(now.Add(-48*time.Hour)), now)
		assert.False(t, d.Allowed)
		assert.Equal(t, StatusExpired, d.Status)
		assert.NotNil(t, d.ExpiresAt)
	})

	t.Run("no trial no subscription denied", func(t *testing.T) {
		d := Evaluate(nil, nil, now)
		assert.False(t, d.Allowed)
		assert.Equal(t, PlanFree, d.Plan)
	})
}
