package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estatery/estatery/internal/application/testutil"
	"github.com/estatery/estatery/internal/domain/subscription"
	"github.com/estatery/estatery/internal/shared/authorization"
	"github.com/estatery/estatery/internal/shared/biztime"
	"github.com/estatery/estatery/internal/shared/config"
	"github.com/estatery/estatery/internal/shared/errors"
	"github.com/estatery/estatery/internal/shared/logger"
)

func TestAgentAccessGate(t *testing.T) {
	ctx := context.Background()
	repos := testutil.NewRepos(t)
	now := biztime.NowUTC()
	uc := NewAgentAccessUseCase(repos.Agents, repos.Subscriptions, logger.NewNop())

	t.Run("trial running", func(t *testing.T) {
		u, _ := repos.CreateAgent(t, "trial@example.com", now.Add(time.Hour))
		a, err := uc.Resolve(ctx, u.ID())
		require.NoError(t, err)
		assert.NoError(t, uc.AuthorizeWrite(ctx, a))

		d, err := uc.Decide(ctx, a)
		require.NoError(t, err)
		assert.Equal(t, subscription.StatusTrial, d.Status)
	})

	t.Run("trial over", func(t *testing.T) {
		u, _ := repos.CreateAgent(t, "late@example.com", now.Add(-time.Second))
		a, err := uc.Resolve(ctx, u.ID())
		require.NoError(t, err)

		err = uc.AuthorizeWrite(ctx, a)
		require.True(t, errors.IsPaymentRequiredError(err))
		appErr := errors.GetAppError(err)
		assert.Equal(t, 402, appErr.Code)
		assert.Equal(t, "EXPIRED", appErr.Meta["status"])
		assert.NotNil(t, appErr.Meta["trial_ends_at"])
		assert.NotContains(t, appErr.Meta, "expires_at")
	})

	t.Run("paid plan after trial", func(t *testing.T) {
		u, a := repos.CreateAgent(t, "paid@example.com", now.Add(-time.Hour))
		repos.Subscribe(t, a.ID(), subscription.PlanBasic, now.Add(time.Hour))
		resolved, err := uc.Resolve(ctx, u.ID())
		require.NoError(t, err)
		assert.NoError(t, uc.AuthorizeWrite(ctx, resolved))
	})

	t.Run("lapsed plan reports expiry", func(t *testing.T) {
		u, a := repos.CreateAgent(t, "lapsed@example.com", now.Add(-time.Hour))
		repos.Subscribe(t, a.ID(), subscription.PlanPremium, now.Add(-time.Minute))
		resolved, err := uc.Resolve(ctx, u.ID())
		require.NoError(t, err)
		err = uc.AuthorizeWrite(ctx, resolved)
		require.True(t, errors.IsPaymentRequiredError(err))
		assert.Contains(t, errors.GetAppError(err).Meta, "expires_at")
	})

	t.Run("suspended agent", func(t *testing.T) {
		u, a := repos.CreateAgent(t, "susp@example.com", now.Add(time.Hour))
		a.SetSuspended(true, now)
		require.NoError(t, repos.Agents.Update(ctx, a))
		resolved, err := uc.Resolve(ctx, u.ID())
		require.NoError(t, err)
		assert.True(t, errors.IsForbiddenError(uc.AuthorizeWrite(ctx, resolved)))
	})

	t.Run("no profile", func(t *testing.T) {
		u := repos.CreateUser(t, "buyer@example.com", "Buyer", authorization.RoleBuyer)
		_, err := uc.Resolve(ctx, u.ID())
		assert.True(t, errors.IsForbiddenError(err))
	})
}

func TestListPlans(t *testing.T) {
	plans := NewListPlansUseCase(config.SubscriptionConfig{
		PlanDurationDays: 30,
		Currency:         "NGN",
		Plans:            config.PlanPricing{Basic: 500000, Premium: 1500000},
	}).Execute()

	require.Len(t, plans, 3)
	assert.Equal(t, "FREE", plans[0].Plan)
	assert.Zero(t, plans[0].Price)
	assert.Zero(t, plans[0].DurationDays)
	assert.Equal(t, int64(500000), plans[1].Price)
	assert.Equal(t, 30, plans[2].DurationDays)
	assert.Equal(t, 3, plans[2].Priority)
}

func TestAssignSubscription(t *testing.T) {
	ctx := context.Background()
	repos := testutil.NewRepos(t)
	now := biztime.NowUTC()
	uc := NewAssignSubscriptionUseCase(repos.Agents, repos.Users, repos.Subscriptions, repos.Tx, 14*24*time.Hour, logger.NewNop())
	_, a := repos.CreateAgent(t, "assign@example.com", now)

	days := 30
	out, err := uc.Execute(ctx, AssignSubscriptionCommand{AgentID: a.ID(), Plan: "basic", DurationDays: &days})
	require.NoError(t, err)
	assert.Equal(t, "BASIC", out.Plan)
	assert.True(t, out.Active)
	require.NotNil(t, out.ExpiresAt)
	assert.WithinDuration(t, now.Add(30*24*time.Hour), *out.ExpiresAt, time.Minute)

	expires := now.Add(48 * time.Hour)
	again, err := uc.Execute(ctx, AssignSubscriptionCommand{AgentID: a.ID(), Plan: "PREMIUM", ExpiresAt: &expires})
	require.NoError(t, err)
	assert.Equal(t, out.ID, again.ID, "one subscription per agent")
	assert.Equal(t, "PREMIUM", again.Plan)

	_, err = uc.Execute(ctx, AssignSubscriptionCommand{AgentID: a.ID(), Plan: "PRO"})
	assert.True(t, errors.IsValidationError(err))

	_, err = uc.Execute(ctx, AssignSubscriptionCommand{AgentID: a.ID(), Plan: "BASIC", ExpiresAt: &expires, DurationDays: &days})
	assert.True(t, errors.IsValidationError(err))

	_, err = uc.Execute(ctx, AssignSubscriptionCommand{AgentID: 999, Plan: "BASIC"})
	assert.True(t, errors.IsNotFoundError(err))

	t.Run("provisions agent for a user", func(t *testing.T) {
		u := repos.CreateUser(t, "newagent@example.com", "New", authorization.RoleBuyer)
		out, err := uc.Execute(ctx, AssignSubscriptionCommand{UserID: u.ID(), Plan: "FREE"})
		require.NoError(t, err)
		assert.False(t, out.Active)

		profile, err := repos.Agents.GetByUserID(ctx, u.ID())
		require.NoError(t, err)
		assert.Equal(t, profile.ID(), out.AgentID)

		stored, err := repos.Users.GetByID(ctx, u.ID())
		require.NoError(t, err)
		assert.True(t, stored.HasRole(authorization.RoleAgent))
		assert.True(t, stored.HasRole(authorization.RoleBuyer))
	})
}

func TestListSubscriptions(t *testing.T) {
	repos := testutil.NewRepos(t)
	now := biztime.NowUTC()
	_, a := repos.CreateAgent(t, "one@example.com", now)
	_, b := repos.CreateAgent(t, "two@example.com", now)
	repos.Subscribe(t, a.ID(), subscription.PlanBasic, now.Add(time.Hour))
	repos.Subscribe(t, b.ID(), subscription.PlanPremium, now.Add(-time.Hour))

	page, err := NewListSubscriptionsUseCase(repos.Subscriptions, logger.NewNop()).Execute(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)
	active := map[uint]bool{}
	for _, s := range page.Items {
		active[s.AgentID] = s.Active
	}
	assert.True(t, active[a.ID()])
	assert.False(t, active[b.ID()])
}
