package usecases

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estatery/estatery/internal/application/testutil"
	"github.com/estatery/estatery/internal/domain/buyer"
	vo "github.com/estatery/estatery/internal/domain/property/valueobjects"
	"github.com/estatery/estatery/internal/infrastructure/email"
	"github.com/estatery/estatery/internal/shared/biztime"
	"github.com/estatery/estatery/internal/shared/errors"
	"github.com/estatery/estatery/internal/shared/logger"
)

func newPurchase(repos *testutil.Repos, mailer *testutil.Mailer) *PurchasePropertyUseCase {
	return NewPurchasePropertyUseCase(repos.Properties, repos.Purchases, repos.Agents, repos.Users, repos.Tx, mailer, "NGN", logger.NewNop())
}

func newContact(repos *testutil.Repos, mailer *testutil.Mailer) *ContactAgentUseCase {
	return NewContactAgentUseCase(repos.Leads, repos.Properties, repos.Agents, repos.Users, mailer, time.Hour, logger.NewNop())
}

func TestResolveBuyerProvisionsProfile(t *testing.T) {
	ctx := context.Background()
	repos := testutil.NewRepos(t)
	u := repos.CreateUser(t, "fresh@example.com", "Fresh")

	uc := NewResolveBuyerUseCase(repos.Buyers, logger.NewNop())
	first, err := uc.Execute(ctx, u.ID())
	require.NoError(t, err)
	second, err := uc.Execute(ctx, u.ID())
	require.NoError(t, err)
	assert.Equal(t, first.ID(), second.ID())
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	repos := testutil.NewRepos(t)
	_, b := repos.CreateBuyer(t, "budget@example.com")
	uc := NewUpdateProfileUseCase(repos.Buyers, repos.Users, logger.NewNop())

	lo, hi := int64(10_000_000_00), int64(50_000_000_00)
	loc := "Ikeja"
	out, err := uc.Execute(ctx, UpdateProfileCommand{Profile: b, PreferredLocation: &loc, BudgetMin: &lo, BudgetMax: &hi})
	require.NoError(t, err)
	assert.Equal(t, "Ikeja", out.PreferredLocation)
	assert.Equal(t, "budget@example.com", out.Email)

	low := int64(1)
	_, err = uc.Execute(ctx, UpdateProfileCommand{Profile: b, BudgetMax: &low})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestSavedProperties(t *testing.T) {
	ctx := context.Background()
	repos := testutil.NewRepos(t)
	now := biztime.NowUTC()
	_, a := repos.CreateAgent(t, "agent@example.com", now.Add(time.Hour))
	_, b := repos.CreateBuyer(t, "saver@example.com")
	approved := repos.CreateListing(t, a.ID(), "Approved", vo.StatusApproved, now)
	pending := repos.CreateListing(t, a.ID(), "Pending", vo.StatusPending, now)

	save := NewSavePropertyUseCase(repos.Saved, repos.Properties, logger.NewNop())
	first, err := save.Execute(ctx, SavePropertyCommand{BuyerID: b.ID(), PropertyID: approved.ID()})
	require.NoError(t, err)
	again, err := save.Execute(ctx, SavePropertyCommand{BuyerID: b.ID(), PropertyID: approved.ID()})
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	_, err = save.Execute(ctx, SavePropertyCommand{BuyerID: b.ID(), PropertyID: pending.ID()})
	assert.True(t, errors.IsNotFoundError(err))

	list, err := NewListSavedUseCase(repos.Saved, repos.Properties, logger.NewNop()).Execute(ctx, b.ID())
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Property)
	assert.Equal(t, "Approved", list[0].Property.Title)

	unsave := NewUnsavePropertyUseCase(repos.Saved, logger.NewNop())
	require.NoError(t, unsave.Execute(ctx, SavePropertyCommand{BuyerID: b.ID(), PropertyID: approved.ID()}))
	err = unsave.Execute(ctx, SavePropertyCommand{BuyerID: b.ID(), PropertyID: approved.ID()})
	assert.True(t, errors.IsNotFoundError(err))
}

func TestPurchaseProperty(t *testing.T) {
	ctx := context.Background()
	repos := testutil.NewRepos(t)
	mailer := testutil.NewMailer()
	now := biztime.NowUTC()
	_, a := repos.CreateAgent(t, "seller@example.com", now.Add(time.Hour))
	_, b := repos.CreateBuyer(t, "purchaser@example.com")
	p := repos.CreateListing(t, a.ID(), "Duplex", vo.StatusApproved, now)

	uc := newPurchase(repos, mailer)
	out, err := uc.Execute(ctx, PurchasePropertyCommand{Buyer: b, PropertyID: p.ID()})
	require.NoError(t, err)
	assert.Equal(t, p.Price(), out.Price)
	assert.Equal(t, "SOLD", out.Property.Status)

	stored, err := repos.Properties.GetByID(ctx, p.ID())
	require.NoError(t, err)
	assert.Equal(t, vo.StatusSold, stored.Status())

	mail := mailer.Wait(t)
	assert.Equal(t, "purchase", mail.Kind)
	assert.Equal(t, "seller@example.com", mail.To)
	notice := mail.Body.(email.PurchaseNotice)
	assert.Equal(t, "Duplex", notice.PropertyTitle)
	assert.Equal(t, "purchaser@example.com", notice.BuyerEmail)

	_, err = uc.Execute(ctx, PurchasePropertyCommand{Buyer: b, PropertyID: p.ID()})
	assert.True(t, errors.IsConflictError(err))

	purchases, err := NewListPurchasesUseCase(repos.Purchases, repos.Properties, logger.NewNop()).Execute(ctx, b.ID())
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	assert.Equal(t, p.ID(), purchases[0].PropertyID)
}

func TestPurchaseRequiresApprovedListing(t *testing.T) {
	ctx := context.Background()
	repos := testutil.NewRepos(t)
	now := biztime.NowUTC()
	_, a := repos.CreateAgent(t, "seller@example.com", now.Add(time.Hour))
	_, b := repos.CreateBuyer(t, "purchaser@example.com")
	pending := repos.CreateListing(t, a.ID(), "Pending", vo.StatusPending, now)

	uc := newPurchase(repos, testutil.NewMailer())
	_, err := uc.Execute(ctx, PurchasePropertyCommand{Buyer: b, PropertyID: pending.ID()})
	assert.True(t, errors.IsConflictError(err))

	_, err = uc.Execute(ctx, PurchasePropertyCommand{Buyer: b, PropertyID: 9999})
	assert.True(t, errors.IsNotFoundError(err))

	stored, err := repos.Properties.GetByID(ctx, pending.ID())
	require.NoError(t, err)
	assert.Equal(t, vo.StatusPending, stored.Status())
}

func TestConcurrentPurchaseHasOneWinner(t *testing.T) {
	ctx := context.Background()
	repos := testutil.NewRepos(t)
	now := biztime.NowUTC()
	_, a := repos.CreateAgent(t, "seller@example.com", now.Add(time.Hour))
	p := repos.CreateListing(t, a.ID(), "Contested", vo.StatusApproved, now)

	const buyers = 5
	profiles := make([]*buyer.Profile, buyers)
	for i := range profiles {
		_, profiles[i] = repos.CreateBuyer(t, "racer"+string(rune('a'+i))+"@example.com")
	}

	uc := newPurchase(repos, testutil.NewMailer())
	errs := make([]error, buyers)
	var wg sync.WaitGroup
	for i := range profiles {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(ctx, PurchasePropertyCommand{Buyer: profiles[i], PropertyID: p.ID()})
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		assert.True(t, errors.IsConflictError(err), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, wins)

	total, err := repos.Purchases.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestContactAgentDeduplicates(t *testing.T) {
	ctx := context.Background()
	repos := testutil.NewRepos(t)
	mailer := testutil.NewMailer()
	now := biztime.NowUTC()
	_, a := repos.CreateAgent(t, "lead-agent@example.com", now.Add(time.Hour))
	bu, b := repos.CreateBuyer(t, "curious@example.com")
	p := repos.CreateListing(t, a.ID(), "Terrace", vo.StatusApproved, now)

	uc := newContact(repos, mailer)
	cmd := ContactAgentCommand{BuyerID: b.ID(), BuyerUserID: bu.ID(), PropertyID: p.ID(), Message: "Is it still available?"}

	first, err := uc.Execute(ctx, cmd)
	require.NoError(t, err)
	assert.True(t, first.Created)
	assert.Equal(t, "WHATSAPP", first.Lead.Channel)
	assert.Equal(t, "https://wa.me/2348012345678?text=Is+it+still+available%3F", first.WhatsAppLink)
	assert.Equal(t, "lead-agent@example.com", first.AgentEmail)

	mail := mailer.Wait(t)
	assert.Equal(t, "lead", mail.Kind)
	assert.Equal(t, "curious@example.com", mail.Body.(email.LeadNotice).BuyerEmail)

	second, err := uc.Execute(ctx, cmd)
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.Lead.ID, second.Lead.ID)

	count, err := repos.Leads.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestContactAgentAfterWindow(t *testing.T) {
	ctx := context.Background()
	repos := testutil.NewRepos(t)
	now := biztime.NowUTC()
	_, a := repos.CreateAgent(t, "lead-agent@example.com", now.Add(time.Hour))
	bu, b := repos.CreateBuyer(t, "returning@example.com")
	p := repos.CreateListing(t, a.ID(), "Bungalow", vo.StatusApproved, now)

	old := &buyer.Lead{BuyerID: b.ID(), PropertyID: p.ID(), AgentID: a.ID(), Channel: buyer.ChannelEmail, CreatedAt: now.Add(-2 * time.Hour)}
	require.NoError(t, repos.Leads.Create(ctx, old))

	out, err := newContact(repos, testutil.NewMailer()).Execute(ctx, ContactAgentCommand{
		BuyerID: b.ID(), BuyerUserID: bu.ID(), PropertyID: p.ID(), Channel: "phone",
	})
	require.NoError(t, err)
	assert.True(t, out.Created)
	assert.NotEqual(t, old.ID, out.Lead.ID)
	assert.Equal(t, "PHONE", out.Lead.Channel)
	assert.Contains(t, out.WhatsAppLink, "Bungalow")
}

func TestContactAgentRejectsHiddenListings(t *testing.T) {
	ctx := context.Background()
	repos := testutil.NewRepos(t)
	now := biztime.NowUTC()
	_, a := repos.CreateAgent(t, "hidden@example.com", now.Add(time.Hour))
	bu, b := repos.CreateBuyer(t, "b@example.com")
	draft := repos.CreateListing(t, a.ID(), "Draft", vo.StatusDraft, now)
	live := repos.CreateListing(t, a.ID(), "Live", vo.StatusApproved, now)
	uc := newContact(repos, testutil.NewMailer())

	_, err := uc.Execute(ctx, ContactAgentCommand{BuyerID: b.ID(), BuyerUserID: bu.ID(), PropertyID: draft.ID()})
	assert.True(t, errors.IsNotFoundError(err))

	_, err = uc.Execute(ctx, ContactAgentCommand{BuyerID: b.ID(), BuyerUserID: bu.ID(), PropertyID: live.ID(), Channel: "pigeon"})
	assert.True(t, errors.IsValidationError(err))

	a.SetSuspended(true, now)
	require.NoError(t, repos.Agents.Update(ctx, a))
	_, err = uc.Execute(ctx, ContactAgentCommand{BuyerID: b.ID(), BuyerUserID: bu.ID(), PropertyID: live.ID()})
	assert.True(t, errors.IsNotFoundError(err))
}

func TestListBuyers(t *testing.T) {
	ctx := context.Background()
	repos := testutil.NewRepos(t)
	repos.CreateBuyer(t, "one@example.com")
	repos.CreateBuyer(t, "two@example.com")

	page, err := NewListBuyersUseCase(repos.Buyers, repos.Users, logger.NewNop()).Execute(ctx, 1, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)
	require.Len(t, page.Items, 1)
	assert.NotEmpty(t, page.Items[0].Email)
}
