package buyer

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estatery/estatery/internal/application/buyer/dto"
	"github.com/estatery/estatery/internal/application/buyer/usecases"
	buyerdomain "github.com/estatery/estatery/internal/domain/buyer"
	"github.com/estatery/estatery/internal/interfaces/http/handlers/testutil"
	"github.com/estatery/estatery/internal/shared/constants"
	"github.com/estatery/estatery/internal/shared/errors"
	"github.com/estatery/estatery/internal/shared/logger"
)

type mockGetProfileUC struct{}

func (mockGetProfileUC) Execute(ctx context.Context, p *buyerdomain.Profile) (*dto.BuyerProfileDTO, error) {
	return &dto.BuyerProfileDTO{ID: p.ID(), UserID: p.UserID()}, nil
}

type mockUpdateProfileUC struct {
	cmd usecases.UpdateProfileCommand
	err error
}

func (m *mockUpdateProfileUC) Execute(ctx context.Context, cmd usecases.UpdateProfileCommand) (*dto.BuyerProfileDTO, error) {
	m.cmd = cmd
	if m.err != nil {
		return nil, m.err
	}
	return &dto.BuyerProfileDTO{ID: cmd.Profile.ID()}, nil
}

type mockSaveUC struct {
	cmd usecases.SavePropertyCommand
	err error
}

func (m *mockSaveUC) Execute(ctx context.Context, cmd usecases.SavePropertyCommand) (*dto.SavedPropertyDTO, error) {
	m.cmd = cmd
	if m.err != nil {
		return nil, m.err
	}
	return &dto.SavedPropertyDTO{PropertyID: cmd.PropertyID}, nil
}

type mockUnsaveUC struct {
	cmd usecases.SavePropertyCommand
	err error
}

func (m *mockUnsaveUC) Execute(ctx context.Context, cmd usecases.SavePropertyCommand) error {
	m.cmd = cmd
	return m.err
}

type mockListSavedUC struct{}

func (mockListSavedUC) Execute(ctx context.Context, buyerID uint) ([]dto.SavedPropertyDTO, error) {
	return []dto.SavedPropertyDTO{}, nil
}

type mockPurchaseUC struct {
	cmd usecases.PurchasePropertyCommand
	err error
}

func (m *mockPurchaseUC) Execute(ctx context.Context, cmd usecases.PurchasePropertyCommand) (*dto.PurchaseDTO, error) {
	m.cmd = cmd
	if m.err != nil {
		return nil, m.err
	}
	return &dto.PurchaseDTO{ID: 1, PropertyID: cmd.PropertyID}, nil
}

type mockListPurchasesUC struct{}

func (mockListPurchasesUC) Execute(ctx context.Context, buyerID uint) ([]dto.PurchaseDTO, error) {
	return []dto.PurchaseDTO{}, nil
}

type mockContactUC struct {
	cmd     usecases.ContactAgentCommand
	created bool
	err     error
}

func (m *mockContactUC) Execute(ctx context.Context, cmd usecases.ContactAgentCommand) (*dto.ContactResultDTO, error) {
	m.cmd = cmd
	if m.err != nil {
		return nil, m.err
	}
	return &dto.ContactResultDTO{Created: m.created, WhatsAppLink: "https://wa.me/2348012345678"}, nil
}

type mocks struct {
	update   *mockUpdateProfileUC
	save     *mockSaveUC
	unsave   *mockUnsaveUC
	purchase *mockPurchaseUC
	contact  *mockContactUC
}

func newTestHandler() (*Handler, *mocks) {
	m := &mocks{
		update:   &mockUpdateProfileUC{},
		save:     &mockSaveUC{},
		unsave:   &mockUnsaveUC{},
		purchase: &mockPurchaseUC{},
		contact:  &mockContactUC{},
	}
	h := NewHandler(mockGetProfileUC{}, m.update, m.save, m.unsave, mockListSavedUC{}, m.purchase, mockListPurchasesUC{}, m.contact, logger.NewNop())
	return h, m
}

func testBuyer(t *testing.T) *buyerdomain.Profile {
	t.Helper()
	now := time.Now().UTC()
	b, err := buyerdomain.ReconstructProfile(8, 21, "", "", nil, nil, now, now)
	require.NoError(t, err)
	return b
}

func TestHandler_RequiresBuyerProfile(t *testing.T) {
	h, _ := newTestHandler()
	c, w := testutil.NewTestContext(http.MethodGet, "/buyer/profile", nil)

	h.GetProfile(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHandler_UpdateProfile_InvalidBudget(t *testing.T) {
	h, m := newTestHandler()
	m.update.err = errors.NewValidationError("budget_min cannot exceed budget_max")
	c, w := testutil.NewTestContext(http.MethodPatch, "/buyer/profile", map[string]any{"budget_min": 10, "budget_max": 5})
	c.Set(constants.ContextKeyBuyer, testBuyer(t))

	h.UpdateProfile(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, m.update.cmd.BudgetMin)
	assert.Equal(t, int64(10), *m.update.cmd.BudgetMin)
}

func TestHandler_SaveProperty(t *testing.T) {
	h, m := newTestHandler()
	c, w := testutil.NewTestContext(http.MethodPost, "/buyer/save", PropertyRequest{PropertyID: 12})
	c.Set(constants.ContextKeyBuyer, testBuyer(t))

	h.SaveProperty(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(8), m.save.cmd.BuyerID)
	assert.Equal(t, uint(12), m.save.cmd.PropertyID)
}

func TestHandler_SaveProperty_MissingID(t *testing.T) {
	h, _ := newTestHandler()
	c, w := testutil.NewTestContext(http.MethodPost, "/buyer/save", map[string]any{})
	c.Set(constants.ContextKeyBuyer, testBuyer(t))

	h.SaveProperty(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_UnsaveProperty_NotSaved(t *testing.T) {
	h, m := newTestHandler()
	m.unsave.err = errors.NewNotFoundError("saved property not found")
	c, w := testutil.NewTestContext(http.MethodDelete, "/buyer/save/12", nil)
	testutil.SetURLParam(c, "propertyId", "12")
	c.Set(constants.ContextKeyBuyer, testBuyer(t))

	h.UnsaveProperty(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, uint(12), m.unsave.cmd.PropertyID)
}

func TestHandler_Buy(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		h, m := newTestHandler()
		c, w := testutil.NewTestContext(http.MethodPost, "/buyer/buy", PropertyRequest{PropertyID: 12})
		c.Set(constants.ContextKeyBuyer, testBuyer(t))

		h.Buy(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		require.NotNil(t, m.purchase.cmd.Buyer)
		assert.Equal(t, uint(8), m.purchase.cmd.Buyer.ID())
	})

	t.Run("already sold", func(t *testing.T) {
		h, m := newTestHandler()
		m.purchase.err = errors.NewConflictError("property is not available for purchase")
		c, w := testutil.NewTestContext(http.MethodPost, "/buyer/buy", PropertyRequest{PropertyID: 12})
		c.Set(constants.ContextKeyBuyer, testBuyer(t))

		h.Buy(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestHandler_ContactAgent_StatusReflectsDedup(t *testing.T) {
	tests := []struct {
		name    string
		created bool
		status  int
	}{
		{"new lead", true, http.StatusCreated},
		{"existing lead", false, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler()
			m.contact.created = tt.created
			c, w := testutil.NewTestContext(http.MethodPost, "/buyer/contact-agent", ContactAgentRequest{
				PropertyID: 12,
				Message:    "Is it still available?",
			})
			c.Set(constants.ContextKeyBuyer, testBuyer(t))

			h.ContactAgent(c)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, uint(21), m.contact.cmd.BuyerUserID)
			assert.Equal(t, "Is it still available?", m.contact.cmd.Message)
		})
	}
}
