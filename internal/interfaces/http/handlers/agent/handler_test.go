package agent

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	agentdto "github.com/estatery/estatery/internal/application/agent/dto"
	agentusecases "github.com/estatery/estatery/internal/application/agent/usecases"
	commondto "github.com/estatery/estatery/internal/application/common/dto"
	propertydto "github.com/estatery/estatery/internal/application/property/dto"
	propertyusecases "github.com/estatery/estatery/internal/application/property/usecases"
	agentdomain "github.com/estatery/estatery/internal/domain/agent"
	"github.com/estatery/estatery/internal/interfaces/http/handlers/testutil"
	"github.com/estatery/estatery/internal/shared/constants"
	"github.com/estatery/estatery/internal/shared/errors"
	"github.com/estatery/estatery/internal/shared/logger"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockDashboardUC struct{ result *agentdto.DashboardDTO }

func (m *mockDashboardUC) Execute(ctx context.Context, a *agentdomain.Profile) (*agentdto.DashboardDTO, error) {
	return m.result, nil
}

type mockGetProfileUC struct{ id uint }

func (m *mockGetProfileUC) Execute(ctx context.Context, agentID uint) (*agentdto.AgentProfileDTO, error) {
	m.id = agentID
	return &agentdto.AgentProfileDTO{ID: agentID}, nil
}

type mockUpdateProfileUC struct{ cmd agentusecases.UpdateProfileCommand }

func (m *mockUpdateProfileUC) Execute(ctx context.Context, cmd agentusecases.UpdateProfileCommand) (*agentdto.AgentProfileDTO, error) {
	m.cmd = cmd
	return &agentdto.AgentProfileDTO{ID: cmd.AgentID}, nil
}

type mockListPropertiesUC struct{ q propertyusecases.ListPropertiesQuery }

func (m *mockListPropertiesUC) Execute(ctx context.Context, q propertyusecases.ListPropertiesQuery) (*commondto.Page[propertydto.PropertyDTO], error) {
	m.q = q
	return &commondto.Page[propertydto.PropertyDTO]{Items: []propertydto.PropertyDTO{}, Page: q.Page, PageSize: q.PageSize}, nil
}

type mockCreatePropertyUC struct {
	cmd propertyusecases.CreateAgentPropertyCommand
	err error
}

func (m *mockCreatePropertyUC) Execute(ctx context.Context, cmd propertyusecases.CreateAgentPropertyCommand) (*propertydto.PropertyDTO, error) {
	m.cmd = cmd
	if m.err != nil {
		return nil, m.err
	}
	return &propertydto.PropertyDTO{ID: 1, Title: cmd.Details.Title}, nil
}

type mockUpdatePropertyUC struct {
	cmd propertyusecases.UpdateAgentPropertyCommand
	err error
}

func (m *mockUpdatePropertyUC) Execute(ctx context.Context, cmd propertyusecases.UpdateAgentPropertyCommand) (*propertydto.PropertyDTO, error) {
	m.cmd = cmd
	if m.err != nil {
		return nil, m.err
	}
	return &propertydto.PropertyDTO{ID: cmd.PropertyID}, nil
}

type mockDeletePropertyUC struct{ cmd propertyusecases.DeletePropertyCommand }

func (m *mockDeletePropertyUC) Execute(ctx context.Context, cmd propertyusecases.DeletePropertyCommand) error {
	m.cmd = cmd
	return nil
}

type mockMarkSoldUC struct{ err error }

func (m *mockMarkSoldUC) Execute(ctx context.Context, cmd propertyusecases.MarkSoldCommand) (*propertydto.PropertyDTO, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &propertydto.PropertyDTO{ID: cmd.PropertyID, Status: "SOLD"}, nil
}

// =====================================================================
// Test helpers
// =====================================================================

type mocks struct {
	dashboard *mockDashboardUC
	get       *mockGetProfileUC
	update    *mockUpdateProfileUC
	list      *mockListPropertiesUC
	create    *mockCreatePropertyUC
	edit      *mockUpdatePropertyUC
	del       *mockDeletePropertyUC
	sold      *mockMarkSoldUC
}

func newTestHandler() (*Handler, *mocks) {
	m := &mocks{
		dashboard: &mockDashboardUC{result: &agentdto.DashboardDTO{TotalListings: 3}},
		get:       &mockGetProfileUC{},
		update:    &mockUpdateProfileUC{},
		list:      &mockListPropertiesUC{},
		create:    &mockCreatePropertyUC{},
		edit:      &mockUpdatePropertyUC{},
		del:       &mockDeletePropertyUC{},
		sold:      &mockMarkSoldUC{},
	}
	h := NewHandler(m.dashboard, m.get, m.update, m.list, m.create, m.edit, m.del, m.sold, logger.NewNop())
	return h, m
}

func testAgent(t *testing.T) *agentdomain.Profile {
	t.Helper()
	now := time.Now().UTC()
	a, err := agentdomain.ReconstructProfile(5, 11, agentdomain.ProfileData{}, now, now)
	require.NoError(t, err)
	return a
}

// =====================================================================
// Tests
// =====================================================================

func TestHandler_RequiresAgentProfile(t *testing.T) {
	h, _ := newTestHandler()
	c, w := testutil.NewTestContext(http.MethodGet, "/agent/dashboard", nil)

	h.Dashboard(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHandler_ListDrafts_FiltersByOwnerAndStatus(t *testing.T) {
	h, m := newTestHandler()
	c, w := testutil.NewTestContext(http.MethodGet, "/agent/properties/drafts", nil)
	c.Set(constants.ContextKeyAgent, testAgent(t))

	h.ListDrafts(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, m.list.q.AgentID)
	assert.Equal(t, uint(5), *m.list.q.AgentID)
	require.NotNil(t, m.list.q.Status)
	assert.Equal(t, "DRAFT", *m.list.q.Status)
}

func TestHandler_CreateProperty_JSON(t *testing.T) {
	h, m := newTestHandler()
	c, w := testutil.NewTestContext(http.MethodPost, "/agent/properties", map[string]any{
		"title":            "3 bedroom flat",
		"location":         "Lekki, Lagos",
		"price":            25000000,
		"transaction_type": "SALE",
		"furnishing":       "FURNISHED",
		"bedrooms":         3,
		"draft":            true,
	})
	c.Set(constants.ContextKeyAgent, testAgent(t))

	h.CreateProperty(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uint(5), m.create.cmd.AgentID)
	assert.True(t, m.create.cmd.Draft)
	assert.Equal(t, "3 bedroom flat", m.create.cmd.Details.Title)
	assert.Equal(t, int64(25000000), m.create.cmd.Details.Price)
	assert.Equal(t, 3, m.create.cmd.Details.Bedrooms)
	assert.Empty(t, m.create.cmd.Images)
}

func TestHandler_CreateProperty_Multipart(t *testing.T) {
	h, m := newTestHandler()
	png := []byte("\x89PNG\r\n\x1a\n")
	c, w := testutil.NewMultipartContext(http.MethodPost, "/agent/properties",
		map[string]string{
			"title":      "Duplex",
			"location":   "Ikoyi",
			"price":      "90000000",
			"furnishing": "UNFURNISHED",
		},
		testutil.File{Field: "images", Filename: "front.png", Content: png},
		testutil.File{Field: "images", Filename: "back.png", Content: png},
	)
	c.Set(constants.ContextKeyAgent, testAgent(t))

	h.CreateProperty(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.False(t, m.create.cmd.Draft)
	assert.Equal(t, "Duplex", m.create.cmd.Details.Title)
	assert.Equal(t, int64(90000000), m.create.cmd.Details.Price)
	require.Len(t, m.create.cmd.Images, 2)
	assert.Equal(t, "front.png", m.create.cmd.Images[0].Filename)

	rc, err := m.create.cmd.Images[1].Open()
	require.NoError(t, err)
	defer rc.Close()
	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, png, content)
}

func TestHandler_CreateProperty_PaymentRequired(t *testing.T) {
	h, m := newTestHandler()
	m.create.err = errors.NewPaymentRequiredError("EXPIRED", nil, nil)
	c, w := testutil.NewTestContext(http.MethodPost, "/agent/properties", map[string]any{"title": "Flat"})
	c.Set(constants.ContextKeyAgent, testAgent(t))

	h.CreateProperty(c)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
}

func TestHandler_UpdateProperty_SubmitsForReview(t *testing.T) {
	h, m := newTestHandler()
	c, w := testutil.NewTestContext(http.MethodPatch, "/agent/properties/9", map[string]any{
		"price":  30000000,
		"status": "PENDING",
	})
	testutil.SetURLParam(c, "id", "9")
	c.Set(constants.ContextKeyAgent, testAgent(t))

	h.UpdateProperty(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(9), m.edit.cmd.PropertyID)
	require.NotNil(t, m.edit.cmd.Status)
	assert.Equal(t, "PENDING", *m.edit.cmd.Status)
	require.NotNil(t, m.edit.cmd.Patch.Price)
	assert.Equal(t, int64(30000000), *m.edit.cmd.Patch.Price)
	assert.Nil(t, m.edit.cmd.Patch.Title)
}

func TestHandler_UpdateProperty_SoldConflict(t *testing.T) {
	h, m := newTestHandler()
	m.edit.err = errors.NewConflictError("sold properties cannot be edited")
	c, w := testutil.NewTestContext(http.MethodPatch, "/agent/properties/9", map[string]any{"title": "New"})
	testutil.SetURLParam(c, "id", "9")
	c.Set(constants.ContextKeyAgent, testAgent(t))

	h.UpdateProperty(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandler_UpdateProperty_InvalidID(t *testing.T) {
	h, _ := newTestHandler()
	c, w := testutil.NewTestContext(http.MethodPatch, "/agent/properties/abc", map[string]any{"title": "New"})
	testutil.SetURLParam(c, "id", "abc")
	c.Set(constants.ContextKeyAgent, testAgent(t))

	h.UpdateProperty(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_DeleteProperty_ScopedToOwner(t *testing.T) {
	h, m := newTestHandler()
	c, w := testutil.NewTestContext(http.MethodDelete, "/agent/properties/9", nil)
	testutil.SetURLParam(c, "id", "9")
	c.Set(constants.ContextKeyAgent, testAgent(t))

	h.DeleteProperty(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)
	require.NotNil(t, m.del.cmd.AgentID)
	assert.Equal(t, uint(5), *m.del.cmd.AgentID)
}

func TestHandler_MarkSold_Conflict(t *testing.T) {
	h, m := newTestHandler()
	m.sold.err = errors.NewConflictError("property is already sold")
	c, w := testutil.NewTestContext(http.MethodPatch, "/agent/properties/9/sold", nil)
	testutil.SetURLParam(c, "id", "9")
	c.Set(constants.ContextKeyAgent, testAgent(t))

	h.MarkSold(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandler_Profile(t *testing.T) {
	h, m := newTestHandler()

	c, w := testutil.NewTestContext(http.MethodGet, "/agent/profile", nil)
	c.Set(constants.ContextKeyAgent, testAgent(t))
	h.GetProfile(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(5), m.get.id)

	c, w = testutil.NewTestContext(http.MethodPatch, "/agent/profile", map[string]any{"whatsapp": "+2348012345678"})
	c.Set(constants.ContextKeyAgent, testAgent(t))
	h.UpdateProfile(c)
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, m.update.cmd.Whatsapp)
	assert.Equal(t, "+2348012345678", *m.update.cmd.Whatsapp)
	assert.Nil(t, m.update.cmd.Bio)
}
