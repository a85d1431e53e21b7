package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/estatery/estatery/internal/domain/agent"
	"github.com/estatery/estatery/internal/domain/buyer"
	"github.com/estatery/estatery/internal/shared/constants"
	"github.com/estatery/estatery/internal/shared/errors"
	"github.com/estatery/estatery/internal/shared/logger"
	"github.com/estatery/estatery/internal/shared/utils"
)

type AgentAccess interface {
	Resolve(ctx context.Context, userID uint) (*agent.Profile, error)
	AuthorizeWrite(ctx context.Context, a *agent.Profile) error
}

type BuyerResolver interface {
	Execute(ctx context.Context, userID uint) (*buyer.Profile, error)
}

// ProfileMiddleware loads the role profile of the authenticated user.
type ProfileMiddleware struct {
	agents AgentAccess
	buyers BuyerResolver
	logger logger.Interface
}

func NewProfileMiddleware(agents AgentAccess, buyers BuyerResolver, logger logger.Interface) *ProfileMiddleware {
	return &ProfileMiddleware{
		agents: agents,
		buyers: buyers,
		logger: logger,
	}
}

// RequireAgent stores the agent profile of the caller under ContextKeyAgent.
func (m *ProfileMiddleware) RequireAgent() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
			c.Abort()
			return
		}

		a, err := m.agents.Resolve(c.Request.Context(), userID)
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyAgent, a)
		c.Next()
	}
}

// RequireAgentWrite applies the suspension and subscription gate to mutating
// agent routes. Must run after RequireAgent.
func (m *ProfileMiddleware) RequireAgentWrite() gin.HandlerFunc {
	return func(c *gin.Context) {
		a, ok := Agent(c)
		if !ok {
			utils.ErrorResponseWithError(c, errors.NewForbiddenError("agent profile required"))
			c.Abort()
			return
		}

		if err := m.agents.AuthorizeWrite(c.Request.Context(), a); err != nil {
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireBuyer stores the buyer profile of the caller, creating it on first use.
func (m *ProfileMiddleware) RequireBuyer() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
			c.Abort()
			return
		}

		b, err := m.buyers.Execute(c.Request.Context(), userID)
		if err != nil {
			m.logger.Errorw("failed to resolve buyer profile", "user_id", userID, "error", err)
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyBuyer, b)
		c.Next()
	}
}

func Agent(c *gin.Context) (*agent.Profile, bool) {
	v, ok := c.Get(constants.ContextKeyAgent)
	if !ok {
		return nil, false
	}
	a, ok := v.(*agent.Profile)
	return a, ok
}

func Buyer(c *gin.Context) (*buyer.Profile, bool) {
	v, ok := c.Get(constants.ContextKeyBuyer)
	if !ok {
		return nil, false
	}
	b, ok := v.(*buyer.Profile)
	return b, ok
}
