package common

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/estatery/estatery/internal/domain/buyer"
	"github.com/estatery/estatery/internal/domain/property"
	"github.com/estatery/estatery/internal/shared/errors"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"sold", property.ErrPropertySold, http.StatusConflict},
		{"wrapped sold", fmt.Errorf("update: %w", property.ErrPropertySold), http.StatusConflict},
		{"missing reason", property.ErrRejectionReasonRequired, http.StatusBadRequest},
		{"bad transition", property.ErrInvalidTransition("DRAFT", "APPROVED"), http.StatusBadRequest},
		{"not found", property.ErrPropertyNotFound, http.StatusNotFound},
		{"duplicate purchase", buyer.ErrAlreadyPurchased, http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := errors.GetAppError(TranslateError(tt.err))
			if assert.NotNil(t, appErr) {
				assert.Equal(t, tt.code, appErr.Code)
			}
		})
	}

	t.Run("unknown errors pass through", func(t *testing.T) {
		raw := stderrors.New("connection reset")
		assert.Same(t, raw, TranslateError(raw))
		assert.Nil(t, TranslateError(nil))
	})
}
