package agent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)

func TestNewProfile_StartsTrial(t *testing.T) {
	p, err := NewProfile(5, 14*24*time.Hour, now)
	require.NoError(t, err)
	require.NotNil(t, p.TrialEndsAt())
	assert.Equal(t, now, *p.TrialStartedAt())
	assert.Equal(t, now.Add(14*24*time.Hour), *p.TrialEndsAt())
}

func TestNewProfile_NoTrial(t *testing.T) {
	p, err := NewProfile(5, 0, now)
	require.NoError(t, err)
	assert.Nil(t, p.TrialEndsAt())
}

func TestContactNumber(t *testing.T) {
	p, err := NewProfile(5, 0, now)
	require.NoError(t, err)
	assert.Empty(t, p.ContactNumber())

	phone := "+2348012345678"
	p.Apply(Patch{Phone: &phone}, now)
	assert.Equal(t, phone, p.ContactNumber())

	wa := " +2348098765432 "
	p.Apply(Patch{Whatsapp: &wa}, now)
	assert.Equal(t, "+2348098765432", p.ContactNumber())
}
