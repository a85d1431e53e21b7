package buyer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 8, 20, 15, 0, 0, 0, time.UTC)

func TestLead_WithinWindow(t *testing.T) {
	tests := []struct {
		name    string
		created time.Time
		want    bool
	}{
		{"just now", now, true},
		{"59 minutes ago", now.Add(-59 * time.Minute), true},
		{"exactly one hour ago", now.Add(-time.Hour), true},
		{"61 minutes ago", now.Add(-61 * time.Minute), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &Lead{CreatedAt: tt.created}
			assert.Equal(t, tt.want, l.WithinWindow(time.Hour, now))
		})
	}

	assert.False(t, (*Lead)(nil).WithinWindow(time.Hour, now))
	assert.False(t, (&Lead{CreatedAt: now}).WithinWindow(0, now))
}

func TestWhatsAppLink(t *testing.T) {
	assert.Equal(t, "https://wa.me/2348012345678?text=Hi+there", WhatsAppLink("+234 801-234-5678", "Hi there"))
	assert.Equal(t, "https://wa.me/2348012345678", WhatsAppLink("2348012345678", ""))
	assert.Empty(t, WhatsAppLink("n/a", "hi"))
}

func TestParseChannel(t *testing.T) {
	c, err := ParseChannel("")
	require.NoError(t, err)
	assert.Equal(t, ChannelWhatsApp, c)

	c, err = ParseChannel("email")
	require.NoError(t, err)
	assert.Equal(t, ChannelEmail, c)

	_, err = ParseChannel("fax")
	assert.ErrorIs(t, err, ErrInvalidChannel)
}

func TestProfile_Apply(t *testing.T) {
	p, err := NewProfile(3, now)
	require.NoError(t, err)

	lo, hi := int64(10), int64(5)
	assert.Error(t, p.Apply(Patch{BudgetMin: &lo, BudgetMax: &hi}, now))
	assert.Nil(t, p.BudgetMin())

	hi = 20
	loc := " Ikeja "
	require.NoError(t, p.Apply(Patch{BudgetMin: &lo, BudgetMax: &hi, PreferredLocation: &loc}, now))
	assert.Equal(t, "Ikeja", p.PreferredLocation())
	assert.Equal(t, int64(20), *p.BudgetMax())
}
