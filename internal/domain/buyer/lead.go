package buyer

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

type Channel string

const (
	ChannelWhatsApp Channel = "WHATSAPP"
	ChannelEmail    Channel = "EMAIL"
	ChannelPhone    Channel = "PHONE"
)

func ParseChannel(s string) (Channel, error) {
	if s == "" {
		return ChannelWhatsApp, nil
	}
	c := Channel(strings.ToUpper(strings.TrimSpace(s)))
	switch c {
	case ChannelWhatsApp, ChannelEmail, ChannelPhone:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidChannel, s)
}

// Lead records a buyer reaching out to an agent about a property.
type Lead struct {
	ID         uint
	BuyerID    uint
	PropertyID uint
	AgentID    uint
	Message    string
	Channel    Channel
	CreatedAt  time.Time
}

// WithinWindow reports whether the lead was created inside the trailing
// window ending at now. The check is best effort: concurrent requests may
// still both create a lead.
func (l *Lead) WithinWindow(window time.Duration, now time.Time) bool {
	if l == nil || window <= 0 {
		return false
	}
	return !l.CreatedAt.Before(now.Add(-window))
}

// WhatsAppLink builds a wa.me deep link. Non-digits are stripped from number;
// an empty string is returned when no digits remain.
func WhatsAppLink(number, text string) string {
	var b strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return ""
	}
	link := "https://wa.me/" + b.String()
	if text != "" {
		link += "?text=" + url.QueryEscape(text)
	}
	return link
}
