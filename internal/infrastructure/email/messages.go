package email

import (
	"fmt"
	"html"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message is a rendered email with plain text and HTML bodies.
type Message struct {
	To      string
	Subject string
	Plain   string
	HTML    string
}

type ReviewNotice struct {
	PropertyTitle string
	Approved      bool
	Reason        string
}

type LeadNotice struct {
	PropertyTitle string
	BuyerName     string
	BuyerEmail    string
	BuyerPhone    string
	Channel       string
	Text          string
}

type PurchaseNotice struct {
	PropertyTitle string
	BuyerName     string
	BuyerEmail    string
	Price         int64
	Currency      string
}

var (
	titleCaser = cases.Title(language.English)
	printer    = message.NewPrinter(language.English)
)

// FormatAmount renders an amount held in minor units, e.g. 150000000 NGN
// becomes "NGN 1,500,000.00".
func FormatAmount(minor int64, currency string) string {
	return printer.Sprintf("%s %.2f", strings.ToUpper(currency), float64(minor)/100)
}

func greeting(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Hello,"
	}
	return "Hello " + titleCaser.String(name) + ","
}

func wrapHTML(lines ...string) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	for _, l := range lines {
		b.WriteString("<p>")
		b.WriteString(l)
		b.WriteString("</p>")
	}
	b.WriteString("</body></html>")
	return b.String()
}

func passwordResetMessage(to, name, resetURL string) *Message {
	return &Message{
		To:      to,
		Subject: "Reset your password",
		Plain: fmt.Sprintf("%s\n\nWe received a request to reset your password. Visit the link below to choose a new one:\n%s\n\nIf you did not ask for this, ignore this email.\n",
			greeting(name), resetURL),
		HTML: wrapHTML(
			html.EscapeString(greeting(name)),
			"We received a request to reset your password.",
			fmt.Sprintf(`<a href="%s">Choose a new password</a>`, html.EscapeString(resetURL)),
			"If you did not ask for this, ignore this email.",
		),
	}
}

func reviewOutcomeMessage(to, name string, n ReviewNotice) *Message {
	outcome := "approved and is now live"
	if !n.Approved {
		outcome = "rejected"
	}
	plain := fmt.Sprintf("%s\n\nYour listing %q was %s.\n", greeting(name), n.PropertyTitle, outcome)
	lines := []string{
		html.EscapeString(greeting(name)),
		fmt.Sprintf("Your listing <strong>%s</strong> was %s.", html.EscapeString(n.PropertyTitle), outcome),
	}
	if !n.Approved && n.Reason != "" {
		plain += fmt.Sprintf("Reason: %s\nYou can edit the listing and submit it again.\n", n.Reason)
		lines = append(lines, "Reason: "+html.EscapeString(n.Reason), "You can edit the listing and submit it again.")
	}
	return &Message{
		To:      to,
		Subject: "Listing review: " + n.PropertyTitle,
		Plain:   plain,
		HTML:    wrapHTML(lines...),
	}
}

func newLeadMessage(to, name string, n LeadNotice) *Message {
	contact := n.BuyerEmail
	if n.BuyerPhone != "" {
		contact += ", " + n.BuyerPhone
	}
	plain := fmt.Sprintf("%s\n\n%s is interested in %q (preferred channel: %s).\nContact: %s\n",
		greeting(name), n.BuyerName, n.PropertyTitle, n.Channel, contact)
	if n.Text != "" {
		plain += "\nMessage:\n" + n.Text + "\n"
	}
	return &Message{
		To:      to,
		Subject: "New enquiry: " + n.PropertyTitle,
		Plain:   plain,
		HTML: wrapHTML(
			html.EscapeString(greeting(name)),
			fmt.Sprintf("<strong>%s</strong> is interested in <strong>%s</strong>.",
				html.EscapeString(n.BuyerName), html.EscapeString(n.PropertyTitle)),
			"Contact: "+html.EscapeString(contact),
			html.EscapeString(n.Text),
		),
	}
}

func purchaseMessage(to, name string, n PurchaseNotice) *Message {
	amount := FormatAmount(n.Price, n.Currency)
	return &Message{
		To:      to,
		Subject: "Property sold: " + n.PropertyTitle,
		Plain: fmt.Sprintf("%s\n\n%s (%s) purchased %q for %s.\n",
			greeting(name), n.BuyerName, n.BuyerEmail, n.PropertyTitle, amount),
		HTML: wrapHTML(
			html.EscapeString(greeting(name)),
			fmt.Sprintf("%s (%s) purchased <strong>%s</strong> for %s.",
				html.EscapeString(n.BuyerName), html.EscapeString(n.BuyerEmail),
				html.EscapeString(n.PropertyTitle), amount),
		),
	}
}
