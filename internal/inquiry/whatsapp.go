// Package inquiry builds WhatsApp deep-links for product inquiries.
// The link is a fire-and-forget side channel: the buyer's messaging app
// opens with a pre-filled message, and nothing awaits delivery.
package inquiry

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/scottwells/storefront/internal/model"
)

// Link returns a https://wa.me/<number>?text=... URL with a message
// templated from the product's name and price.
func Link(number string, p *model.Product) string {
	message := fmt.Sprintf("Hi %s, I'm interested in the %q priced at %s%s. Is this still available?",
		model.BusinessName, p.Name, model.Currency, FormatPrice(p.Price))
	return "https://wa.me/" + number + "?text=" + url.QueryEscape(message)
}

// FormatPrice renders a price with thousands separators, dropping a
// trailing ".00" for whole amounts.
func FormatPrice(price float64) string {
	s := fmt.Sprintf("%.2f", price)
	s = strings.TrimSuffix(s, ".00")

	intPart := s
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String() + frac
}
