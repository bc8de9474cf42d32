// Package order turns a cart into an order message and resolves it against an
// outbound messaging link.
package order

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hiddenspringfield/shop-backend/internal/cart"
	"github.com/hiddenspringfield/shop-backend/pkg/enums"
	pkgerrors "github.com/hiddenspringfield/shop-backend/pkg/errors"
)

const (
	rule           = "------------------------"
	currencySuffix = "€"

	// ClipboardNotice is shown once when a platform cannot receive text in a link.
	ClipboardNotice = "Message copié : collez-le dans la conversation."
)

// Cart is the read side of a cart needed to compose an order.
type Cart interface {
	Lines() []cart.Line
	TotalItems() int
	TotalPrice() decimal.Decimal
}

// Result is the resolved order. URL is empty for clipboard-only links.
// Clipboard is the payload to copy; writing it is best effort on the caller.
type Result struct {
	Kind      enums.LinkKind `json:"kind"`
	URL       string         `json:"url,omitempty"`
	Clipboard string         `json:"clipboard,omitempty"`
	Notice    string         `json:"notice,omitempty"`
	Message   string         `json:"message"`
}

// Compose renders the order message for c and resolves it against link. name
// identifies the link in the not-configured error.
func Compose(c Cart, link Link, name string) (Result, error) {
	if isNilCart(c) || c.TotalItems() == 0 {
		return Result{}, pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty")
	}
	if !link.Configured() {
		if name == "" {
			name = GenericLinkName
		}
		return Result{}, pkgerrors.New(pkgerrors.CodeLinkNotConfigured, "link not configured for "+name).
			WithDetails(map[string]any{"link": name})
	}

	message := Message(c)
	res := Result{Kind: link.Kind, Message: message}
	encoded := encodeComponent(message)

	switch link.Kind {
	case enums.LinkKindTelegram, enums.LinkKindWhatsApp:
		if strings.Contains(link.Raw, MessagePlaceholder) {
			res.URL = strings.ReplaceAll(link.Raw, MessagePlaceholder, encoded)
		} else {
			res.URL = appendText(link.Raw, encoded)
		}
	case enums.LinkKindClipboardOnly:
		res.Clipboard = message
		res.Notice = ClipboardNotice
	default:
		res.URL = strings.ReplaceAll(link.Raw, MessagePlaceholder, encoded)
	}
	return res, nil
}

// Message renders the grouped order summary.
func Message(c Cart) string {
	var b strings.Builder
	b.WriteString("🛒 NOUVELLE COMMANDE\n\n")
	fmt.Fprintf(&b, "📦 Articles (%d):\n", c.TotalItems())
	b.WriteString(rule + "\n")

	for _, g := range groupLines(c.Lines()) {
		fmt.Fprintf(&b, "• %s\n", g.name)
		for _, v := range g.variants {
			b.WriteString("  ")
			if v.label != "" {
				b.WriteString(v.label + " ")
			}
			fmt.Fprintf(&b, "x%d @ %s = %s\n",
				v.line.Quantity, money(v.line.UnitPrice), money(v.line.Subtotal()))
		}
		b.WriteString("\n")
	}

	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "💰 TOTAL: %s", money(c.TotalPrice()))
	return b.String()
}

type variant struct {
	label string
	line  cart.Line
}

type group struct {
	name     string
	variants []variant
}

// groupLines buckets lines by base name in order of first appearance.
func groupLines(lines []cart.Line) []group {
	var groups []group
	index := make(map[string]int)
	for _, line := range lines {
		base, label, _ := strings.Cut(line.DisplayName(), cart.VariantSeparator)
		base = strings.TrimSpace(base)
		i, ok := index[base]
		if !ok {
			i = len(groups)
			index[base] = i
			groups = append(groups, group{name: base})
		}
		groups[i].variants = append(groups[i].variants, variant{label: strings.TrimSpace(label), line: line})
	}
	return groups
}

func isNilCart(c Cart) bool {
	if c == nil {
		return true
	}
	store, ok := c.(*cart.Store)
	return ok && store == nil
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2) + currencySuffix
}

func appendText(raw, encoded string) string {
	sep := "?"
	if strings.Contains(raw, "?") {
		sep = "&"
	}
	return raw + sep + "text=" + encoded
}

// encodeComponent escapes s for any URL position, spaces included.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
