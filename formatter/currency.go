package formatter

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

const DefaultCurrency = "MXN"

// Currency renders value the way the storefront shows prices: two decimals with
// thousands grouping. Peso and dollar amounts use the "$" sign, anything else
// is prefixed by its ISO code.
func Currency(value float64, currency string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = DefaultCurrency
	}

	sign := ""
	if value < 0 {
		sign = "-"
		value = -value
	}

	amount := humanize.FormatFloat("#,###.##", value)

	switch currency {
	case "MXN", "USD":
		return fmt.Sprintf("%s$%s", sign, amount)
	default:
		return fmt.Sprintf("%s%s %s", sign, currency, amount)
	}
}
