package structure

import (
	"regexp"
	"strings"
)

// PriceDetector recognizes whole tokens that are currency amounts
type PriceDetector struct {
	re *regexp.Regexp
}

// NewPriceDetector builds a detector accepting an optional leading symbol from symbols
func NewPriceDetector(symbols []string) *PriceDetector {
	quoted := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if s == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(s))
	}

	prefix := ""
	if len(quoted) > 0 {
		prefix = "(?:" + strings.Join(quoted, "|") + ")?"
	}
	return &PriceDetector{re: regexp.MustCompile(`^` + prefix + `[0-9]+(?:\.[0-9]{2})?$`)}
}

// IsPrice reports whether token is, in its entirety, a price
func (d *PriceDetector) IsPrice(token string) bool {
	return d.re.MatchString(token)
}

// ContainsPrice reports whether any whitespace-separated field of line is a price
func (d *PriceDetector) ContainsPrice(line string) bool {
	for _, f := range strings.Fields(line) {
		if d.IsPrice(f) {
			return true
		}
	}
	return false
}

var defaultPrices = NewPriceDetector(DefaultConfig().CurrencySymbols)

// IsPrice checks token against the default currency symbols
func IsPrice(token string) bool {
	return defaultPrices.IsPrice(token)
}
