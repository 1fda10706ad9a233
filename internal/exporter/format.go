package exporter

import (
	"fmt"
	"strings"
)

// noData is the display form of a missing value. "No data" and zero are
// different facts and must never render the same.
const noData = "N/A"

// compact renders an amount at a fixed magnitude with up to two decimals,
// trimming trailing zeros so 1.50 becomes 1.5 and 2.00 becomes 2.
func compact(v float64, divisor float64, suffix string) string {
	s := fmt.Sprintf("%.2f", v/divisor)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s + suffix
}

// FormatVolume renders liters in billions when the value reaches a billion,
// otherwise in millions: 1.5e9 -> "1.5B liters", 2e6 -> "2M liters".
func FormatVolume(liters float64) string {
	if liters >= 1e9 {
		return compact(liters, 1e9, "B") + " liters"
	}
	return compact(liters, 1e6, "M") + " liters"
}

// compactCurrency tiers an amount into T, B, or M
func compactCurrency(v float64) string {
	switch {
	case v >= 1e12:
		return compact(v, 1e12, "T")
	case v >= 1e9:
		return compact(v, 1e9, "B")
	default:
		return compact(v, 1e6, "M")
	}
}

// FormatCurrency renders a peso amount with a dollar-sign prefix and tiered
// magnitude suffix: 1e12 with the currency label gives "$1T MXN".
func FormatCurrency(amount float64, includeCurrency bool) string {
	s := "$" + compactCurrency(amount)
	if includeCurrency {
		s += " MXN"
	}
	return s
}

// FormatCurrencyWithUSD renders a peso amount with a USD companion converted
// at the given rate. The USD figure is compacted independently of the peso
// tier, so a trillion-peso value still shows billions of dollars.
func FormatCurrencyWithUSD(amount, mxnPerUSD float64) string {
	s := FormatCurrency(amount, true)
	if mxnPerUSD <= 0 {
		return s
	}
	return s + " (USD $" + compactCurrency(amount/mxnPerUSD) + ")"
}

// FormatPrice renders a per-liter price in pesos with cent precision
func FormatPrice(price float64) string {
	return fmt.Sprintf("$%.2f", price)
}

// FormatSignedPrice renders a price difference with an explicit sign
func FormatSignedPrice(delta float64) string {
	return fmt.Sprintf("%+.2f", delta)
}

// FormatPercent renders a percentage with one decimal
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatSignedPercent renders a percentage with an explicit sign
func FormatSignedPercent(pct float64) string {
	return fmt.Sprintf("%+.1f%%", pct)
}

// FormatCount renders an integer with thousands separators
func FormatCount(n int64) string {
	s := fmt.Sprintf("%d", n)
	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	if negative {
		return "-" + b.String()
	}
	return b.String()
}

// FormatRatio renders a unitless ratio with two decimals
func FormatRatio(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
