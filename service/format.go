package service

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatEuro renders an amount rounded to whole euros with thousands
// separators, e.g. €67,500.
func FormatEuro(amount float64) string {
	p := message.NewPrinter(language.English)
	rounded := int64(math.Round(amount))
	if rounded < 0 {
		return p.Sprintf("-€%d", -rounded)
	}
	return p.Sprintf("€%d", rounded)
}

// FormatPercent renders a fraction as a whole percentage, e.g. 0.15 -> 15%.
func FormatPercent(fraction float64) string {
	return message.NewPrinter(language.English).Sprintf("%d%%", int64(math.Round(fraction*100)))
}
