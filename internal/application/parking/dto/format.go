package dto

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// AmountFormatter renders money for receipts in the configured locale.
type AmountFormatter struct {
	printer  *message.Printer
	currency currency.Unit
}

// NewAmountFormatter falls back to English and USD for unknown inputs.
func NewAmountFormatter(locale, currencyCode string) *AmountFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	unit, err := currency.ParseISO(strings.ToUpper(currencyCode))
	if err != nil {
		unit = currency.USD
	}
	return &AmountFormatter{
		printer:  message.NewPrinter(tag),
		currency: unit,
	}
}

func (f *AmountFormatter) Currency() string {
	return f.currency.String()
}

// Format returns e.g. "USD 1,234.50" for en.
func (f *AmountFormatter) Format(amount decimal.Decimal) string {
	return f.printer.Sprintf("%s %.2f", f.currency.String(), amount.Round(2).InexactFloat64())
}
