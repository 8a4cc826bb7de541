// Package money formatea montos en pesos chilenos para exportaciones y PDF.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.MustParse("es-CL"))

// FormatCLP redondea a peso entero (el CLP no tiene decimales) y agrupa miles al estilo es-CL.
func FormatCLP(d decimal.Decimal) string {
	return printer.Sprintf("$%d", d.Round(0).IntPart())
}

// FormatInt agrupa miles de una cantidad entera.
func FormatInt(n int64) string {
	return printer.Sprintf("%d", n)
}
