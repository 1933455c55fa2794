// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"carteira/internal/models"
)

// symbolRegex accepts provider ticker forms: bare tickers, market
// suffixes (PETR4.SA), index markers (^BVSP), pairs (BRL=X, BTC-USD),
// and futures (GC=F).
var symbolRegex = regexp.MustCompile(`^[\^]?[0-9A-Za-z]{1,12}([.\-=][0-9A-Za-z]{1,6})?$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("symbol", validateSymbol)
		_ = v.RegisterValidation("market_category", validateMarketCategory)
	}
}

func validateSymbol(fl validator.FieldLevel) bool {
	return symbolRegex.MatchString(fl.Field().String())
}

func validateMarketCategory(fl validator.FieldLevel) bool {
	return models.Category(fl.Field().String()).Valid()
}
