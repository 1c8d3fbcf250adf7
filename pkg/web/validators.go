package web

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/go-petr/pet-finance/pkg/currencypkg"
	"github.com/go-petr/pet-finance/pkg/moneypkg"
)

// RegisterValidators adds the custom binding tags "currency" and "amount" to gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}

	if err := v.RegisterValidation("currency", currencypkg.ValidCurrency); err != nil {
		return err
	}

	return v.RegisterValidation("amount", moneypkg.ValidAmount)
}
