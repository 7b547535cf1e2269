package dto

import (
	"fmt"
	"sync"

	"github.com/SscSPs/returns_management_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators adds the returntype and returnstatus tags to gin's validator.
// Safe to call more than once.
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		if err = v.RegisterValidation("returntype", func(fl validator.FieldLevel) bool {
			return domain.ReturnType(fl.Field().String()).IsValid()
		}); err != nil {
			return
		}
		err = v.RegisterValidation("returnstatus", func(fl validator.FieldLevel) bool {
			return domain.ReturnStatus(fl.Field().String()).IsValid()
		})
	})
	return err
}
