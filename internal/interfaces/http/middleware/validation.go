package middleware

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/orders/backend/internal/domain/identity"
)

// SetupValidator configures gin's binding validator: JSON tag names in
// error messages and the account-type tag used by the register request.
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("user_type", func(fl validator.FieldLevel) bool {
		return identity.UserType(fl.Field().String()).IsValid()
	})
}
