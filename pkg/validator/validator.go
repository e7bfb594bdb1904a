package validator

import (
	"log"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func RegisterGinValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		err := v.RegisterValidation("vercode", verificationCodeValidator)
		if err != nil {
			log.Fatal("register vercode validator failed")
		}
	}
}

var verificationCodePattern = regexp.MustCompile(`^\d{6}$`)

var verificationCodeValidator validator.Func = func(fl validator.FieldLevel) bool {
	return verificationCodePattern.MatchString(fl.Field().String())
}
