package validator

import (
	"fmt"
	"log"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/vibe-gaming/gatekeeper/pkg/otp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	VerificationCodeTag = "vcode"
	// MaxBytesTag limits the UTF-8 length in bytes, unlike max which counts runes.
	MaxBytesTag = "maxbytes"
)

// codes have no leading zero
var verificationCodePattern = regexp.MustCompile(fmt.Sprintf(`^[1-9]\d{%d}$`, otp.CodeLength-1))

// New returns a validator reporting json field names and knowing the custom tags.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	configure(v)
	return v
}

func RegisterGinValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		configure(v)
	}
}

func configure(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation(VerificationCodeTag, verificationCodeValidator); err != nil {
		log.Fatal("register vcode validator failed")
	}
	if err := v.RegisterValidation(MaxBytesTag, maxBytesValidator); err != nil {
		log.Fatal("register maxbytes validator failed")
	}
}

var verificationCodeValidator validator.Func = func(fl validator.FieldLevel) bool {
	return verificationCodePattern.MatchString(fl.Field().String())
}

var maxBytesValidator validator.Func = func(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}
