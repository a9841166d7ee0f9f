package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"scribe/internal/language"
	"scribe/internal/subtitles"
)

var registerOnce sync.Once

// registerValidations installs the custom binding rules on gin's validator.
func registerValidations() {
	registerOnce.Do(func() {
		engine, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		registerCustomValidations(engine)
	})
}

func registerCustomValidations(v *validator.Validate) {
	v.RegisterTagNameFunc(jsonTagName)
	_ = v.RegisterValidation("subtitle_format", validateSubtitleFormat)
	_ = v.RegisterValidation("language_code", validateLanguageCode)
	_ = v.RegisterValidation("not_blank", validateNotBlank)
}

func validateSubtitleFormat(fl validator.FieldLevel) bool {
	name := strings.ToLower(strings.TrimSpace(fl.Field().String()))
	return subtitles.Format(name).Valid()
}

func validateLanguageCode(fl validator.FieldLevel) bool {
	return language.IsSupported(fl.Field().String())
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func jsonTagName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

// describeValidation turns binding errors into a short client message.
func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Sprintf("invalid request body: %v", err)
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required", "not_blank":
			parts = append(parts, fmt.Sprintf("%s is required", fe.Field()))
		case "subtitle_format":
			parts = append(parts, fmt.Sprintf("unsupported format %q", fe.Value()))
		case "language_code":
			parts = append(parts, fmt.Sprintf("unsupported language %q", fe.Value()))
		default:
			parts = append(parts, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		}
	}
	return strings.Join(parts, "; ")
}
