package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/znurfzh/ethic-sub000/internal/app/models"
)

// Validation rule patterns
var (
	// Username pattern - letters, digits, dot, dash and underscore
	UsernamePattern = `^[a-zA-Z0-9_.\-]{3,50}$`

	// Search query max length
	SearchQueryMaxLength = 200
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Username *regexp.Regexp
}{
	Username: regexp.MustCompile(UsernamePattern),
}

// Register adds the application's custom tags to a validator and makes field
// errors report JSON names. Gin's default validator is passed in at startup.
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonFieldName)

	rules := map[string]validator.Func{
		"usertype": validateUserType,
		"posttype": validatePostType,
		"username": validateUsername,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

func validateUserType(fl validator.FieldLevel) bool {
	return models.UserType(stringValue(fl.Field())).Valid()
}

func validatePostType(fl validator.FieldLevel) bool {
	switch models.PostType(stringValue(fl.Field())) {
	case models.PostTypeArticle, models.PostTypeResource, models.PostTypeQuestion,
		models.PostTypeDiscussion, models.PostTypeEvent, models.PostTypeMentorship:
		return true
	}
	return false
}

func validateUsername(fl validator.FieldLevel) bool {
	return CompiledPatterns.Username.MatchString(stringValue(fl.Field()))
}

func stringValue(v reflect.Value) string {
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.String {
		return ""
	}
	return v.String()
}

// String validation
type StringValidation struct {
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a new string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    value,
		Required: true,
	}
}

// WithMinLength sets minimum length
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	if v.Value == "" {
		return !v.Required
	}
	if v.MinLen > 0 && len(v.Value) < v.MinLen {
		return false
	}
	if v.MaxLen > 0 && len(v.Value) > v.MaxLen {
		return false
	}
	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}
	return true
}
