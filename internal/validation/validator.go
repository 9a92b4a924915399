package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	apperrors "github.com/mars1-events-planning/eventool-backend/pkg/app_errors"

	"github.com/go-playground/validator/v10"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]*$`)
	lowerPattern    = regexp.MustCompile(`[a-z]`)
	upperPattern    = regexp.MustCompile(`[A-Z]`)
	digitPattern    = regexp.MustCompile(`[0-9]`)
)

// Validator 包裝 go-playground/validator，回傳欄位層級的錯誤
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	// 註冊失敗只會發生在 tag 名稱衝突
	if err := v.RegisterValidation("username", isUsername); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("password", isStrongPassword); err != nil {
		panic(err)
	}
	return &Validator{validate: v}
}

func isUsername(fl validator.FieldLevel) bool {
	return usernamePattern.MatchString(fl.Field().String())
}

func isStrongPassword(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return lowerPattern.MatchString(s) && upperPattern.MatchString(s) && digitPattern.MatchString(s)
}

// Struct 依 struct tag 驗證，失敗時回傳 *apperrors.ValidationError
func (v *Validator) Struct(obj interface{}) error {
	errs := v.structErrors(obj)
	if len(errs) == 0 {
		return nil
	}
	return apperrors.NewValidationError(errs...)
}

func (v *Validator) structErrors(obj interface{}) []apperrors.FieldError {
	err := v.validate.Struct(obj)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []apperrors.FieldError{{Field: "", Message: err.Error()}}
	}
	out := make([]apperrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, apperrors.FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s should be filled", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", fe.Field(), fe.Param())
	case "username":
		return "username may contain only latin letters, digits, '_' and '-'"
	case "password":
		return "password must contain a lowercase letter, an uppercase letter and a digit"
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// collector 收集所有錯誤，不提前中斷
type collector struct {
	validate *validator.Validate
	errs     []apperrors.FieldError
}

func (v *Validator) newCollector() *collector {
	return &collector{validate: v.validate}
}

func (c *collector) add(field, msg string) {
	c.errs = append(c.errs, apperrors.FieldError{Field: field, Message: msg})
}

// check 以 validator tag 驗證單一值
func (c *collector) check(field string, value interface{}, tag, msg string) bool {
	if err := c.validate.Var(value, tag); err != nil {
		c.add(field, msg)
		return false
	}
	return true
}

// length 先檢查非空，再檢查長度
func (c *collector) length(field, value string, min, max int) bool {
	if !c.check(field, value, "required", fmt.Sprintf("%s should be filled", field)) {
		return false
	}
	return c.check(field, value, fmt.Sprintf("min=%d,max=%d", min, max),
		fmt.Sprintf("%s must contain from %d to %d characters", field, min, max))
}

func (c *collector) merge(errs []apperrors.FieldError) {
	c.errs = append(c.errs, errs...)
}

func (c *collector) err() error {
	if len(c.errs) == 0 {
		return nil
	}
	return apperrors.NewValidationError(c.errs...)
}
