package subscription

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/beheryahmed1991/subscription-tracker/internal/billing"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if s, ok := field.Interface().(fmt.Stringer); ok {
			return s.String()
		}
		return nil
	}, billing.Cycle{}, Status{}, Date{})

	return v
}

// newRecord builds a record owned by owner from f, applying defaults.
func newRecord(owner uuid.UUID, f Fields, at time.Time) (Subscription, error) {
	sub := Subscription{
		ID:        uuid.New(),
		Owner:     owner,
		Currency:  defaultCurrency,
		Category:  defaultCategory,
		Status:    Active,
		CreatedAt: at,
		UpdatedAt: at,
	}

	var errs []FieldError
	if f.Price == nil {
		errs = append(errs, FieldError{Field: "price", Message: "price is required"})
	}
	errs = append(errs, merge(&sub, f)...)

	if err := check(sub, errs); err != nil {
		return Subscription{}, err
	}
	return sub, nil
}

// applyFields merges f onto cur. Identity, owner and creation time are
// never touched.
func applyFields(cur Subscription, f Fields, at time.Time) (Subscription, error) {
	next := cur
	errs := merge(&next, f)
	next.UpdatedAt = at

	if err := check(next, errs); err != nil {
		return Subscription{}, err
	}
	return next, nil
}

func merge(sub *Subscription, f Fields) []FieldError {
	var errs []FieldError

	if f.Name != nil {
		sub.Name = strings.TrimSpace(*f.Name)
	}
	if f.Description != nil {
		sub.Description = strings.TrimSpace(*f.Description)
	}
	if f.Price != nil {
		sub.Price = *f.Price
	}
	if f.Currency != nil {
		sub.Currency = strings.ToUpper(strings.TrimSpace(*f.Currency))
	}
	if f.Category != nil {
		sub.Category = strings.TrimSpace(*f.Category)
	}
	if f.BillingCycle != nil {
		c, err := billing.ParseCycle(*f.BillingCycle)
		if err != nil {
			errs = append(errs, FieldError{Field: "billingCycle", Message: "billingCycle must be one of " + joinNames(billing.Cycles())})
		} else {
			sub.BillingCycle = c
		}
	}
	if f.NextBillingDate != nil {
		d, err := ParseDate(*f.NextBillingDate)
		if err != nil {
			errs = append(errs, FieldError{Field: "nextBillingDate", Message: "nextBillingDate must be a date in YYYY-MM-DD format"})
		} else {
			sub.NextBillingDate = d
		}
	}
	if f.Status != nil {
		s, err := ParseStatus(*f.Status)
		if err != nil {
			errs = append(errs, FieldError{Field: "status", Message: "status must be one of " + joinNames(Statuses())})
		} else {
			sub.Status = s
		}
	}

	return errs
}

// check runs struct validation over the merged record and folds its
// failures into errs, one entry per field.
func check(sub Subscription, errs []FieldError) error {
	// Sign comes from the decimal, not a float64 conversion.
	if sub.Price.IsNegative() {
		errs = appendUnique(errs, FieldError{Field: "price", Message: "price must be greater than or equal to 0"})
	}
	if err := validate.Struct(sub); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validate subscription: %w", err)
		}
		for _, fe := range verrs {
			errs = appendUnique(errs, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Fields: errs}
}

func appendUnique(errs []FieldError, fe FieldError) []FieldError {
	for _, e := range errs {
		if e.Field == fe.Field {
			return errs
		}
	}
	return append(errs, fe)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
}

func joinNames[T fmt.Stringer](values []T) string {
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = v.String()
	}
	return strings.Join(names, ", ")
}
