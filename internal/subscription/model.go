package subscription

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/beheryahmed1991/subscription-tracker/internal/billing"
)

const (
	defaultCurrency = "ARS"
	defaultCategory = "General"
)

// Subscription mirrors the subscriptions table.
type Subscription struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name" validate:"required,max=50"`
	Description     string          `json:"description" validate:"max=100"`
	Price           decimal.Decimal `json:"price"`
	Currency        string          `json:"currency" validate:"required"`
	BillingCycle    billing.Cycle   `json:"billingCycle" validate:"required"`
	NextBillingDate Date            `json:"nextBillingDate" validate:"required"`
	Category        string          `json:"category" validate:"required"`
	Status          Status          `json:"status" validate:"required"`
	Owner           uuid.UUID       `json:"owner"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// MarshalJSON writes the price as a JSON number.
func (s Subscription) MarshalJSON() ([]byte, error) {
	type plain Subscription
	return json.Marshal(struct {
		plain
		Price json.Number `json:"price"`
	}{plain: plain(s), Price: json.Number(s.Price.String())})
}

// Charge exposes the subscription to the billing aggregator.
func (s Subscription) Charge() billing.Charge {
	return billing.Charge{
		Price:  s.Price,
		Cycle:  s.BillingCycle,
		Active: s.Status == Active,
	}
}

// Fields carries user-supplied values for create and update. A nil member
// means "not supplied"; JSON null decodes the same way. Cycle, status and
// date stay raw so that bad values surface as field errors.
type Fields struct {
	Name            *string          `json:"name"`
	Description     *string          `json:"description"`
	Price           *decimal.Decimal `json:"price" swaggertype:"number"`
	Currency        *string          `json:"currency"`
	BillingCycle    *string          `json:"billingCycle" enums:"weekly,monthly,yearly"`
	NextBillingDate *string          `json:"nextBillingDate" example:"2025-03-01"`
	Category        *string          `json:"category"`
	Status          *string          `json:"status" enums:"active,paused,cancelled"`
}

// utcNow returns the store clock reading: UTC at microsecond precision, which
// both Postgres and the fixed-width SQLite encoding preserve.
func utcNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
