package subscription

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/beheryahmed1991/subscription-tracker/internal/billing"
)

func ptr[T any](v T) *T { return &v }

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validFields() Fields {
	return Fields{
		Name:            ptr("Netflix"),
		Description:     ptr("Premium plan"),
		Price:           ptr(decimal.RequireFromString("1200")),
		Currency:        ptr("usd"),
		BillingCycle:    ptr("monthly"),
		NextBillingDate: ptr("2025-03-01"),
		Category:        ptr("Streaming"),
	}
}

func newMemoryService(t *testing.T) Service {
	t.Helper()
	return NewService(NewMemoryStore(), newTestLogger())
}

func TestService_CreateThenGet(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService(t)
	owner := uuid.New()

	created, err := svc.Create(ctx, owner, validFields())
	require.NoError(t, err)

	got, err := svc.Get(ctx, owner, created.ID)
	require.NoError(t, err)

	assert.Equal(t, created, got)
	assert.Equal(t, owner, got.Owner)
	assert.Equal(t, "Netflix", got.Name)
	assert.Equal(t, "Premium plan", got.Description)
	assert.True(t, got.Price.Equal(decimal.NewFromInt(1200)))
	assert.Equal(t, "USD", got.Currency)
	assert.Equal(t, billing.Monthly, got.BillingCycle)
	assert.Equal(t, Date{Year: 2025, Month: 3, Day: 1}, got.NextBillingDate)
	assert.Equal(t, "Streaming", got.Category)
	assert.Equal(t, Active, got.Status)
	assert.Equal(t, got.CreatedAt, got.UpdatedAt)
}

func TestService_CreateDefaults(t *testing.T) {
	svc := newMemoryService(t)

	sub, err := svc.Create(context.Background(), uuid.New(), Fields{
		Name:            ptr("  Gym  "),
		Price:           ptr(decimal.Zero),
		BillingCycle:    ptr("Weekly"),
		NextBillingDate: ptr("2025-01-10"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Gym", sub.Name)
	assert.Equal(t, "ARS", sub.Currency)
	assert.Equal(t, "General", sub.Category)
	assert.Equal(t, Active, sub.Status)
	assert.Equal(t, billing.Weekly, sub.BillingCycle)
	assert.True(t, sub.Price.IsZero())
}

func TestService_CreateValidation(t *testing.T) {
	tests := []struct {
		name   string
		fields Fields
		want   []string
	}{
		{
			name:   "empty payload",
			fields: Fields{},
			want:   []string{"price", "name", "billingCycle", "nextBillingDate"},
		},
		{
			name: "bad enums and date",
			fields: func() Fields {
				f := validFields()
				f.BillingCycle = ptr("daily")
				f.Status = ptr("archived")
				f.NextBillingDate = ptr("01/03/2025")
				return f
			}(),
			want: []string{"billingCycle", "nextBillingDate", "status"},
		},
		{
			name: "too long and negative",
			fields: func() Fields {
				f := validFields()
				f.Name = ptr(fmt.Sprintf("%051d", 0))
				f.Description = ptr(fmt.Sprintf("%0101d", 0))
				f.Price = ptr(decimal.RequireFromString("-0.01"))
				return f
			}(),
			want: []string{"name", "description", "price"},
		},
		{
			name: "negative price below float64 range",
			fields: func() Fields {
				f := validFields()
				f.Price = ptr(decimal.RequireFromString("-1e-400"))
				return f
			}(),
			want: []string{"price"},
		},
		{
			name: "blank name",
			fields: func() Fields {
				f := validFields()
				f.Name = ptr("   ")
				return f
			}(),
			want: []string{"name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newMemoryService(t)
			owner := uuid.New()

			_, err := svc.Create(context.Background(), owner, tt.fields)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			got := make([]string, 0, len(verr.Fields))
			for _, f := range verr.Fields {
				got = append(got, f.Field)
				assert.NotEmpty(t, f.Message)
			}
			assert.ElementsMatch(t, tt.want, got)

			subs, err := svc.List(context.Background(), owner)
			require.NoError(t, err)
			assert.Empty(t, subs)
		})
	}
}

func TestService_NameAtLimitsAccepted(t *testing.T) {
	f := validFields()
	f.Name = ptr(fmt.Sprintf("%050d", 0))
	f.Description = ptr(fmt.Sprintf("%0100d", 0))

	_, err := newMemoryService(t).Create(context.Background(), uuid.New(), f)
	require.NoError(t, err)
}

func TestService_FreeTextCurrencyAndCategory(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService(t)
	owner := uuid.New()

	f := validFields()
	f.Currency = ptr("abcdefghij")
	f.Category = ptr(strings.Repeat("c", 200))

	sub, err := svc.Create(ctx, owner, f)
	require.NoError(t, err)
	assert.Equal(t, "ABCDEFGHIJ", sub.Currency)
	assert.Len(t, sub.Category, 200)

	sub, err = svc.Update(ctx, owner, sub.ID, Fields{Currency: ptr(strings.Repeat("x", 40))})
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("X", 40), sub.Currency)
}

func TestService_UpdateRejectsTinyNegativePrice(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService(t)
	owner := uuid.New()

	sub, err := svc.Create(ctx, owner, validFields())
	require.NoError(t, err)

	_, err = svc.Update(ctx, owner, sub.ID, Fields{Price: ptr(decimal.RequireFromString("-1e-400"))})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("price"))

	got, err := svc.Get(ctx, owner, sub.ID)
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(decimal.NewFromInt(1200)))
}

func TestService_OwnershipIsolation(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService(t)
	alice, bob := uuid.New(), uuid.New()

	sub, err := svc.Create(ctx, alice, validFields())
	require.NoError(t, err)

	_, err = svc.Get(ctx, bob, sub.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	// payload validity does not matter
	_, err = svc.Update(ctx, bob, sub.ID, validFields())
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.Update(ctx, bob, sub.ID, Fields{Price: ptr(decimal.NewFromInt(-5))})
	assert.ErrorIs(t, err, ErrForbidden)

	err = svc.Delete(ctx, bob, sub.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := svc.Get(ctx, alice, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, sub, got)
}

func TestService_MissingRecord(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService(t)
	caller, id := uuid.New(), uuid.New()

	_, err := svc.Get(ctx, caller, id)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Update(ctx, caller, id, validFields())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, caller, id), ErrNotFound)
}

func TestService_DeleteThenGet(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService(t)
	owner := uuid.New()

	sub, err := svc.Create(ctx, owner, validFields())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, owner, sub.ID))

	_, err = svc.Get(ctx, owner, sub.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, owner, sub.ID), ErrNotFound)
}

func TestService_UpdateKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService(t)
	owner := uuid.New()

	sub, err := svc.Create(ctx, owner, validFields())
	require.NoError(t, err)

	updated, err := svc.Update(ctx, owner, sub.ID, Fields{
		Price:  ptr(decimal.RequireFromString("1500.50")),
		Status: ptr("paused"),
	})
	require.NoError(t, err)

	assert.Equal(t, sub.ID, updated.ID)
	assert.Equal(t, owner, updated.Owner)
	assert.Equal(t, sub.CreatedAt, updated.CreatedAt)
	assert.False(t, updated.UpdatedAt.Before(sub.UpdatedAt))
	assert.Equal(t, sub.Name, updated.Name)
	assert.Equal(t, Paused, updated.Status)
	assert.True(t, updated.Price.Equal(decimal.RequireFromString("1500.50")))
}

func TestService_UpdateInvalidLeavesRecord(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService(t)
	owner := uuid.New()

	sub, err := svc.Create(ctx, owner, validFields())
	require.NoError(t, err)

	_, err = svc.Update(ctx, owner, sub.ID, Fields{Name: ptr(""), BillingCycle: ptr("hourly")})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("name"))
	assert.True(t, verr.Has("billingCycle"))

	got, err := svc.Get(ctx, owner, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, sub, got)
}

func TestService_UpdateIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	svc := NewService(store, newTestLogger())
	owner := uuid.New()

	sub, err := svc.Create(ctx, owner, validFields())
	require.NoError(t, err)

	f := Fields{Name: ptr("Netflix 4K"), BillingCycle: ptr("yearly")}
	first, err := svc.Update(ctx, owner, sub.ID, f)
	require.NoError(t, err)
	second, err := svc.Update(ctx, owner, sub.ID, f)
	require.NoError(t, err)

	// only the modification time may move
	first.UpdatedAt, second.UpdatedAt = sub.UpdatedAt, sub.UpdatedAt
	assert.Equal(t, first, second)
}

func TestService_ListScopedAndOrdered(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService(t)
	alice, bob := uuid.New(), uuid.New()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		mine = map[uuid.UUID]bool{}
	)
	for i := 0; i < 20; i++ {
		owner := alice
		if i%2 == 1 {
			owner = bob
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			sub, err := svc.Create(ctx, owner, validFields())
			if err != nil {
				t.Error(err)
				return
			}
			if owner == alice {
				mu.Lock()
				mine[sub.ID] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	subs, err := svc.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, subs, len(mine))
	for i, sub := range subs {
		assert.Equal(t, alice, sub.Owner)
		assert.True(t, mine[sub.ID])
		if i > 0 {
			assert.False(t, sub.CreatedAt.After(subs[i-1].CreatedAt), "list must be newest first")
		}
	}

	empty, err := svc.List(ctx, uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestService_Summary(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService(t)
	owner := uuid.New()

	create := func(price, cycle, status string) {
		f := validFields()
		f.Price = ptr(decimal.RequireFromString(price))
		f.BillingCycle = ptr(cycle)
		f.Status = ptr(status)
		_, err := svc.Create(ctx, owner, f)
		require.NoError(t, err)
	}
	create("1200", "monthly", "active")
	create("12000", "yearly", "active")
	create("300", "weekly", "active")
	create("100", "monthly", "paused")
	create("999", "yearly", "cancelled")

	// another user's spend never leaks in
	_, err := svc.Create(ctx, uuid.New(), validFields())
	require.NoError(t, err)

	summary, err := svc.Summary(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, "3400", summary.MonthlyTotal.String())
	assert.Equal(t, "42000", summary.YearlyTotal.String())
	assert.Equal(t, 3, summary.ActiveCount)
	assert.Equal(t, 5, summary.TotalCount)
}

func TestService_ForbiddenNeverMutates(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	svc := NewService(store, newTestLogger())

	ctx := context.Background()
	owner, intruder, id := uuid.New(), uuid.New(), uuid.New()

	store.EXPECT().FindByID(gomock.Any(), id).Return(Subscription{ID: id, Owner: owner}, nil).Times(2)
	store.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	store.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.Update(ctx, intruder, id, validFields())
	require.ErrorIs(t, err, ErrForbidden)
	require.ErrorIs(t, svc.Delete(ctx, intruder, id), ErrForbidden)
}

func TestService_ConcurrentDeleteReportsNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	svc := NewService(store, newTestLogger())

	ctx := context.Background()
	owner, id := uuid.New(), uuid.New()
	f := validFields()

	gomock.InOrder(
		store.EXPECT().FindByID(gomock.Any(), id).Return(Subscription{ID: id, Owner: owner}, nil),
		store.EXPECT().Update(gomock.Any(), id, f).Return(Subscription{}, ErrNotFound),
	)

	_, err := svc.Update(ctx, owner, id, f)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestService_StorageErrorsPropagate(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	svc := NewService(store, newTestLogger())

	boom := fmt.Errorf("%w: list subscriptions: %w", ErrStorage, errors.New("connection reset"))
	owner := uuid.New()

	store.EXPECT().FindAllByOwner(gomock.Any(), owner).Return(nil, boom).Times(2)

	_, err := svc.List(context.Background(), owner)
	require.ErrorIs(t, err, ErrStorage)

	_, err = svc.Summary(context.Background(), owner)
	require.ErrorIs(t, err, ErrStorage)
}

func TestService_CreatePassesCallerAsOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	svc := NewService(store, newTestLogger())

	caller := uuid.New()
	f := validFields()
	store.EXPECT().Create(gomock.Any(), caller, f).Return(Subscription{ID: uuid.New(), Owner: caller}, nil)

	sub, err := svc.Create(context.Background(), caller, f)
	require.NoError(t, err)
	assert.Equal(t, caller, sub.Owner)
}
