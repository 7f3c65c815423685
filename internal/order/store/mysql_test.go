package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderflow/internal/domain"
	"orderflow/internal/testutil"
)

// Unit Tests

func TestNewMySQLStore(t *testing.T) {
	db := &sql.DB{}
	st := NewMySQLStore(db)

	assert.NotNil(t, st)
	assert.Equal(t, db, st.db)
}

// Integration Tests

func TestMySQLStore_PutAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	st := NewMySQLStore(db)
	items := []domain.OrderItem{
		domain.NewOrderItem("PROD-001", 2, decimal.NewFromFloat(9.99)),
		domain.NewOrderItem("PROD-002", 1, decimal.NewFromFloat(24.50)),
	}
	order := domain.NewOrder("5f1c9a3e-2b7d-4e8f-a0c1-d2e3f4a5b6c7", items, time.Now().UTC().Truncate(time.Millisecond))

	err := st.Put(context.Background(), order)
	require.NoError(t, err)

	got, err := st.Get(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
	assert.Equal(t, domain.StatusPending, got.Status)
	assert.Equal(t, "44.48", got.TotalAmount.StringFixed(2))
	require.Len(t, got.Items, 2)
	assert.Equal(t, "PROD-001", got.Items[0].ProductID)
	assert.Equal(t, "19.98", got.Items[0].Subtotal.StringFixed(2))
	assert.Equal(t, "PROD-002", got.Items[1].ProductID)
	assert.Equal(t, "24.50", got.Items[1].Subtotal.StringFixed(2))
}

func TestMySQLStore_Put_Conflict(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	st := NewMySQLStore(db)
	items := []domain.OrderItem{
		domain.NewOrderItem("PROD-001", 1, decimal.NewFromFloat(5.00)),
	}
	order := domain.NewOrder("5f1c9a3e-2b7d-4e8f-a0c1-d2e3f4a5b6c7", items, time.Now().UTC().Truncate(time.Millisecond))

	require.NoError(t, st.Put(context.Background(), order))

	err := st.Put(context.Background(), order)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestMySQLStore_Get_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	st := NewMySQLStore(db)

	_, err := st.Get(context.Background(), "9e8d7c6b-5a40-4f3a-b1a2-0b4f5a1e8c6d")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMySQLStore_CompareAndSwap_Success(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	st := NewMySQLStore(db)
	items := []domain.OrderItem{
		domain.NewOrderItem("PROD-001", 1, decimal.NewFromFloat(5.00)),
	}
	order := domain.NewOrder("5f1c9a3e-2b7d-4e8f-a0c1-d2e3f4a5b6c7", items, time.Now().UTC().Truncate(time.Millisecond))
	require.NoError(t, st.Put(context.Background(), order))

	transitionedAt := time.Now().UTC().Truncate(time.Millisecond)
	updated, err := st.CompareAndSwap(context.Background(), order.ID, domain.StatusPending, func(o domain.Order) domain.Order {
		return o.WithStatus(domain.StatusConfirmed, transitionedAt)
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, updated.Status)

	stored, err := st.Get(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, stored.Status)
	assert.Equal(t, transitionedAt, stored.UpdatedAt.UTC())
	require.Len(t, stored.Items, 1)
}

func TestMySQLStore_CompareAndSwap_StatusMismatch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	st := NewMySQLStore(db)
	items := []domain.OrderItem{
		domain.NewOrderItem("PROD-001", 1, decimal.NewFromFloat(5.00)),
	}
	order := domain.NewOrder("5f1c9a3e-2b7d-4e8f-a0c1-d2e3f4a5b6c7", items, time.Now().UTC().Truncate(time.Millisecond))
	require.NoError(t, st.Put(context.Background(), order))

	_, err := st.CompareAndSwap(context.Background(), order.ID, domain.StatusPending, func(o domain.Order) domain.Order {
		return o.WithStatus(domain.StatusCancelled, time.Now().UTC().Truncate(time.Millisecond))
	})
	require.NoError(t, err)

	_, err = st.CompareAndSwap(context.Background(), order.ID, domain.StatusPending, func(o domain.Order) domain.Order {
		return o.WithStatus(domain.StatusConfirmed, time.Now().UTC().Truncate(time.Millisecond))
	})

	var mismatch *StatusMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, domain.StatusCancelled, mismatch.Current)
}

func TestMySQLStore_CompareAndSwap_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	st := NewMySQLStore(db)

	_, err := st.CompareAndSwap(context.Background(), "9e8d7c6b-5a40-4f3a-b1a2-0b4f5a1e8c6d", domain.StatusPending, func(o domain.Order) domain.Order {
		return o
	})
	assert.ErrorIs(t, err, ErrNotFound)
}
