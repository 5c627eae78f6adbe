package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/Apurer/autoparts-pos/internal/domains/catalog/domain"
	"github.com/Apurer/autoparts-pos/internal/domains/sales/domain"
	"github.com/Apurer/autoparts-pos/internal/domains/sales/ports"
)

func TestSessionStore_RoundTripAndPurge(t *testing.T) {
	db := setupSQLite(t)
	pad := seedPart(t, db, "Brake Pad", "450", "300", 10)
	buyer := seedCustomer(t, db, "Thabo Nkosi")
	store := NewSessionStore(db)
	ctx := context.Background()

	session := &domain.Session{
		ID:        "8f14e45f-ceea-467f-a0e6-7ad4b1d5e9d1",
		Cart:      cartFor(t, buyer, []*catalogdomain.Part{pad}, 2),
		CreatedAt: soldAt,
	}
	session.Touch(soldAt, time.Hour)
	require.NoError(t, store.Save(ctx, session))

	loaded, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Cart.Lines, 1)
	assert.Equal(t, "Thabo Nkosi", loaded.Cart.CustomerName)
	assert.True(t, loaded.Cart.GrandTotal.Equal(session.Cart.GrandTotal))
	assert.True(t, loaded.ExpiresAt.Equal(soldAt.Add(time.Hour)))
	assert.Nil(t, loaded.LastReceipt)

	receipt := domain.NewReceipt("20240315-001", soldAt, session.Cart)
	session.Cart.Clear()
	session.LastReceiptNumber = receipt.Number
	session.LastReceipt = receipt
	require.NoError(t, store.Save(ctx, session))

	loaded, err = store.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.True(t, loaded.Cart.IsEmpty())
	require.NotNil(t, loaded.LastReceipt)
	assert.Equal(t, "20240315-001", loaded.LastReceipt.Number)
	assert.Equal(t, 2, loaded.LastReceipt.TotalQuantity)

	purged, err := store.PurgeExpired(ctx, soldAt.Add(30*time.Minute))
	require.NoError(t, err)
	assert.Zero(t, purged)
	purged, err = store.PurgeExpired(ctx, soldAt.Add(time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, purged)

	_, err = store.Get(ctx, session.ID)
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
	assert.ErrorIs(t, store.Delete(ctx, session.ID), ports.ErrSessionNotFound)
}
