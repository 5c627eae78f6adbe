//go:build integration

package postgres

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/Apurer/autoparts-pos/internal/domains/catalog/domain"
	"github.com/Apurer/autoparts-pos/internal/domains/sales/application"
	"github.com/Apurer/autoparts-pos/internal/domains/sales/domain"
	"github.com/Apurer/autoparts-pos/internal/domains/sales/ports"
	"github.com/Apurer/autoparts-pos/internal/platform/postgres/postgrestest"
)

func TestTxManager_Postgres_ConcurrentCheckoutsNeverOversell(t *testing.T) {
	db := postgrestest.Start(t)
	pad := seedPart(t, db, "Brake Pad", "450", "300", 10)
	filter := seedPart(t, db, "Oil Filter", "80", "40", 10)
	committer := application.NewCommitter(NewTxManager(db), application.WithNumbering(application.NumberingDurable))

	const tills = 12
	carts := make([]*domain.Cart, tills)
	for i := range carts {
		buyer := seedCustomer(t, db, fmt.Sprintf("Customer %02d", i))
		// Alternate line order so tills would deadlock without ordered locking.
		if i%2 == 0 {
			carts[i] = cartFor(t, buyer, []*catalogdomain.Part{pad, filter}, 3, 3)
		} else {
			carts[i] = cartFor(t, buyer, []*catalogdomain.Part{filter, pad}, 3, 3)
		}
	}

	var wg sync.WaitGroup
	numbers := make(chan string, tills)
	errs := make(chan error, tills)
	for i := range carts {
		wg.Add(1)
		go func(cart *domain.Cart) {
			defer wg.Done()
			receipt, err := committer.Commit(context.Background(), ports.CommitRequest{Cart: cart})
			if err != nil {
				errs <- err
				return
			}
			numbers <- receipt.Number
		}(carts[i])
	}
	wg.Wait()
	close(numbers)
	close(errs)

	seen := map[string]bool{}
	for n := range numbers {
		assert.False(t, seen[n], "duplicate receipt number %s", n)
		seen[n] = true
	}
	assert.Len(t, seen, 3)
	for err := range errs {
		require.ErrorIs(t, err, domain.ErrStockConflict)
	}
	assert.Equal(t, 1, stockOf(t, db, pad.ID))
	assert.Equal(t, 1, stockOf(t, db, filter.ID))
}
