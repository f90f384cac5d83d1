package slotrepo

import (
	"testing"

	"github.com/weekendsync/availability-api/internal/adapters/contracttest"
	"github.com/weekendsync/availability-api/internal/adapters/postgres/testutil"
	slotrepoport "github.com/weekendsync/availability-api/internal/ports/out/slotrepo"
)

func TestContract_PostgresSlotRepo(t *testing.T) {
	pool := testutil.OpenMigratedPool(t)

	contracttest.RunSlotRepo(t, func(t *testing.T) (slotrepoport.Repository, contracttest.CleanupFunc) {
		t.Helper()
		return NewRepo(pool), nil
	})
}
