package slotrepo_test

import (
	"testing"

	"github.com/weekendsync/availability-api/internal/adapters/contracttest"
	memslotrepo "github.com/weekendsync/availability-api/internal/adapters/memory/slotrepo"
	slotrepoport "github.com/weekendsync/availability-api/internal/ports/out/slotrepo"
)

func TestRepo_Contract(t *testing.T) {
	t.Parallel()

	contracttest.RunSlotRepo(t, func(t *testing.T) (slotrepoport.Repository, contracttest.CleanupFunc) {
		return memslotrepo.NewRepo(), nil
	})
}
