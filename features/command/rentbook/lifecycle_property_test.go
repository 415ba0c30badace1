package rentbook_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/readhall/circulation-go/core"
	"github.com/readhall/circulation-go/features/command/rentbook"
	"github.com/readhall/circulation-go/features/command/returnbook"
	"github.com/readhall/circulation-go/testutil/storefake"
)

// Drives random rent/return sequences through the handlers and checks the
// inventory and obligation invariants after every step.
func Test_RentReturnLifecycle_Invariants(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		store := storefake.New()
		ctx := context.Background()
		now := time.Now()

		userCount := rapid.IntRange(1, 3).Draw(rt, "users")
		bookCount := rapid.IntRange(1, 4).Draw(rt, "books")

		userIDs := make([]uuid.UUID, userCount)
		for i := range userIDs {
			userIDs[i] = uuid.New()
			store.SeedUser(core.User{
				ID:       userIDs[i],
				Email:    uuid.NewString() + "@example.com",
				Role:     core.RoleUser,
				IsActive: true,
				Version:  1,
			})
		}

		bookIDs := make([]uuid.UUID, bookCount)
		totals := make(map[uuid.UUID]int, bookCount)
		for i := range bookIDs {
			bookIDs[i] = uuid.New()
			total := rapid.IntRange(1, 3).Draw(rt, "copies")
			totals[bookIDs[i]] = total
			store.SeedBook(core.Book{
				ID:              bookIDs[i],
				Title:           "Book " + uuid.NewString(),
				Author:          "Author",
				TotalCopies:     total,
				AvailableCopies: total,
				Version:         1,
			})
		}

		rentHandler := rentbook.NewCommandHandler(store)
		returnHandler := returnbook.NewCommandHandler(store)

		steps := rapid.IntRange(1, 25).Draw(rt, "steps")
		for step := 0; step < steps; step++ {
			userID := userIDs[rapid.IntRange(0, userCount-1).Draw(rt, "user")]
			bookID := bookIDs[rapid.IntRange(0, bookCount-1).Draw(rt, "book")]

			if rapid.Bool().Draw(rt, "rent") {
				command := rentbook.BuildCommand(uuid.New(), userID, bookID, now)
				_, err := rentHandler.Handle(ctx, command)
				requireBusinessOutcome(rt, err)
			} else {
				command := returnbook.BuildCommand(userID, bookID, now)
				_, err := returnHandler.Handle(ctx, command)
				requireBusinessOutcome(rt, err)
			}

			assertLifecycleInvariants(rt, store, ctx, userIDs, bookIDs, totals)
		}
	})
}

// requireBusinessOutcome accepts success and domain rejections, everything
// else fails the property.
func requireBusinessOutcome(rt *rapid.T, err error) {
	if err == nil {
		return
	}

	if core.KindOf(err) == core.KindUnknown {
		rt.Fatalf("unexpected non-domain error: %v", err)
	}
}

func assertLifecycleInvariants(
	rt *rapid.T,
	store *storefake.Store,
	ctx context.Context,
	userIDs []uuid.UUID,
	bookIDs []uuid.UUID,
	totals map[uuid.UUID]int,
) {

	for _, bookID := range bookIDs {
		book, err := store.GetBookByID(ctx, bookID)
		require.NoError(rt, err)

		if !book.HasValidInventory() {
			rt.Fatalf("inventory invariant violated: %d of %d available",
				book.AvailableCopies, book.TotalCopies)
		}

		if book.TotalCopies != totals[bookID] {
			rt.Fatalf("total copies changed from %d to %d", totals[bookID], book.TotalCopies)
		}

		// every copy off the shelf must be accounted for by an open rental
		rented, err := store.HasActiveRentalForBook(ctx, bookID)
		require.NoError(rt, err)

		if book.RentedCopies() > 0 && !rented {
			rt.Fatalf("%d copies out with no open rental", book.RentedCopies())
		}
	}

	for _, userID := range userIDs {
		count, err := store.CountActiveRentalsByUser(ctx, userID)
		require.NoError(rt, err)

		if count > core.MaxActiveRentalsPerUser {
			rt.Fatalf("user holds %d open rentals, limit is %d", count, core.MaxActiveRentalsPerUser)
		}
	}
}
