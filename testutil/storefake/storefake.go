// Package storefake provides an in-memory store double for handler tests.
//
// It implements the per-feature Store interfaces with the same semantics as
// the Postgres engine: point lookups return storage.ErrNotFound, guarded
// mutations check the expected version and return
// storage.ErrConcurrencyConflict on a mismatch, and paired mutations apply
// both effects or neither.
package storefake

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/readhall/circulation-go/core"
	"github.com/readhall/circulation-go/storage"
)

// Store is the in-memory double. The zero value is not usable; construct it
// with New.
type Store struct {
	mu sync.Mutex

	books        map[uuid.UUID]core.Book
	seats        map[uuid.UUID]core.Seat
	users        map[uuid.UUID]core.User
	rentals      map[uuid.UUID]core.BookRental
	reservations map[uuid.UUID]core.SeatReservation

	forcedConflicts int
}

// New creates an empty fake store.
func New() *Store {
	return &Store{
		books:        make(map[uuid.UUID]core.Book),
		seats:        make(map[uuid.UUID]core.Seat),
		users:        make(map[uuid.UUID]core.User),
		rentals:      make(map[uuid.UUID]core.BookRental),
		reservations: make(map[uuid.UUID]core.SeatReservation),
	}
}

// ForceConflicts makes the next n guarded mutations fail with a concurrency
// conflict regardless of versions, to exercise handler retry behavior.
func (f *Store) ForceConflicts(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.forcedConflicts = n
}

// consumeForcedConflict must be called with the lock held.
func (f *Store) consumeForcedConflict() bool {
	if f.forcedConflicts > 0 {
		f.forcedConflicts--
		return true
	}

	return false
}

/*** Seeding helpers ***/

// SeedBook stores a book as-is.
func (f *Store) SeedBook(book core.Book) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.books[book.ID] = book
}

// SeedSeat stores a seat as-is.
func (f *Store) SeedSeat(seat core.Seat) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seats[seat.ID] = seat
}

// SeedUser stores a user as-is.
func (f *Store) SeedUser(user core.User) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.users[user.ID] = user
}

// SeedRental stores a rental as-is.
func (f *Store) SeedRental(rental core.BookRental) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.rentals[rental.ID] = rental
}

// SeedReservation stores a reservation as-is.
func (f *Store) SeedReservation(reservation core.SeatReservation) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.reservations[reservation.ID] = reservation
}

/*** Reads ***/

// GetBookByID returns the book or storage.ErrNotFound.
func (f *Store) GetBookByID(_ context.Context, bookID uuid.UUID) (core.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	book, ok := f.books[bookID]
	if !ok {
		return core.Book{}, storage.ErrNotFound
	}

	return book, nil
}

// GetSeatByID returns the seat or storage.ErrNotFound.
func (f *Store) GetSeatByID(_ context.Context, seatID uuid.UUID) (core.Seat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	seat, ok := f.seats[seatID]
	if !ok {
		return core.Seat{}, storage.ErrNotFound
	}

	return seat, nil
}

// GetUserByID returns the user or storage.ErrNotFound.
func (f *Store) GetUserByID(_ context.Context, userID uuid.UUID) (core.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[userID]
	if !ok {
		return core.User{}, storage.ErrNotFound
	}

	return user, nil
}

// GetUserByEmail returns the user with the given email or storage.ErrNotFound.
func (f *Store) GetUserByEmail(_ context.Context, email string) (core.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}

	return core.User{}, storage.ErrNotFound
}

// GetRentalByID returns the rental or storage.ErrNotFound.
func (f *Store) GetRentalByID(_ context.Context, rentalID uuid.UUID) (core.BookRental, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rental, ok := f.rentals[rentalID]
	if !ok {
		return core.BookRental{}, storage.ErrNotFound
	}

	return rental, nil
}

// GetActiveRental returns the user's open rental for the book or
// storage.ErrNotFound.
func (f *Store) GetActiveRental(_ context.Context, userID, bookID uuid.UUID) (core.BookRental, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, rental := range f.rentals {
		if rental.UserID == userID && rental.BookID == bookID && rental.Status == core.RentalActive {
			return rental, nil
		}
	}

	return core.BookRental{}, storage.ErrNotFound
}

// GetReservationByID returns the reservation or storage.ErrNotFound.
func (f *Store) GetReservationByID(_ context.Context, reservationID uuid.UUID) (core.SeatReservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	reservation, ok := f.reservations[reservationID]
	if !ok {
		return core.SeatReservation{}, storage.ErrNotFound
	}

	return reservation, nil
}

// GetActiveReservationByUser returns the user's open reservation or
// storage.ErrNotFound.
func (f *Store) GetActiveReservationByUser(_ context.Context, userID uuid.UUID) (core.SeatReservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, reservation := range f.reservations {
		if reservation.UserID == userID && reservation.Status == core.ReservationActive {
			return reservation, nil
		}
	}

	return core.SeatReservation{}, storage.ErrNotFound
}

// CountActiveRentalsByUser counts the user's open rentals.
func (f *Store) CountActiveRentalsByUser(_ context.Context, userID uuid.UUID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := 0
	for _, rental := range f.rentals {
		if rental.UserID == userID && rental.Status == core.RentalActive {
			count++
		}
	}

	return count, nil
}

// HasActiveRental reports whether the user has the book out.
func (f *Store) HasActiveRental(_ context.Context, userID, bookID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, rental := range f.rentals {
		if rental.UserID == userID && rental.BookID == bookID && rental.Status == core.RentalActive {
			return true, nil
		}
	}

	return false, nil
}

// HasActiveRentalForBook reports whether any copy of the book is out.
func (f *Store) HasActiveRentalForBook(_ context.Context, bookID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, rental := range f.rentals {
		if rental.BookID == bookID && rental.Status == core.RentalActive {
			return true, nil
		}
	}

	return false, nil
}

// HasActiveReservation reports whether the user holds an open reservation.
func (f *Store) HasActiveReservation(_ context.Context, userID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, reservation := range f.reservations {
		if reservation.UserID == userID && reservation.Status == core.ReservationActive {
			return true, nil
		}
	}

	return false, nil
}

// ListActiveRentalsDueBefore returns open rentals with a due date before
// asOf, soonest due first.
func (f *Store) ListActiveRentalsDueBefore(_ context.Context, asOf time.Time) ([]core.BookRental, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []core.BookRental
	for _, rental := range f.rentals {
		if rental.Status == core.RentalActive && rental.DueDate.Before(asOf) {
			result = append(result, rental)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].DueDate.Before(result[j].DueDate)
	})

	return result, nil
}

// ListUsers returns all users ordered by creation time.
func (f *Store) ListUsers(_ context.Context) ([]core.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	result := make([]core.User, 0, len(f.users))
	for _, user := range f.users {
		result = append(result, user)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}

// ListBooks returns the catalog ordered by title, filtered on title, author,
// and ISBN when a search term is given.
func (f *Store) ListBooks(_ context.Context, search string) ([]core.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	needle := strings.ToLower(search)

	result := make([]core.Book, 0, len(f.books))
	for _, book := range f.books {
		if needle != "" &&
			!strings.Contains(strings.ToLower(book.Title), needle) &&
			!strings.Contains(strings.ToLower(book.Author), needle) &&
			!strings.Contains(strings.ToLower(book.ISBN), needle) {
			continue
		}

		result = append(result, book)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Title < result[j].Title
	})

	return result, nil
}

// ListSeats returns all seats ordered by floor and seat number.
func (f *Store) ListSeats(_ context.Context) ([]core.Seat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	result := make([]core.Seat, 0, len(f.seats))
	for _, seat := range f.seats {
		result = append(result, seat)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Floor != result[j].Floor {
			return result[i].Floor < result[j].Floor
		}

		return result[i].SeatNumber < result[j].SeatNumber
	})

	return result, nil
}

// ListRentalsByUser returns one user's rental history, newest first.
func (f *Store) ListRentalsByUser(_ context.Context, userID uuid.UUID) ([]core.BookRental, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []core.BookRental
	for _, rental := range f.rentals {
		if rental.UserID == userID {
			result = append(result, rental)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].RentalDate.After(result[j].RentalDate)
	})

	return result, nil
}

// ListReservationsByUser returns one user's reservation history, newest first.
func (f *Store) ListReservationsByUser(_ context.Context, userID uuid.UUID) ([]core.SeatReservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []core.SeatReservation
	for _, reservation := range f.reservations {
		if reservation.UserID == userID {
			result = append(result, reservation)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ReservationDate.After(result[j].ReservationDate)
	})

	return result, nil
}

// Stats returns the dashboard counts.
func (f *Store) Stats(_ context.Context) (storage.Counts, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	counts := storage.Counts{
		Books: len(f.books),
		Seats: len(f.seats),
		Users: len(f.users),
	}

	for _, rental := range f.rentals {
		if rental.Status == core.RentalActive {
			counts.ActiveRentals++
		}
	}

	for _, reservation := range f.reservations {
		if reservation.Status == core.ReservationActive {
			counts.ActiveReservations++
		}
	}

	return counts, nil
}

/*** Writes ***/

// InsertBook stores a new book.
func (f *Store) InsertBook(_ context.Context, book core.Book) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.books[book.ID] = book

	return nil
}

// InsertSeat stores a new seat.
func (f *Store) InsertSeat(_ context.Context, seat core.Seat) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seats[seat.ID] = seat

	return nil
}

// InsertUser stores a new user.
func (f *Store) InsertUser(_ context.Context, user core.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.users[user.ID] = user

	return nil
}

// UpdateBook replaces the book if the version matches.
func (f *Store) UpdateBook(_ context.Context, book core.Book, expectedVersion uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.books[book.ID]
	if f.consumeForcedConflict() || !ok || stored.Version != expectedVersion {
		return storage.ErrConcurrencyConflict
	}

	book.Version = expectedVersion + 1
	f.books[book.ID] = book

	return nil
}

// SetUserActive flips the user's active flag if the version matches.
func (f *Store) SetUserActive(
	_ context.Context,
	userID uuid.UUID,
	active bool,
	changedAt time.Time,
	expectedVersion uint,
) error {

	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[userID]
	if f.consumeForcedConflict() || !ok || user.Version != expectedVersion {
		return storage.ErrConcurrencyConflict
	}

	user.IsActive = active
	user.UpdatedAt = &changedAt
	user.Version++
	f.users[userID] = user

	return nil
}

// DeleteBook removes the book if the version matches.
func (f *Store) DeleteBook(_ context.Context, bookID uuid.UUID, expectedVersion uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	book, ok := f.books[bookID]
	if f.consumeForcedConflict() || !ok || book.Version != expectedVersion {
		return storage.ErrConcurrencyConflict
	}

	delete(f.books, bookID)

	return nil
}

// DeleteUser removes the user if the version matches.
func (f *Store) DeleteUser(_ context.Context, userID uuid.UUID, expectedVersion uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[userID]
	if f.consumeForcedConflict() || !ok || user.Version != expectedVersion {
		return storage.ErrConcurrencyConflict
	}

	delete(f.users, userID)

	return nil
}

// CreateRental inserts the rental, takes a copy from the book, and bumps the
// user version, all or nothing.
func (f *Store) CreateRental(
	_ context.Context,
	rental core.BookRental,
	expectedBookVersion uint,
	expectedUserVersion uint,
) error {

	f.mu.Lock()
	defer f.mu.Unlock()

	book, bookOK := f.books[rental.BookID]
	user, userOK := f.users[rental.UserID]

	switch {
	case f.consumeForcedConflict():
		return storage.ErrConcurrencyConflict
	case !bookOK || book.Version != expectedBookVersion || book.AvailableCopies < 1:
		return storage.ErrConcurrencyConflict
	case !userOK || user.Version != expectedUserVersion || !user.IsActive:
		return storage.ErrConcurrencyConflict
	}

	book.AvailableCopies--
	book.Version++
	user.Version++

	f.books[rental.BookID] = book
	f.users[rental.UserID] = user
	f.rentals[rental.ID] = rental

	return nil
}

// CloseRental marks the rental Returned and puts the copy back, all or
// nothing.
func (f *Store) CloseRental(
	_ context.Context,
	rentalID uuid.UUID,
	expectedRentalVersion uint,
	bookID uuid.UUID,
	expectedBookVersion uint,
	returnedAt time.Time,
	fineCents int64,
) error {

	f.mu.Lock()
	defer f.mu.Unlock()

	rental, rentalOK := f.rentals[rentalID]
	book, bookOK := f.books[bookID]

	switch {
	case f.consumeForcedConflict():
		return storage.ErrConcurrencyConflict
	case !rentalOK || rental.Version != expectedRentalVersion || rental.Status != core.RentalActive:
		return storage.ErrConcurrencyConflict
	case !bookOK || book.Version != expectedBookVersion || book.AvailableCopies >= book.TotalCopies:
		return storage.ErrConcurrencyConflict
	}

	rental.Status = core.RentalReturned
	rental.ReturnDate = &returnedAt
	rental.FineCents = fineCents
	rental.Version++

	book.AvailableCopies++
	book.Version++

	f.rentals[rentalID] = rental
	f.books[bookID] = book

	return nil
}

// CreateReservation inserts the reservation, occupies the seat, and bumps
// the user version, all or nothing.
func (f *Store) CreateReservation(
	_ context.Context,
	reservation core.SeatReservation,
	expectedSeatVersion uint,
	expectedUserVersion uint,
) error {

	f.mu.Lock()
	defer f.mu.Unlock()

	seat, seatOK := f.seats[reservation.SeatID]
	user, userOK := f.users[reservation.UserID]

	switch {
	case f.consumeForcedConflict():
		return storage.ErrConcurrencyConflict
	case !seatOK || seat.Version != expectedSeatVersion || !seat.IsAvailable:
		return storage.ErrConcurrencyConflict
	case !userOK || user.Version != expectedUserVersion || !user.IsActive:
		return storage.ErrConcurrencyConflict
	}

	seat.IsAvailable = false
	seat.Version++
	user.Version++

	f.seats[reservation.SeatID] = seat
	f.users[reservation.UserID] = user
	f.reservations[reservation.ID] = reservation

	return nil
}

// CancelReservationAndVacateSeat cancels an Active reservation and vacates
// its seat, all or nothing.
func (f *Store) CancelReservationAndVacateSeat(
	_ context.Context,
	reservationID uuid.UUID,
	expectedReservationVersion uint,
	seatID uuid.UUID,
	expectedSeatVersion uint,
) error {

	f.mu.Lock()
	defer f.mu.Unlock()

	reservation, resOK := f.reservations[reservationID]
	seat, seatOK := f.seats[seatID]

	switch {
	case f.consumeForcedConflict():
		return storage.ErrConcurrencyConflict
	case !resOK || reservation.Version != expectedReservationVersion || reservation.Status != core.ReservationActive:
		return storage.ErrConcurrencyConflict
	case !seatOK || seat.Version != expectedSeatVersion || seat.IsAvailable:
		return storage.ErrConcurrencyConflict
	}

	reservation.Status = core.ReservationCancelled
	reservation.Version++

	seat.IsAvailable = true
	seat.Version++

	f.reservations[reservationID] = reservation
	f.seats[seatID] = seat

	return nil
}

// MarkReservationCancelled rewrites a reservation's status to Cancelled if
// the version matches.
func (f *Store) MarkReservationCancelled(
	_ context.Context,
	reservationID uuid.UUID,
	expectedVersion uint,
) error {

	f.mu.Lock()
	defer f.mu.Unlock()

	reservation, ok := f.reservations[reservationID]
	if f.consumeForcedConflict() || !ok || reservation.Version != expectedVersion {
		return storage.ErrConcurrencyConflict
	}

	reservation.Status = core.ReservationCancelled
	reservation.Version++
	f.reservations[reservationID] = reservation

	return nil
}

// DeleteReturnedRentals erases the user's Returned rentals.
func (f *Store) DeleteReturnedRentals(_ context.Context, userID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var deleted int64
	for id, rental := range f.rentals {
		if rental.UserID == userID && rental.Status == core.RentalReturned {
			delete(f.rentals, id)
			deleted++
		}
	}

	return deleted, nil
}

// DeleteFinishedReservations erases the user's Completed and Cancelled
// reservations.
func (f *Store) DeleteFinishedReservations(_ context.Context, userID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var deleted int64
	for id, reservation := range f.reservations {
		if reservation.UserID == userID && reservation.Status != core.ReservationActive {
			delete(f.reservations, id)
			deleted++
		}
	}

	return deleted, nil
}
