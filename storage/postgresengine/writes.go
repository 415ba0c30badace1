package postgresengine

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/readhall/circulation-go/core"
)

const (
	opInsertBook                 = "insert_book"
	opInsertSeat                 = "insert_seat"
	opInsertUser                 = "insert_user"
	opUpdateBook                 = "update_book"
	opSetUserActive              = "set_user_active"
	opDeleteBook                 = "delete_book"
	opDeleteUser                 = "delete_user"
	opCreateRental               = "create_rental"
	opCloseRental                = "close_rental"
	opCreateReservation          = "create_reservation"
	opCancelReservation          = "cancel_reservation"
	opDeleteReturnedRentals      = "delete_returned_rentals"
	opDeleteFinishedReservations = "delete_finished_reservations"

	exprDecrementAvailable = "available_copies - 1"
	exprIncrementAvailable = "available_copies + 1"
	exprBumpVersion        = "version + 1"
)

func publishDateValue(publishDate *time.Time) any {
	if publishDate == nil {
		return nil
	}

	return *publishDate
}

// InsertBook adds a new title to the catalog.
func (s Store) InsertBook(ctx context.Context, book core.Book) error {
	stmt := goqu.Dialect(dialectPostgres).
		Insert(tableBooks).
		Rows(goqu.Record{
			colID:              book.ID.String(),
			colTitle:           book.Title,
			colAuthor:          book.Author,
			colISBN:            book.ISBN,
			colCategory:        book.Category,
			colPublisher:       book.Publisher,
			colPublishDate:     publishDateValue(book.PublishDate),
			colPageCount:       book.PageCount,
			colDescription:     book.Description,
			colTotalCopies:     book.TotalCopies,
			colAvailableCopies: book.AvailableCopies,
			colCreatedAt:       time.Time(book.CreatedAt),
			colVersion:         book.Version,
		})

	sqlQuery, buildErr := s.buildSQL(ctx, stmt)
	if buildErr != nil {
		return buildErr
	}

	_, execErr := s.executeMutation(ctx, opInsertBook, sqlQuery)

	return execErr
}

// InsertSeat adds a new reading-room seat.
func (s Store) InsertSeat(ctx context.Context, seat core.Seat) error {
	stmt := goqu.Dialect(dialectPostgres).
		Insert(tableSeats).
		Rows(goqu.Record{
			colID:          seat.ID.String(),
			colSeatNumber:  seat.SeatNumber,
			colFloor:       seat.Floor,
			colSection:     seat.Section,
			colSeatType:    seat.Type,
			colIsAvailable: seat.IsAvailable,
			colVersion:     seat.Version,
		})

	sqlQuery, buildErr := s.buildSQL(ctx, stmt)
	if buildErr != nil {
		return buildErr
	}

	_, execErr := s.executeMutation(ctx, opInsertSeat, sqlQuery)

	return execErr
}

// InsertUser registers a new account.
func (s Store) InsertUser(ctx context.Context, user core.User) error {
	stmt := goqu.Dialect(dialectPostgres).
		Insert(tableUsers).
		Rows(goqu.Record{
			colID:           user.ID.String(),
			colEmail:        user.Email,
			colPasswordHash: user.PasswordHash,
			colPasswordSalt: user.PasswordSalt,
			colFirstName:    user.FirstName,
			colLastName:     user.LastName,
			colPhoneNumber:  user.PhoneNumber,
			colRole:         user.Role.String(),
			colIsActive:     user.IsActive,
			colCreatedAt:    time.Time(user.CreatedAt),
			colVersion:      user.Version,
		})

	sqlQuery, buildErr := s.buildSQL(ctx, stmt)
	if buildErr != nil {
		return buildErr
	}

	_, execErr := s.executeMutation(ctx, opInsertUser, sqlQuery)

	return execErr
}

// UpdateBook rewrites a title's metadata and copy counts, guarded by the
// version the caller decided against.
func (s Store) UpdateBook(ctx context.Context, book core.Book, expectedVersion uint) error {
	stmt := goqu.Dialect(dialectPostgres).
		Update(tableBooks).
		Set(goqu.Record{
			colTitle:           book.Title,
			colAuthor:          book.Author,
			colISBN:            book.ISBN,
			colCategory:        book.Category,
			colPublisher:       book.Publisher,
			colPublishDate:     publishDateValue(book.PublishDate),
			colPageCount:       book.PageCount,
			colDescription:     book.Description,
			colTotalCopies:     book.TotalCopies,
			colAvailableCopies: book.AvailableCopies,
			colVersion:         goqu.L(exprBumpVersion),
		}).
		Where(goqu.Ex{
			colID:      book.ID.String(),
			colVersion: expectedVersion,
		})

	sqlQuery, buildErr := s.buildSQL(ctx, stmt)
	if buildErr != nil {
		return buildErr
	}

	return s.executeGuardedMutation(ctx, opUpdateBook, sqlQuery)
}

// SetUserActive flips a user's active flag and stamps the change, guarded by
// the version the caller decided against.
func (s Store) SetUserActive(ctx context.Context, userID uuid.UUID, active bool, changedAt time.Time, expectedVersion uint) error {
	stmt := goqu.Dialect(dialectPostgres).
		Update(tableUsers).
		Set(goqu.Record{
			colIsActive:  active,
			colUpdatedAt: changedAt,
			colVersion:   goqu.L(exprBumpVersion),
		}).
		Where(goqu.Ex{
			colID:      userID.String(),
			colVersion: expectedVersion,
		})

	sqlQuery, buildErr := s.buildSQL(ctx, stmt)
	if buildErr != nil {
		return buildErr
	}

	return s.executeGuardedMutation(ctx, opSetUserActive, sqlQuery)
}

// DeleteBook removes a title, guarded by the version the caller decided
// against. The caller is responsible for having verified no copy is out.
func (s Store) DeleteBook(ctx context.Context, bookID uuid.UUID, expectedVersion uint) error {
	stmt := goqu.Dialect(dialectPostgres).
		Delete(tableBooks).
		Where(goqu.Ex{
			colID:      bookID.String(),
			colVersion: expectedVersion,
		})

	sqlQuery, buildErr := s.buildSQL(ctx, stmt)
	if buildErr != nil {
		return buildErr
	}

	return s.executeGuardedMutation(ctx, opDeleteBook, sqlQuery)
}

// DeleteUser removes an account, guarded by the version the caller decided
// against. The caller is responsible for having verified there are no open
// obligations.
func (s Store) DeleteUser(ctx context.Context, userID uuid.UUID, expectedVersion uint) error {
	stmt := goqu.Dialect(dialectPostgres).
		Delete(tableUsers).
		Where(goqu.Ex{
			colID:      userID.String(),
			colVersion: expectedVersion,
		})

	sqlQuery, buildErr := s.buildSQL(ctx, stmt)
	if buildErr != nil {
		return buildErr
	}

	return s.executeGuardedMutation(ctx, opDeleteUser, sqlQuery)
}

// CreateRental records a new rental, takes one copy out of the book's
// available count, and bumps the renting user's version, all in one
// transaction. The user bump serializes concurrent rentals of the same user
// so the per-user rental limit cannot be raced past.
func (s Store) CreateRental(
	ctx context.Context,
	rental core.BookRental,
	expectedBookVersion uint,
	expectedUserVersion uint,
) error {

	builder := goqu.Dialect(dialectPostgres)

	insertStmt := builder.
		Insert(tableRentals).
		Rows(goqu.Record{
			colID:         rental.ID.String(),
			colUserID:     rental.UserID.String(),
			colBookID:     rental.BookID.String(),
			colRentalDate: time.Time(rental.RentalDate),
			colDueDate:    time.Time(rental.DueDate),
			colStatus:     rental.Status.String(),
			colFineCents:  rental.FineCents,
			colNotes:      rental.Notes,
			colVersion:    rental.Version,
		})

	takeCopyStmt := builder.
		Update(tableBooks).
		Set(goqu.Record{
			colAvailableCopies: goqu.L(exprDecrementAvailable),
			colVersion:         goqu.L(exprBumpVersion),
		}).
		Where(goqu.And(
			goqu.Ex{colID: rental.BookID.String(), colVersion: expectedBookVersion},
			goqu.I(colAvailableCopies).Gt(0),
		))

	bumpUserStmt := builder.
		Update(tableUsers).
		Set(goqu.Record{colVersion: goqu.L(exprBumpVersion)}).
		Where(goqu.Ex{
			colID:       rental.UserID.String(),
			colVersion:  expectedUserVersion,
			colIsActive: true,
		})

	queries, buildErr := s.buildTxSQL(ctx, insertStmt, takeCopyStmt, bumpUserStmt)
	if buildErr != nil {
		return buildErr
	}

	return s.executeGuardedTx(ctx, opCreateRental, queries)
}

// CloseRental marks a rental returned with its reported fine and puts the
// copy back into the book's available count, in one transaction.
func (s Store) CloseRental(
	ctx context.Context,
	rentalID uuid.UUID,
	expectedRentalVersion uint,
	bookID uuid.UUID,
	expectedBookVersion uint,
	returnedAt time.Time,
	fineCents int64,
) error {

	builder := goqu.Dialect(dialectPostgres)

	closeStmt := builder.
		Update(tableRentals).
		Set(goqu.Record{
			colStatus:     core.RentalReturned.String(),
			colReturnDate: returnedAt,
			colFineCents:  fineCents,
			colVersion:    goqu.L(exprBumpVersion),
		}).
		Where(goqu.Ex{
			colID:      rentalID.String(),
			colVersion: expectedRentalVersion,
			colStatus:  core.RentalActive.String(),
		})

	returnCopyStmt := builder.
		Update(tableBooks).
		Set(goqu.Record{
			colAvailableCopies: goqu.L(exprIncrementAvailable),
			colVersion:         goqu.L(exprBumpVersion),
		}).
		Where(goqu.And(
			goqu.Ex{colID: bookID.String(), colVersion: expectedBookVersion},
			goqu.I(colAvailableCopies).Lt(goqu.I(colTotalCopies)),
		))

	queries, buildErr := s.buildTxSQL(ctx, closeStmt, returnCopyStmt)
	if buildErr != nil {
		return buildErr
	}

	return s.executeGuardedTx(ctx, opCloseRental, queries)
}

// CreateReservation records a new reservation, flips the seat to occupied,
// and bumps the reserving user's version, all in one transaction. The user
// bump serializes concurrent reservations of the same user so the
// one-reservation-per-user rule cannot be raced past.
func (s Store) CreateReservation(
	ctx context.Context,
	reservation core.SeatReservation,
	expectedSeatVersion uint,
	expectedUserVersion uint,
) error {

	builder := goqu.Dialect(dialectPostgres)

	insertStmt := builder.
		Insert(tableReservations).
		Rows(goqu.Record{
			colID:              reservation.ID.String(),
			colUserID:          reservation.UserID.String(),
			colSeatID:          reservation.SeatID.String(),
			colReservationDate: time.Time(reservation.ReservationDate),
			colStartTime:       time.Time(reservation.StartTime),
			colEndTime:         time.Time(reservation.EndTime),
			colStatus:          reservation.Status.String(),
			colCreatedAt:       time.Time(reservation.CreatedAt),
			colVersion:         reservation.Version,
		})

	occupySeatStmt := builder.
		Update(tableSeats).
		Set(goqu.Record{
			colIsAvailable: false,
			colVersion:     goqu.L(exprBumpVersion),
		}).
		Where(goqu.Ex{
			colID:          reservation.SeatID.String(),
			colVersion:     expectedSeatVersion,
			colIsAvailable: true,
		})

	bumpUserStmt := builder.
		Update(tableUsers).
		Set(goqu.Record{colVersion: goqu.L(exprBumpVersion)}).
		Where(goqu.Ex{
			colID:       reservation.UserID.String(),
			colVersion:  expectedUserVersion,
			colIsActive: true,
		})

	queries, buildErr := s.buildTxSQL(ctx, insertStmt, occupySeatStmt, bumpUserStmt)
	if buildErr != nil {
		return buildErr
	}

	return s.executeGuardedTx(ctx, opCreateReservation, queries)
}

// CancelReservationAndVacateSeat cancels an open reservation and frees its
// seat, in one transaction.
func (s Store) CancelReservationAndVacateSeat(
	ctx context.Context,
	reservationID uuid.UUID,
	expectedReservationVersion uint,
	seatID uuid.UUID,
	expectedSeatVersion uint,
) error {

	builder := goqu.Dialect(dialectPostgres)

	cancelStmt := builder.
		Update(tableReservations).
		Set(goqu.Record{
			colStatus:  core.ReservationCancelled.String(),
			colVersion: goqu.L(exprBumpVersion),
		}).
		Where(goqu.Ex{
			colID:      reservationID.String(),
			colVersion: expectedReservationVersion,
			colStatus:  core.ReservationActive.String(),
		})

	vacateSeatStmt := builder.
		Update(tableSeats).
		Set(goqu.Record{
			colIsAvailable: true,
			colVersion:     goqu.L(exprBumpVersion),
		}).
		Where(goqu.Ex{
			colID:          seatID.String(),
			colVersion:     expectedSeatVersion,
			colIsAvailable: false,
		})

	queries, buildErr := s.buildTxSQL(ctx, cancelStmt, vacateSeatStmt)
	if buildErr != nil {
		return buildErr
	}

	return s.executeGuardedTx(ctx, opCancelReservation, queries)
}

// MarkReservationCancelled cancels a reservation whose seat is no longer
// held, so no seat flip is involved. Used for reservations already past
// their visit.
func (s Store) MarkReservationCancelled(ctx context.Context, reservationID uuid.UUID, expectedVersion uint) error {
	stmt := goqu.Dialect(dialectPostgres).
		Update(tableReservations).
		Set(goqu.Record{
			colStatus:  core.ReservationCancelled.String(),
			colVersion: goqu.L(exprBumpVersion),
		}).
		Where(goqu.Ex{
			colID:      reservationID.String(),
			colVersion: expectedVersion,
		})

	sqlQuery, buildErr := s.buildSQL(ctx, stmt)
	if buildErr != nil {
		return buildErr
	}

	return s.executeGuardedMutation(ctx, opCancelReservation, sqlQuery)
}

// DeleteReturnedRentals erases a user's returned rentals and reports how
// many were removed. Zero is not an error: clearing an empty history is a
// no-op, not a failure.
func (s Store) DeleteReturnedRentals(ctx context.Context, userID uuid.UUID) (int64, error) {
	stmt := goqu.Dialect(dialectPostgres).
		Delete(tableRentals).
		Where(goqu.Ex{
			colUserID: userID.String(),
			colStatus: core.RentalReturned.String(),
		})

	sqlQuery, buildErr := s.buildSQL(ctx, stmt)
	if buildErr != nil {
		return 0, buildErr
	}

	return s.executeMutation(ctx, opDeleteReturnedRentals, sqlQuery)
}

// DeleteFinishedReservations erases a user's completed and cancelled
// reservations and reports how many were removed. Zero removals succeed.
func (s Store) DeleteFinishedReservations(ctx context.Context, userID uuid.UUID) (int64, error) {
	stmt := goqu.Dialect(dialectPostgres).
		Delete(tableReservations).
		Where(goqu.Ex{
			colUserID: userID.String(),
			colStatus: []string{
				core.ReservationCompleted.String(),
				core.ReservationCancelled.String(),
			},
		})

	sqlQuery, buildErr := s.buildSQL(ctx, stmt)
	if buildErr != nil {
		return 0, buildErr
	}

	return s.executeMutation(ctx, opDeleteFinishedReservations, sqlQuery)
}

// buildTxSQL converts the statements of one guarded transaction to SQL.
func (s Store) buildTxSQL(ctx context.Context, stmts ...toSQLer) ([]sqlQueryString, error) {
	queries := make([]sqlQueryString, 0, len(stmts))

	for _, stmt := range stmts {
		sqlQuery, buildErr := s.buildSQL(ctx, stmt)
		if buildErr != nil {
			return nil, buildErr
		}

		queries = append(queries, sqlQuery)
	}

	return queries, nil
}
