package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/readhall/circulation-go/core"
	"github.com/readhall/circulation-go/storage"
)

const (
	colID              = "id"
	colTitle           = "title"
	colAuthor          = "author"
	colISBN            = "isbn"
	colCategory        = "category"
	colPublisher       = "publisher"
	colPublishDate     = "publish_date"
	colPageCount       = "page_count"
	colDescription     = "description"
	colTotalCopies     = "total_copies"
	colAvailableCopies = "available_copies"
	colCreatedAt       = "created_at"
	colVersion         = "version"

	colSeatNumber  = "seat_number"
	colFloor       = "floor"
	colSection     = "section"
	colSeatType    = "seat_type"
	colIsAvailable = "is_available"

	colEmail        = "email"
	colPasswordHash = "password_hash"
	colPasswordSalt = "password_salt"
	colFirstName    = "first_name"
	colLastName     = "last_name"
	colPhoneNumber  = "phone_number"
	colRole         = "role"
	colIsActive     = "is_active"
	colUpdatedAt    = "updated_at"

	colUserID     = "user_id"
	colBookID     = "book_id"
	colRentalDate = "rental_date"
	colDueDate    = "due_date"
	colReturnDate = "return_date"
	colStatus     = "status"
	colFineCents  = "fine_cents"
	colNotes      = "notes"

	colSeatID          = "seat_id"
	colReservationDate = "reservation_date"
	colStartTime       = "start_time"
	colEndTime         = "end_time"

	opGetBook            = "get_book"
	opGetSeat            = "get_seat"
	opGetUser            = "get_user"
	opGetRental          = "get_rental"
	opGetReservation     = "get_reservation"
	opListBooks          = "list_books"
	opListUsers          = "list_users"
	opListSeats          = "list_seats"
	opListRentals        = "list_rentals"
	opListReservations   = "list_reservations"
	opListOverdueRentals = "list_overdue_rentals"
	opCountRows          = "count_rows"
	opStats              = "stats"

	searchPatternWildcard = "%"
)

// toSQLer is satisfied by all goqu dataset types.
type toSQLer interface {
	ToSQL() (string, []any, error)
}

func (s Store) buildSQL(ctx context.Context, stmt toSQLer) (sqlQueryString, error) {
	sqlQuery, _, toSQLErr := stmt.ToSQL()
	if toSQLErr != nil {
		s.logError(ctx, logMsgBuildQueryFailed, logAttrError, toSQLErr.Error())
		return "", errors.Join(storage.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func bookColumns() []any {
	return []any{
		colID, colTitle, colAuthor, colISBN, colCategory, colPublisher,
		colPublishDate, colPageCount, colDescription, colTotalCopies,
		colAvailableCopies, colCreatedAt, colVersion,
	}
}

func seatColumns() []any {
	return []any{colID, colSeatNumber, colFloor, colSection, colSeatType, colIsAvailable, colVersion}
}

func userColumns() []any {
	return []any{
		colID, colEmail, colPasswordHash, colPasswordSalt, colFirstName,
		colLastName, colPhoneNumber, colRole, colIsActive, colCreatedAt,
		colUpdatedAt, colVersion,
	}
}

func rentalColumns() []any {
	return []any{
		colID, colUserID, colBookID, colRentalDate, colDueDate, colReturnDate,
		colStatus, colFineCents, colNotes, colVersion,
	}
}

func reservationColumns() []any {
	return []any{
		colID, colUserID, colSeatID, colReservationDate, colStartTime,
		colEndTime, colStatus, colCreatedAt, colVersion,
	}
}

func parseScannedID(raw string) (uuid.UUID, error) {
	id, parseErr := uuid.Parse(raw)
	if parseErr != nil {
		return uuid.Nil, errors.Join(storage.ErrScanningRowFailed, parseErr)
	}

	return id, nil
}

func scanBook(scan func(dest ...any) error) (core.Book, error) {
	var (
		rawID       string
		publishDate sql.NullTime
		book        core.Book
	)

	scanErr := scan(
		&rawID, &book.Title, &book.Author, &book.ISBN, &book.Category,
		&book.Publisher, &publishDate, &book.PageCount, &book.Description,
		&book.TotalCopies, &book.AvailableCopies, &book.CreatedAt, &book.Version,
	)
	if scanErr != nil {
		return core.Book{}, errors.Join(storage.ErrScanningRowFailed, scanErr)
	}

	id, idErr := parseScannedID(rawID)
	if idErr != nil {
		return core.Book{}, idErr
	}
	book.ID = id

	if publishDate.Valid {
		publishedAt := publishDate.Time
		book.PublishDate = &publishedAt
	}

	return book, nil
}

func scanSeat(scan func(dest ...any) error) (core.Seat, error) {
	var (
		rawID string
		seat  core.Seat
	)

	scanErr := scan(
		&rawID, &seat.SeatNumber, &seat.Floor, &seat.Section, &seat.Type,
		&seat.IsAvailable, &seat.Version,
	)
	if scanErr != nil {
		return core.Seat{}, errors.Join(storage.ErrScanningRowFailed, scanErr)
	}

	id, idErr := parseScannedID(rawID)
	if idErr != nil {
		return core.Seat{}, idErr
	}
	seat.ID = id

	return seat, nil
}

func scanUser(scan func(dest ...any) error) (core.User, error) {
	var (
		rawID     string
		rawRole   string
		updatedAt sql.NullTime
		user      core.User
	)

	scanErr := scan(
		&rawID, &user.Email, &user.PasswordHash, &user.PasswordSalt,
		&user.FirstName, &user.LastName, &user.PhoneNumber, &rawRole,
		&user.IsActive, &user.CreatedAt, &updatedAt, &user.Version,
	)
	if scanErr != nil {
		return core.User{}, errors.Join(storage.ErrScanningRowFailed, scanErr)
	}

	id, idErr := parseScannedID(rawID)
	if idErr != nil {
		return core.User{}, idErr
	}
	user.ID = id

	role, roleErr := core.ParseRole(rawRole)
	if roleErr != nil {
		return core.User{}, errors.Join(storage.ErrScanningRowFailed, roleErr)
	}
	user.Role = role

	if updatedAt.Valid {
		changedAt := updatedAt.Time
		user.UpdatedAt = &changedAt
	}

	return user, nil
}

func scanRental(scan func(dest ...any) error) (core.BookRental, error) {
	var (
		rawID      string
		rawUserID  string
		rawBookID  string
		rawStatus  string
		returnDate sql.NullTime
		rental     core.BookRental
	)

	scanErr := scan(
		&rawID, &rawUserID, &rawBookID, &rental.RentalDate, &rental.DueDate,
		&returnDate, &rawStatus, &rental.FineCents, &rental.Notes, &rental.Version,
	)
	if scanErr != nil {
		return core.BookRental{}, errors.Join(storage.ErrScanningRowFailed, scanErr)
	}

	id, idErr := parseScannedID(rawID)
	if idErr != nil {
		return core.BookRental{}, idErr
	}
	rental.ID = id

	userID, userIDErr := parseScannedID(rawUserID)
	if userIDErr != nil {
		return core.BookRental{}, userIDErr
	}
	rental.UserID = userID

	bookID, bookIDErr := parseScannedID(rawBookID)
	if bookIDErr != nil {
		return core.BookRental{}, bookIDErr
	}
	rental.BookID = bookID

	status, statusErr := core.ParseRentalStatus(rawStatus)
	if statusErr != nil {
		return core.BookRental{}, errors.Join(storage.ErrScanningRowFailed, statusErr)
	}
	rental.Status = status

	if returnDate.Valid {
		returnedAt := returnDate.Time
		rental.ReturnDate = &returnedAt
	}

	return rental, nil
}

func scanReservation(scan func(dest ...any) error) (core.SeatReservation, error) {
	var (
		rawID       string
		rawUserID   string
		rawSeatID   string
		rawStatus   string
		reservation core.SeatReservation
	)

	scanErr := scan(
		&rawID, &rawUserID, &rawSeatID, &reservation.ReservationDate,
		&reservation.StartTime, &reservation.EndTime, &rawStatus,
		&reservation.CreatedAt, &reservation.Version,
	)
	if scanErr != nil {
		return core.SeatReservation{}, errors.Join(storage.ErrScanningRowFailed, scanErr)
	}

	id, idErr := parseScannedID(rawID)
	if idErr != nil {
		return core.SeatReservation{}, idErr
	}
	reservation.ID = id

	userID, userIDErr := parseScannedID(rawUserID)
	if userIDErr != nil {
		return core.SeatReservation{}, userIDErr
	}
	reservation.UserID = userID

	seatID, seatIDErr := parseScannedID(rawSeatID)
	if seatIDErr != nil {
		return core.SeatReservation{}, seatIDErr
	}
	reservation.SeatID = seatID

	status, statusErr := core.ParseReservationStatus(rawStatus)
	if statusErr != nil {
		return core.SeatReservation{}, errors.Join(storage.ErrScanningRowFailed, statusErr)
	}
	reservation.Status = status

	return reservation, nil
}

// GetBookByID loads one book or returns storage.ErrNotFound.
func (s Store) GetBookByID(ctx context.Context, bookID uuid.UUID) (core.Book, error) {
	stmt := goqu.Dialect(dialectPostgres).
		From(tableBooks).
		Select(bookColumns()...).
		Where(goqu.Ex{colID: bookID.String()})

	return queryOne(ctx, s, opGetBook, stmt, scanBook)
}

// GetSeatByID loads one seat or returns storage.ErrNotFound.
func (s Store) GetSeatByID(ctx context.Context, seatID uuid.UUID) (core.Seat, error) {
	stmt := goqu.Dialect(dialectPostgres).
		From(tableSeats).
		Select(seatColumns()...).
		Where(goqu.Ex{colID: seatID.String()})

	return queryOne(ctx, s, opGetSeat, stmt, scanSeat)
}

// GetUserByID loads one user or returns storage.ErrNotFound.
func (s Store) GetUserByID(ctx context.Context, userID uuid.UUID) (core.User, error) {
	stmt := goqu.Dialect(dialectPostgres).
		From(tableUsers).
		Select(userColumns()...).
		Where(goqu.Ex{colID: userID.String()})

	return queryOne(ctx, s, opGetUser, stmt, scanUser)
}

// GetUserByEmail loads the user registered under the given email address or
// returns storage.ErrNotFound.
func (s Store) GetUserByEmail(ctx context.Context, email string) (core.User, error) {
	stmt := goqu.Dialect(dialectPostgres).
		From(tableUsers).
		Select(userColumns()...).
		Where(goqu.Ex{colEmail: email})

	return queryOne(ctx, s, opGetUser, stmt, scanUser)
}

// GetRentalByID loads one rental or returns storage.ErrNotFound.
func (s Store) GetRentalByID(ctx context.Context, rentalID uuid.UUID) (core.BookRental, error) {
	stmt := goqu.Dialect(dialectPostgres).
		From(tableRentals).
		Select(rentalColumns()...).
		Where(goqu.Ex{colID: rentalID.String()})

	return queryOne(ctx, s, opGetRental, stmt, scanRental)
}

// GetActiveRental loads the open rental binding the given user to the given
// book or returns storage.ErrNotFound.
func (s Store) GetActiveRental(ctx context.Context, userID uuid.UUID, bookID uuid.UUID) (core.BookRental, error) {
	stmt := goqu.Dialect(dialectPostgres).
		From(tableRentals).
		Select(rentalColumns()...).
		Where(goqu.Ex{
			colUserID: userID.String(),
			colBookID: bookID.String(),
			colStatus: core.RentalActive.String(),
		})

	return queryOne(ctx, s, opGetRental, stmt, scanRental)
}

// GetReservationByID loads one reservation or returns storage.ErrNotFound.
func (s Store) GetReservationByID(ctx context.Context, reservationID uuid.UUID) (core.SeatReservation, error) {
	stmt := goqu.Dialect(dialectPostgres).
		From(tableReservations).
		Select(reservationColumns()...).
		Where(goqu.Ex{colID: reservationID.String()})

	return queryOne(ctx, s, opGetReservation, stmt, scanReservation)
}

// GetActiveReservationByUser loads the single open reservation of the given
// user or returns storage.ErrNotFound.
func (s Store) GetActiveReservationByUser(ctx context.Context, userID uuid.UUID) (core.SeatReservation, error) {
	stmt := goqu.Dialect(dialectPostgres).
		From(tableReservations).
		Select(reservationColumns()...).
		Where(goqu.Ex{
			colUserID: userID.String(),
			colStatus: core.ReservationActive.String(),
		})

	return queryOne(ctx, s, opGetReservation, stmt, scanReservation)
}

// ListUsers returns all registered users ordered by creation time.
func (s Store) ListUsers(ctx context.Context) ([]core.User, error) {
	stmt := goqu.Dialect(dialectPostgres).
		From(tableUsers).
		Select(userColumns()...).
		Order(goqu.I(colCreatedAt).Asc())

	return queryMany(ctx, s, opListUsers, stmt, scanUser)
}

// ListBooks returns the catalog ordered by title. A non-empty search term
// filters on title, author, and ISBN, case-insensitively.
func (s Store) ListBooks(ctx context.Context, search string) ([]core.Book, error) {
	stmt := goqu.Dialect(dialectPostgres).
		From(tableBooks).
		Select(bookColumns()...).
		Order(goqu.I(colTitle).Asc())

	if search != "" {
		pattern := searchPatternWildcard + search + searchPatternWildcard
		stmt = stmt.Where(goqu.Or(
			goqu.I(colTitle).ILike(pattern),
			goqu.I(colAuthor).ILike(pattern),
			goqu.I(colISBN).ILike(pattern),
		))
	}

	return queryMany(ctx, s, opListBooks, stmt, scanBook)
}

// ListSeats returns all seats ordered by floor and seat number.
func (s Store) ListSeats(ctx context.Context) ([]core.Seat, error) {
	stmt := goqu.Dialect(dialectPostgres).
		From(tableSeats).
		Select(seatColumns()...).
		Order(goqu.I(colFloor).Asc(), goqu.I(colSeatNumber).Asc())

	return queryMany(ctx, s, opListSeats, stmt, scanSeat)
}

// ListRentalsByUser returns the rental history of one user, newest first.
func (s Store) ListRentalsByUser(ctx context.Context, userID uuid.UUID) ([]core.BookRental, error) {
	stmt := goqu.Dialect(dialectPostgres).
		From(tableRentals).
		Select(rentalColumns()...).
		Where(goqu.Ex{colUserID: userID.String()}).
		Order(goqu.I(colRentalDate).Desc())

	return queryMany(ctx, s, opListRentals, stmt, scanRental)
}

// ListReservationsByUser returns the reservation history of one user, newest first.
func (s Store) ListReservationsByUser(ctx context.Context, userID uuid.UUID) ([]core.SeatReservation, error) {
	stmt := goqu.Dialect(dialectPostgres).
		From(tableReservations).
		Select(reservationColumns()...).
		Where(goqu.Ex{colUserID: userID.String()}).
		Order(goqu.I(colReservationDate).Desc())

	return queryMany(ctx, s, opListReservations, stmt, scanReservation)
}

// ListActiveRentalsDueBefore returns open rentals whose due date has passed
// at the given time, most overdue first. This is the overdue report: statuses
// stay Active in storage and read as Overdue only in the result.
func (s Store) ListActiveRentalsDueBefore(ctx context.Context, asOf time.Time) ([]core.BookRental, error) {
	stmt := goqu.Dialect(dialectPostgres).
		From(tableRentals).
		Select(rentalColumns()...).
		Where(goqu.And(
			goqu.Ex{colStatus: core.RentalActive.String()},
			goqu.I(colDueDate).Lt(asOf),
		)).
		Order(goqu.I(colDueDate).Asc())

	return queryMany(ctx, s, opListOverdueRentals, stmt, scanRental)
}

// CountActiveRentalsByUser returns the number of open rentals of one user.
func (s Store) CountActiveRentalsByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	stmt := goqu.Dialect(dialectPostgres).
		From(tableRentals).
		Select(goqu.COUNT(goqu.Star())).
		Where(goqu.Ex{
			colUserID: userID.String(),
			colStatus: core.RentalActive.String(),
		})

	return s.countRows(ctx, stmt)
}

// HasActiveRental reports whether the user currently has the book checked out.
func (s Store) HasActiveRental(ctx context.Context, userID uuid.UUID, bookID uuid.UUID) (bool, error) {
	stmt := goqu.Dialect(dialectPostgres).
		From(tableRentals).
		Select(goqu.COUNT(goqu.Star())).
		Where(goqu.Ex{
			colUserID: userID.String(),
			colBookID: bookID.String(),
			colStatus: core.RentalActive.String(),
		})

	count, countErr := s.countRows(ctx, stmt)

	return count > 0, countErr
}

// HasActiveRentalForBook reports whether any copy of the book is checked out.
func (s Store) HasActiveRentalForBook(ctx context.Context, bookID uuid.UUID) (bool, error) {
	stmt := goqu.Dialect(dialectPostgres).
		From(tableRentals).
		Select(goqu.COUNT(goqu.Star())).
		Where(goqu.Ex{
			colBookID: bookID.String(),
			colStatus: core.RentalActive.String(),
		})

	count, countErr := s.countRows(ctx, stmt)

	return count > 0, countErr
}

// HasActiveReservation reports whether the user holds an open seat
// reservation anywhere in the building.
func (s Store) HasActiveReservation(ctx context.Context, userID uuid.UUID) (bool, error) {
	stmt := goqu.Dialect(dialectPostgres).
		From(tableReservations).
		Select(goqu.COUNT(goqu.Star())).
		Where(goqu.Ex{
			colUserID: userID.String(),
			colStatus: core.ReservationActive.String(),
		})

	count, countErr := s.countRows(ctx, stmt)

	return count > 0, countErr
}

// Stats returns the dashboard counters in one pass.
func (s Store) Stats(ctx context.Context) (storage.Counts, error) {
	builder := goqu.Dialect(dialectPostgres)

	countOf := func(table string, where ...goqu.Expression) *goqu.SelectDataset {
		stmt := builder.From(table).Select(goqu.COUNT(goqu.Star()))
		if len(where) > 0 {
			stmt = stmt.Where(where...)
		}

		return stmt
	}

	stmt := builder.Select(
		countOf(tableBooks),
		countOf(tableSeats),
		countOf(tableUsers),
		countOf(tableRentals, goqu.Ex{colStatus: core.RentalActive.String()}),
		countOf(tableReservations, goqu.Ex{colStatus: core.ReservationActive.String()}),
	)

	sqlQuery, buildErr := s.buildSQL(ctx, stmt)
	if buildErr != nil {
		return storage.Counts{}, buildErr
	}

	rows, queryErr := s.executeQuery(ctx, opStats, sqlQuery)
	if queryErr != nil {
		return storage.Counts{}, queryErr
	}
	defer s.closeRows(ctx, rows)

	var counts storage.Counts

	if !rows.Next() {
		return storage.Counts{}, storage.ErrQueryFailed
	}

	scanErr := rows.Scan(
		&counts.Books, &counts.Seats, &counts.Users,
		&counts.ActiveRentals, &counts.ActiveReservations,
	)
	if scanErr != nil {
		s.logError(ctx, logMsgScanRowFailed, logAttrError, scanErr.Error())
		return storage.Counts{}, errors.Join(storage.ErrScanningRowFailed, scanErr)
	}

	return counts, nil
}

func (s Store) countRows(ctx context.Context, stmt *goqu.SelectDataset) (int, error) {
	sqlQuery, buildErr := s.buildSQL(ctx, stmt)
	if buildErr != nil {
		return 0, buildErr
	}

	rows, queryErr := s.executeQuery(ctx, opCountRows, sqlQuery)
	if queryErr != nil {
		return 0, queryErr
	}
	defer s.closeRows(ctx, rows)

	if !rows.Next() {
		return 0, storage.ErrQueryFailed
	}

	var count int
	if scanErr := rows.Scan(&count); scanErr != nil {
		s.logError(ctx, logMsgScanRowFailed, logAttrError, scanErr.Error())
		return 0, errors.Join(storage.ErrScanningRowFailed, scanErr)
	}

	return count, nil
}

// queryOne runs a select expected to match at most one row.
func queryOne[T any](
	ctx context.Context,
	s Store,
	operation string,
	stmt *goqu.SelectDataset,
	scanFn func(scan func(dest ...any) error) (T, error),
) (T, error) {

	var empty T

	sqlQuery, buildErr := s.buildSQL(ctx, stmt)
	if buildErr != nil {
		return empty, buildErr
	}

	rows, queryErr := s.executeQuery(ctx, operation, sqlQuery)
	if queryErr != nil {
		return empty, queryErr
	}
	defer s.closeRows(ctx, rows)

	if !rows.Next() {
		return empty, storage.ErrNotFound
	}

	record, scanErr := scanFn(rows.Scan)
	if scanErr != nil {
		s.logError(ctx, logMsgScanRowFailed, logAttrError, scanErr.Error())
		return empty, scanErr
	}

	return record, nil
}

// queryMany runs a select and scans all matching rows.
func queryMany[T any](
	ctx context.Context,
	s Store,
	operation string,
	stmt *goqu.SelectDataset,
	scanFn func(scan func(dest ...any) error) (T, error),
) ([]T, error) {

	sqlQuery, buildErr := s.buildSQL(ctx, stmt)
	if buildErr != nil {
		return nil, buildErr
	}

	rows, queryErr := s.executeQuery(ctx, operation, sqlQuery)
	if queryErr != nil {
		return nil, queryErr
	}
	defer s.closeRows(ctx, rows)

	records := make([]T, 0)

	for rows.Next() {
		record, scanErr := scanFn(rows.Scan)
		if scanErr != nil {
			s.logError(ctx, logMsgScanRowFailed, logAttrError, scanErr.Error())
			return nil, scanErr
		}

		records = append(records, record)
	}

	return records, nil
}
