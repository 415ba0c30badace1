package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/readhall/circulation-go/core"
	"github.com/readhall/circulation-go/httpapi"
	"github.com/readhall/circulation-go/testutil/storefake"
)

func newTestServer(opts ...httpapi.ServerOption) (*storefake.Store, *httpapi.Sessions, http.Handler) {
	store := storefake.New()
	sessions := httpapi.NewSessions([]byte("test-secret"), time.Hour)
	server := httpapi.NewServer(store, sessions, opts...)

	return store, sessions, server.Router()
}

func seedMember(store *storefake.Store, email string) core.User {
	user := core.User{
		ID:       uuid.New(),
		Email:    email,
		Role:     core.RoleUser,
		IsActive: true,
		Version:  1,
	}
	store.SeedUser(user)

	return user
}

func seedAdmin(store *storefake.Store) core.User {
	user := core.User{
		ID:       uuid.New(),
		Email:    "admin@example.com",
		Role:     core.RoleAdmin,
		IsActive: true,
		Version:  1,
	}
	store.SeedUser(user)

	return user
}

func bearerToken(t *testing.T, sessions *httpapi.Sessions, user core.User) string {
	t.Helper()

	token, err := sessions.IssueToken(user, time.Now())
	require.NoError(t, err)

	return token
}

func doJSON(router http.Handler, method, target, token, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	request.Header.Set("Content-Type", "application/json")

	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	return recorder
}

func Test_RegisterAndLogin_RoundTrip(t *testing.T) {
	// arrange
	_, _, router := newTestServer()

	// act
	registered := doJSON(router, http.MethodPost, "/api/auth/register", "",
		`{"email":"ada@example.com","password":"s3cret-passphrase","firstName":"Ada","lastName":"Lovelace"}`)

	// assert
	require.Equal(t, http.StatusCreated, registered.Code, registered.Body.String())

	loggedIn := doJSON(router, http.MethodPost, "/api/auth/login", "",
		`{"email":"ada@example.com","password":"s3cret-passphrase"}`)
	require.Equal(t, http.StatusOK, loggedIn.Code, loggedIn.Body.String())

	var response struct {
		Token string `json:"token"`
		User  struct {
			Email    string `json:"email"`
			FullName string `json:"fullName"`
			Role     string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(loggedIn.Body.Bytes(), &response))
	assert.NotEmpty(t, response.Token)
	assert.Equal(t, "ada@example.com", response.User.Email)
	assert.Equal(t, "Ada Lovelace", response.User.FullName)
	assert.Equal(t, "User", response.User.Role)
}

func Test_Login_WrongPassword_Unauthorized(t *testing.T) {
	// arrange
	_, _, router := newTestServer()

	registered := doJSON(router, http.MethodPost, "/api/auth/register", "",
		`{"email":"ada@example.com","password":"s3cret-passphrase"}`)
	require.Equal(t, http.StatusCreated, registered.Code)

	// act
	loggedIn := doJSON(router, http.MethodPost, "/api/auth/login", "",
		`{"email":"ada@example.com","password":"wrong"}`)

	// assert
	assert.Equal(t, http.StatusUnauthorized, loggedIn.Code)
}

func Test_Login_RateLimited(t *testing.T) {
	// arrange
	_, _, router := newTestServer(
		httpapi.WithLoginLimiter(rate.NewLimiter(rate.Every(time.Hour), 1)))

	first := doJSON(router, http.MethodPost, "/api/auth/login", "",
		`{"email":"nobody@example.com","password":"x"}`)
	require.Equal(t, http.StatusUnauthorized, first.Code)

	// act
	second := doJSON(router, http.MethodPost, "/api/auth/login", "",
		`{"email":"nobody@example.com","password":"x"}`)

	// assert
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func Test_SessionRoutes_RejectMissingAndInvalidTokens(t *testing.T) {
	// arrange
	_, _, router := newTestServer()

	// act + assert
	missing := doJSON(router, http.MethodGet, "/api/me/rentals", "", "")
	assert.Equal(t, http.StatusUnauthorized, missing.Code)

	garbage := doJSON(router, http.MethodGet, "/api/me/rentals", "not-a-token", "")
	assert.Equal(t, http.StatusUnauthorized, garbage.Code)
}

func Test_SessionRoutes_RejectExpiredToken(t *testing.T) {
	// arrange
	store := storefake.New()
	sessions := httpapi.NewSessions([]byte("test-secret"), time.Minute)
	router := httpapi.NewServer(store, sessions).Router()

	user := seedMember(store, "ada@example.com")

	token, err := sessions.IssueToken(user, time.Now().Add(-time.Hour))
	require.NoError(t, err)

	// act
	response := doJSON(router, http.MethodGet, "/api/me/rentals", token, "")

	// assert
	assert.Equal(t, http.StatusUnauthorized, response.Code)
}

func Test_RentAndReturn_OverHTTP(t *testing.T) {
	// arrange
	store, sessions, router := newTestServer()

	user := seedMember(store, "ada@example.com")
	token := bearerToken(t, sessions, user)

	bookID := uuid.New()
	store.SeedBook(core.Book{
		ID: bookID, Title: "The Go Programming Language", Author: "Donovan",
		TotalCopies: 2, AvailableCopies: 2, Version: 1,
	})

	// act
	rented := doJSON(router, http.MethodPost, "/api/rentals", token,
		`{"bookId":"`+bookID.String()+`"}`)

	// assert
	require.Equal(t, http.StatusCreated, rented.Code, rented.Body.String())

	var rentResponse struct {
		RentalID uuid.UUID `json:"rentalId"`
		DueDate  time.Time `json:"dueDate"`
	}
	require.NoError(t, json.Unmarshal(rented.Body.Bytes(), &rentResponse))
	assert.NotEqual(t, uuid.Nil, rentResponse.RentalID)
	assert.WithinDuration(t, time.Now().Add(core.LoanPeriod), rentResponse.DueDate, time.Minute)

	myRentals := doJSON(router, http.MethodGet, "/api/me/rentals", token, "")
	require.Equal(t, http.StatusOK, myRentals.Code)

	var rentals []struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(myRentals.Body.Bytes(), &rentals))
	require.Len(t, rentals, 1)
	assert.Equal(t, "Active", rentals[0].Status)

	returned := doJSON(router, http.MethodPost, "/api/rentals/return", token,
		`{"bookId":"`+bookID.String()+`"}`)
	require.Equal(t, http.StatusNoContent, returned.Code)

	book, err := store.GetBookByID(context.Background(), bookID)
	require.NoError(t, err)
	assert.Equal(t, 2, book.AvailableCopies)
}

func Test_RentBook_UnknownBook_NotFound(t *testing.T) {
	// arrange
	store, sessions, router := newTestServer()
	token := bearerToken(t, sessions, seedMember(store, "ada@example.com"))

	// act
	response := doJSON(router, http.MethodPost, "/api/rentals", token,
		`{"bookId":"`+uuid.NewString()+`"}`)

	// assert
	assert.Equal(t, http.StatusNotFound, response.Code)
}

func Test_ReserveAndCancel_OverHTTP(t *testing.T) {
	// arrange
	store, sessions, router := newTestServer()
	token := bearerToken(t, sessions, seedMember(store, "ada@example.com"))

	seatID := uuid.New()
	store.SeedSeat(core.Seat{ID: seatID, SeatNumber: "A-01", Floor: 1, IsAvailable: true, Version: 1})

	start := time.Now().Add(time.Hour).UTC().Format(time.RFC3339)
	end := time.Now().Add(3 * time.Hour).UTC().Format(time.RFC3339)

	// act
	reserved := doJSON(router, http.MethodPost, "/api/reservations", token,
		`{"seatId":"`+seatID.String()+`","startTime":"`+start+`","endTime":"`+end+`"}`)

	// assert
	require.Equal(t, http.StatusCreated, reserved.Code, reserved.Body.String())

	var reserveResponse struct {
		ReservationID uuid.UUID `json:"reservationId"`
	}
	require.NoError(t, json.Unmarshal(reserved.Body.Bytes(), &reserveResponse))

	seat, err := store.GetSeatByID(context.Background(), seatID)
	require.NoError(t, err)
	assert.False(t, seat.IsAvailable)

	cancelled := doJSON(router, http.MethodPost,
		"/api/reservations/"+reserveResponse.ReservationID.String()+"/cancel", token, "")
	require.Equal(t, http.StatusNoContent, cancelled.Code)

	seat, err = store.GetSeatByID(context.Background(), seatID)
	require.NoError(t, err)
	assert.True(t, seat.IsAvailable)
}

func Test_AdminRoutes_RejectRegularMembers(t *testing.T) {
	// arrange
	store, sessions, router := newTestServer()
	token := bearerToken(t, sessions, seedMember(store, "ada@example.com"))

	// act
	response := doJSON(router, http.MethodPost, "/api/admin/books", token,
		`{"title":"X","author":"Y","totalCopies":1}`)

	// assert
	assert.Equal(t, http.StatusUnauthorized, response.Code)
}

func Test_AdminBookLifecycle_OverHTTP(t *testing.T) {
	// arrange
	store, sessions, router := newTestServer()
	adminToken := bearerToken(t, sessions, seedAdmin(store))

	// act
	added := doJSON(router, http.MethodPost, "/api/admin/books", adminToken,
		`{"title":"Clean Architecture","author":"Martin","totalCopies":3}`)

	// assert
	require.Equal(t, http.StatusCreated, added.Code, added.Body.String())

	var addResponse struct {
		BookID uuid.UUID `json:"bookId"`
	}
	require.NoError(t, json.Unmarshal(added.Body.Bytes(), &addResponse))

	updated := doJSON(router, http.MethodPut, "/api/admin/books/"+addResponse.BookID.String(), adminToken,
		`{"title":"Clean Architecture","author":"Robert C. Martin","totalCopies":5}`)
	require.Equal(t, http.StatusNoContent, updated.Code, updated.Body.String())

	book, err := store.GetBookByID(context.Background(), addResponse.BookID)
	require.NoError(t, err)
	assert.Equal(t, "Robert C. Martin", book.Author)
	assert.Equal(t, 5, book.TotalCopies)
	assert.Equal(t, 5, book.AvailableCopies)

	removed := doJSON(router, http.MethodDelete, "/api/admin/books/"+addResponse.BookID.String(), adminToken, "")
	require.Equal(t, http.StatusNoContent, removed.Code)

	_, err = store.GetBookByID(context.Background(), addResponse.BookID)
	assert.Error(t, err)
}

func Test_AdminStats_OverHTTP(t *testing.T) {
	// arrange
	store, sessions, router := newTestServer()
	adminToken := bearerToken(t, sessions, seedAdmin(store))

	store.SeedBook(core.Book{ID: uuid.New(), Title: "A", Author: "B", TotalCopies: 1, AvailableCopies: 1, Version: 1})
	store.SeedSeat(core.Seat{ID: uuid.New(), SeatNumber: "A-01", IsAvailable: true, Version: 1})

	// act
	response := doJSON(router, http.MethodGet, "/api/admin/stats", adminToken, "")

	// assert
	require.Equal(t, http.StatusOK, response.Code)

	var stats struct {
		TotalBooks int `json:"totalBooks"`
		TotalSeats int `json:"totalSeats"`
		TotalUsers int `json:"totalUsers"`
	}
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.TotalBooks)
	assert.Equal(t, 1, stats.TotalSeats)
	assert.Equal(t, 1, stats.TotalUsers)
}

func Test_OverdueReport_OverHTTP(t *testing.T) {
	// arrange
	store, sessions, router := newTestServer()
	adminToken := bearerToken(t, sessions, seedAdmin(store))

	rentalDate := time.Now().Add(-20 * 24 * time.Hour)
	store.SeedRental(core.BookRental{
		ID: uuid.New(), UserID: uuid.New(), BookID: uuid.New(),
		RentalDate: core.ToTimestamp(rentalDate),
		DueDate:    core.ToTimestamp(rentalDate.Add(core.LoanPeriod)),
		Status:     core.RentalActive, Version: 1,
	})

	// act
	response := doJSON(router, http.MethodGet, "/api/admin/rentals/overdue", adminToken, "")

	// assert
	require.Equal(t, http.StatusOK, response.Code)

	var report struct {
		Count   int `json:"count"`
		Rentals []struct {
			DaysLate  int64  `json:"daysLate"`
			FineCents int64  `json:"fineCents"`
			Status    string `json:"status"`
		} `json:"rentals"`
	}
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &report))
	require.Equal(t, 1, report.Count)
	assert.Equal(t, int64(6), report.Rentals[0].DaysLate)
	assert.Equal(t, int64(6*core.OverdueFineCentsPerDay), report.Rentals[0].FineCents)
	assert.Equal(t, "Overdue", report.Rentals[0].Status)
}

func Test_Catalog_PublicListingAndSearch(t *testing.T) {
	// arrange
	store, _, router := newTestServer()

	store.SeedBook(core.Book{ID: uuid.New(), Title: "Dune", Author: "Herbert", TotalCopies: 1, AvailableCopies: 1, Version: 1})
	store.SeedBook(core.Book{ID: uuid.New(), Title: "Go in Action", Author: "Kennedy", TotalCopies: 1, AvailableCopies: 1, Version: 1})

	// act
	response := doJSON(router, http.MethodGet, "/api/books?search=dune", "", "")

	// assert
	require.Equal(t, http.StatusOK, response.Code)

	var books []struct {
		Title string `json:"title"`
	}
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &books))
	require.Len(t, books, 1)
	assert.Equal(t, "Dune", books[0].Title)
}
