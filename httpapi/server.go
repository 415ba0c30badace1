package httpapi

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/readhall/circulation-go/core"
	"github.com/readhall/circulation-go/features/command/addbook"
	"github.com/readhall/circulation-go/features/command/addseat"
	"github.com/readhall/circulation-go/features/command/cancelreservation"
	"github.com/readhall/circulation-go/features/command/clearrentalhistory"
	"github.com/readhall/circulation-go/features/command/deleteoldreservations"
	"github.com/readhall/circulation-go/features/command/registeruser"
	"github.com/readhall/circulation-go/features/command/removebook"
	"github.com/readhall/circulation-go/features/command/removeuser"
	"github.com/readhall/circulation-go/features/command/rentbook"
	"github.com/readhall/circulation-go/features/command/reserveseat"
	"github.com/readhall/circulation-go/features/command/returnbook"
	"github.com/readhall/circulation-go/features/command/toggleuserstatus"
	"github.com/readhall/circulation-go/features/command/updatebook"
	"github.com/readhall/circulation-go/features/query/authenticateuser"
	"github.com/readhall/circulation-go/features/query/librarystats"
	"github.com/readhall/circulation-go/features/query/overduerentals"
	"github.com/readhall/circulation-go/shell"
)

// Store is the full persistence surface the API needs. It is the union of
// the per-feature Store interfaces plus the plain list reads that have no
// decision logic behind them.
type Store interface {
	rentbook.Store
	returnbook.Store
	reserveseat.Store
	cancelreservation.Store
	clearrentalhistory.Store
	deleteoldreservations.Store
	addbook.Store
	updatebook.Store
	removebook.Store
	addseat.Store
	registeruser.Store
	removeuser.Store
	toggleuserstatus.Store
	authenticateuser.Store
	librarystats.Store
	overduerentals.Store

	GetRentalByID(ctx context.Context, rentalID uuid.UUID) (core.BookRental, error)
	ListBooks(ctx context.Context, search string) ([]core.Book, error)
	ListSeats(ctx context.Context) ([]core.Seat, error)
	ListUsers(ctx context.Context) ([]core.User, error)
	ListRentalsByUser(ctx context.Context, userID uuid.UUID) ([]core.BookRental, error)
	ListReservationsByUser(ctx context.Context, userID uuid.UUID) ([]core.SeatReservation, error)
}

// Server holds the wired feature handlers and the session machinery.
type Server struct {
	store    Store
	sessions *Sessions
	logger   shell.Logger

	// Failed and successful logins alike drain the limiter, slowing down
	// credential guessing across the whole instance.
	loginLimiter *rate.Limiter

	registerUser          registeruser.CommandHandler
	authenticateUser      authenticateuser.QueryHandler
	rentBook              rentbook.CommandHandler
	returnBook            returnbook.CommandHandler
	reserveSeat           reserveseat.CommandHandler
	cancelReservation     cancelreservation.CommandHandler
	clearRentalHistory    clearrentalhistory.CommandHandler
	deleteOldReservations deleteoldreservations.CommandHandler
	addBook               addbook.CommandHandler
	updateBook            updatebook.CommandHandler
	removeBook            removebook.CommandHandler
	addSeat               addseat.CommandHandler
	removeUser            removeuser.CommandHandler
	toggleUserStatus      toggleuserstatus.CommandHandler
	libraryStats          librarystats.QueryHandler
	overdueRentals        overduerentals.QueryHandler
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithServerLogging sets the logger used for request-level logging.
func WithServerLogging(logger shell.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithLoginLimiter replaces the default login rate limiter.
func WithLoginLimiter(limiter *rate.Limiter) ServerOption {
	return func(s *Server) {
		s.loginLimiter = limiter
	}
}

// NewServer wires every feature handler against the given store.
func NewServer(store Store, sessions *Sessions, opts ...ServerOption) *Server {
	server := &Server{
		store:        store,
		sessions:     sessions,
		loginLimiter: rate.NewLimiter(rate.Every(defaultLoginInterval), defaultLoginBurst),
	}

	for _, opt := range opts {
		opt(server)
	}

	server.registerUser = registeruser.NewCommandHandler(store, loggingOption(server.logger, registeruser.WithLogging)...)
	server.authenticateUser = authenticateuser.NewQueryHandler(store, loggingOption(server.logger, authenticateuser.WithLogging)...)
	server.rentBook = rentbook.NewCommandHandler(store, loggingOption(server.logger, rentbook.WithLogging)...)
	server.returnBook = returnbook.NewCommandHandler(store, loggingOption(server.logger, returnbook.WithLogging)...)
	server.reserveSeat = reserveseat.NewCommandHandler(store, loggingOption(server.logger, reserveseat.WithLogging)...)
	server.cancelReservation = cancelreservation.NewCommandHandler(store, loggingOption(server.logger, cancelreservation.WithLogging)...)
	server.clearRentalHistory = clearrentalhistory.NewCommandHandler(store, loggingOption(server.logger, clearrentalhistory.WithLogging)...)
	server.deleteOldReservations = deleteoldreservations.NewCommandHandler(store, loggingOption(server.logger, deleteoldreservations.WithLogging)...)
	server.addBook = addbook.NewCommandHandler(store, loggingOption(server.logger, addbook.WithLogging)...)
	server.updateBook = updatebook.NewCommandHandler(store, loggingOption(server.logger, updatebook.WithLogging)...)
	server.removeBook = removebook.NewCommandHandler(store, loggingOption(server.logger, removebook.WithLogging)...)
	server.addSeat = addseat.NewCommandHandler(store, loggingOption(server.logger, addseat.WithLogging)...)
	server.removeUser = removeuser.NewCommandHandler(store, loggingOption(server.logger, removeuser.WithLogging)...)
	server.toggleUserStatus = toggleuserstatus.NewCommandHandler(store, loggingOption(server.logger, toggleuserstatus.WithLogging)...)
	server.libraryStats = librarystats.NewQueryHandler(store, loggingOption(server.logger, librarystats.WithLogging)...)
	server.overdueRentals = overduerentals.NewQueryHandler(store, loggingOption(server.logger, overduerentals.WithLogging)...)

	return server
}

// loggingOption builds the option slice for one handler: empty when no
// logger is configured, so handlers keep their no-op observability default.
func loggingOption[O any](logger shell.Logger, withLogging func(shell.Logger) O) []O {
	if logger == nil {
		return nil
	}

	return []O{withLogging(logger)}
}

const (
	defaultLoginInterval = 1 * time.Second
	defaultLoginBurst    = 10
)

// Router assembles the route tree: public, session-guarded, and admin rings.
func (s *Server) Router() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	router.Post("/api/auth/register", s.handleRegister)
	router.Post("/api/auth/login", s.handleLogin)

	router.Get("/api/books", s.handleListBooks)
	router.Get("/api/books/{bookID}", s.handleGetBook)
	router.Get("/api/seats", s.handleListSeats)

	router.Group(func(r chi.Router) {
		r.Use(s.sessions.RequireSession)

		r.Post("/api/rentals", s.handleRentBook)
		r.Post("/api/rentals/return", s.handleReturnBook)
		r.Post("/api/reservations", s.handleReserveSeat)
		r.Post("/api/reservations/{reservationID}/cancel", s.handleCancelReservation)

		r.Get("/api/me/rentals", s.handleMyRentals)
		r.Get("/api/me/reservations", s.handleMyReservations)
		r.Delete("/api/me/rentals/history", s.handleClearRentalHistory)
		r.Delete("/api/me/reservations/finished", s.handleDeleteOldReservations)

		r.Group(func(r chi.Router) {
			r.Use(RequireAdmin)

			r.Post("/api/admin/books", s.handleAddBook)
			r.Put("/api/admin/books/{bookID}", s.handleUpdateBook)
			r.Delete("/api/admin/books/{bookID}", s.handleRemoveBook)
			r.Post("/api/admin/seats", s.handleAddSeat)
			r.Get("/api/admin/users", s.handleListUsers)
			r.Post("/api/admin/users/{userID}/toggle", s.handleToggleUserStatus)
			r.Delete("/api/admin/users/{userID}", s.handleRemoveUser)
			r.Get("/api/admin/stats", s.handleLibraryStats)
			r.Get("/api/admin/rentals/overdue", s.handleOverdueRentals)
		})
	})

	return router
}
