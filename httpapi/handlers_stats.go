package httpapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/readhall/circulation-go/features/query/librarystats"
	"github.com/readhall/circulation-go/features/query/overduerentals"
)

type libraryStatsResponse struct {
	TotalBooks         int `json:"totalBooks"`
	TotalSeats         int `json:"totalSeats"`
	TotalUsers         int `json:"totalUsers"`
	ActiveRentals      int `json:"activeRentals"`
	ActiveReservations int `json:"activeReservations"`
}

func toLibraryStatsResponse(stats librarystats.LibraryStats) libraryStatsResponse {
	return libraryStatsResponse{
		TotalBooks:         stats.TotalBooks,
		TotalSeats:         stats.TotalSeats,
		TotalUsers:         stats.TotalUsers,
		ActiveRentals:      stats.ActiveRentals,
		ActiveReservations: stats.ActiveReservations,
	}
}

func (s *Server) handleLibraryStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.libraryStats.Handle(r.Context(), principalFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toLibraryStatsResponse(stats))
}

type overdueRentalResponse struct {
	RentalID   uuid.UUID `json:"rentalId"`
	UserID     uuid.UUID `json:"userId"`
	BookID     uuid.UUID `json:"bookId"`
	RentalDate time.Time `json:"rentalDate"`
	DueDate    time.Time `json:"dueDate"`
	DaysLate   int64     `json:"daysLate"`
	FineCents  int64     `json:"fineCents"`
	Status     string    `json:"status"`
}

type overdueReportResponse struct {
	Rentals []overdueRentalResponse `json:"rentals"`
	Count   int                     `json:"count"`
	AsOf    time.Time               `json:"asOf"`
}

func toOverdueReportResponse(report overduerentals.OverdueRentals) overdueReportResponse {
	rentals := make([]overdueRentalResponse, 0, len(report.Rentals))
	for _, rental := range report.Rentals {
		rentals = append(rentals, overdueRentalResponse{
			RentalID:   rental.RentalID,
			UserID:     rental.UserID,
			BookID:     rental.BookID,
			RentalDate: rental.RentalDate,
			DueDate:    rental.DueDate,
			DaysLate:   rental.DaysLate,
			FineCents:  rental.FineCents,
			Status:     rental.Status.String(),
		})
	}

	return overdueReportResponse{
		Rentals: rentals,
		Count:   report.Count,
		AsOf:    report.AsOf,
	}
}

func (s *Server) handleOverdueRentals(w http.ResponseWriter, r *http.Request) {
	query := overduerentals.BuildQuery(time.Now())

	report, err := s.overdueRentals.Handle(r.Context(), principalFrom(r.Context()), query)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toOverdueReportResponse(report))
}
