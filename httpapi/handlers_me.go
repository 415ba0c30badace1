package httpapi

import (
	"net/http"
	"time"

	"github.com/readhall/circulation-go/features/command/clearrentalhistory"
	"github.com/readhall/circulation-go/features/command/deleteoldreservations"
)

func (s *Server) handleMyRentals(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r.Context())

	rentals, err := s.store.ListRentalsByUser(r.Context(), principal.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	now := time.Now()

	result := make([]rentalResponse, 0, len(rentals))
	for _, rental := range rentals {
		result = append(result, toRentalResponse(rental, now))
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleMyReservations(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r.Context())

	reservations, err := s.store.ListReservationsByUser(r.Context(), principal.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	result := make([]reservationResponse, 0, len(reservations))
	for _, reservation := range reservations {
		result = append(result, toReservationResponse(reservation))
	}

	writeJSON(w, http.StatusOK, result)
}

type deletedCountResponse struct {
	Deleted int64 `json:"deleted"`
}

func (s *Server) handleClearRentalHistory(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r.Context())
	command := clearrentalhistory.BuildCommand(principal.UserID)

	deleted, err := s.clearRentalHistory.Handle(r.Context(), command)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, deletedCountResponse{Deleted: deleted})
}

func (s *Server) handleDeleteOldReservations(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r.Context())
	command := deleteoldreservations.BuildCommand(principal.UserID)

	deleted, err := s.deleteOldReservations.Handle(r.Context(), command)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, deletedCountResponse{Deleted: deleted})
}
