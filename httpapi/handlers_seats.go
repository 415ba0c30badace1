package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/readhall/circulation-go/features/command/cancelreservation"
	"github.com/readhall/circulation-go/features/command/reserveseat"
)

func (s *Server) handleListSeats(w http.ResponseWriter, r *http.Request) {
	seats, err := s.store.ListSeats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	result := make([]seatResponse, 0, len(seats))
	for _, seat := range seats {
		result = append(result, toSeatResponse(seat))
	}

	writeJSON(w, http.StatusOK, result)
}

type reserveSeatRequest struct {
	SeatID    uuid.UUID `json:"seatId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

type reserveSeatResponse struct {
	ReservationID uuid.UUID `json:"reservationId"`
}

func (s *Server) handleReserveSeat(w http.ResponseWriter, r *http.Request) {
	var request reserveSeatRequest
	if err := decodeJSON(r, &request); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	principal := principalFrom(r.Context())
	reservationID := uuid.New()

	command := reserveseat.BuildCommand(
		reservationID,
		principal.UserID,
		request.SeatID,
		request.StartTime,
		request.EndTime,
		time.Now(),
	)

	if _, err := s.reserveSeat.Handle(r.Context(), command); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, reserveSeatResponse{ReservationID: reservationID})
}

func (s *Server) handleCancelReservation(w http.ResponseWriter, r *http.Request) {
	reservationID, err := uuid.Parse(chi.URLParam(r, "reservationID"))
	if err != nil {
		writeBadRequest(w, "invalid reservation id")
		return
	}

	principal := principalFrom(r.Context())
	command := cancelreservation.BuildCommand(principal.UserID, reservationID, time.Now())

	if _, err := s.cancelReservation.Handle(r.Context(), command); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}
