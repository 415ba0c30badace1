package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/readhall/circulation-go/features/command/rentbook"
	"github.com/readhall/circulation-go/features/command/returnbook"
)

func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := s.store.ListBooks(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeError(w, err)
		return
	}

	result := make([]bookResponse, 0, len(books))
	for _, book := range books {
		result = append(result, toBookResponse(book))
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := uuid.Parse(chi.URLParam(r, "bookID"))
	if err != nil {
		writeBadRequest(w, "invalid book id")
		return
	}

	book, err := s.store.GetBookByID(r.Context(), bookID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toBookResponse(book))
}

type rentBookRequest struct {
	BookID uuid.UUID `json:"bookId"`
}

type rentBookResponse struct {
	RentalID uuid.UUID `json:"rentalId"`
	DueDate  time.Time `json:"dueDate"`
}

func (s *Server) handleRentBook(w http.ResponseWriter, r *http.Request) {
	var request rentBookRequest
	if err := decodeJSON(r, &request); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	principal := principalFrom(r.Context())
	rentalID := uuid.New()
	now := time.Now()

	command := rentbook.BuildCommand(rentalID, principal.UserID, request.BookID, now)

	if _, err := s.rentBook.Handle(r.Context(), command); err != nil {
		writeError(w, err)
		return
	}

	rental, err := s.store.GetRentalByID(r.Context(), rentalID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, rentBookResponse{
		RentalID: rentalID,
		DueDate:  rental.DueDate,
	})
}

type returnBookRequest struct {
	BookID uuid.UUID `json:"bookId"`
}

func (s *Server) handleReturnBook(w http.ResponseWriter, r *http.Request) {
	var request returnBookRequest
	if err := decodeJSON(r, &request); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	principal := principalFrom(r.Context())
	command := returnbook.BuildCommand(principal.UserID, request.BookID, time.Now())

	if _, err := s.returnBook.Handle(r.Context(), command); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}
