package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/readhall/circulation-go/features/command/addbook"
	"github.com/readhall/circulation-go/features/command/addseat"
	"github.com/readhall/circulation-go/features/command/removebook"
	"github.com/readhall/circulation-go/features/command/removeuser"
	"github.com/readhall/circulation-go/features/command/toggleuserstatus"
	"github.com/readhall/circulation-go/features/command/updatebook"
)

type bookPayload struct {
	Title       string     `json:"title"`
	Author      string     `json:"author"`
	ISBN        string     `json:"isbn"`
	Category    string     `json:"category"`
	Publisher   string     `json:"publisher"`
	PublishDate *time.Time `json:"publishDate"`
	PageCount   int        `json:"pageCount"`
	Description string     `json:"description"`
	TotalCopies int        `json:"totalCopies"`
}

type addBookResponse struct {
	BookID uuid.UUID `json:"bookId"`
}

func (s *Server) handleAddBook(w http.ResponseWriter, r *http.Request) {
	var request bookPayload
	if err := decodeJSON(r, &request); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	bookID := uuid.New()
	command := addbook.BuildCommand(
		bookID,
		request.Title,
		request.Author,
		request.ISBN,
		request.Category,
		request.Publisher,
		request.PublishDate,
		request.PageCount,
		request.Description,
		request.TotalCopies,
		time.Now(),
	)

	if _, err := s.addBook.Handle(r.Context(), principalFrom(r.Context()), command); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, addBookResponse{BookID: bookID})
}

func (s *Server) handleUpdateBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := uuid.Parse(chi.URLParam(r, "bookID"))
	if err != nil {
		writeBadRequest(w, "invalid book id")
		return
	}

	var request bookPayload
	if err := decodeJSON(r, &request); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	command := updatebook.BuildCommand(
		bookID,
		request.Title,
		request.Author,
		request.ISBN,
		request.Category,
		request.Publisher,
		request.PublishDate,
		request.PageCount,
		request.Description,
		request.TotalCopies,
	)

	if _, err := s.updateBook.Handle(r.Context(), principalFrom(r.Context()), command); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleRemoveBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := uuid.Parse(chi.URLParam(r, "bookID"))
	if err != nil {
		writeBadRequest(w, "invalid book id")
		return
	}

	command := removebook.BuildCommand(bookID)

	if _, err := s.removeBook.Handle(r.Context(), principalFrom(r.Context()), command); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

type addSeatRequest struct {
	SeatNumber string `json:"seatNumber"`
	Floor      int    `json:"floor"`
	Section    string `json:"section"`
	Type       string `json:"type"`
}

type addSeatResponse struct {
	SeatID uuid.UUID `json:"seatId"`
}

func (s *Server) handleAddSeat(w http.ResponseWriter, r *http.Request) {
	var request addSeatRequest
	if err := decodeJSON(r, &request); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	seatID := uuid.New()
	command := addseat.BuildCommand(seatID, request.SeatNumber, request.Floor, request.Section, request.Type)

	if _, err := s.addSeat.Handle(r.Context(), principalFrom(r.Context()), command); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, addSeatResponse{SeatID: seatID})
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.ListUsers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	result := make([]userResponse, 0, len(users))
	for _, user := range users {
		result = append(result, toUserResponse(user))
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleToggleUserStatus(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		writeBadRequest(w, "invalid user id")
		return
	}

	command := toggleuserstatus.BuildCommand(userID, time.Now())

	if _, err := s.toggleUserStatus.Handle(r.Context(), principalFrom(r.Context()), command); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleRemoveUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		writeBadRequest(w, "invalid user id")
		return
	}

	command := removeuser.BuildCommand(userID)

	if _, err := s.removeUser.Handle(r.Context(), principalFrom(r.Context()), command); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}
