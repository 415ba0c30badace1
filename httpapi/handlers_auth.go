package httpapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/readhall/circulation-go/features/command/registeruser"
	"github.com/readhall/circulation-go/features/query/authenticateuser"
)

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
}

type registerResponse struct {
	UserID uuid.UUID `json:"userId"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var request registerRequest
	if err := decodeJSON(r, &request); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	userID := uuid.New()
	command := registeruser.BuildCommand(
		userID,
		request.Email,
		request.Password,
		request.FirstName,
		request.LastName,
		request.PhoneNumber,
		time.Now(),
	)

	if _, err := s.registerUser.Handle(r.Context(), command); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{UserID: userID})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !s.loginLimiter.Allow() {
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "too many login attempts"})
		return
	}

	var request loginRequest
	if err := decodeJSON(r, &request); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	query := authenticateuser.BuildQuery(request.Email, request.Password)

	user, err := s.authenticateUser.Handle(r.Context(), query)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := s.sessions.IssueToken(user, time.Now())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: toUserResponse(user)})
}
