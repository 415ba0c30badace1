package httpapi

import (
	"time"

	"github.com/google/uuid"

	"github.com/readhall/circulation-go/core"
)

type bookResponse struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Author          string     `json:"author"`
	ISBN            string     `json:"isbn,omitempty"`
	Category        string     `json:"category,omitempty"`
	Publisher       string     `json:"publisher,omitempty"`
	PublishDate     *time.Time `json:"publishDate,omitempty"`
	PageCount       int        `json:"pageCount,omitempty"`
	Description     string     `json:"description,omitempty"`
	TotalCopies     int        `json:"totalCopies"`
	AvailableCopies int        `json:"availableCopies"`
}

func toBookResponse(book core.Book) bookResponse {
	return bookResponse{
		ID:              book.ID,
		Title:           book.Title,
		Author:          book.Author,
		ISBN:            book.ISBN,
		Category:        book.Category,
		Publisher:       book.Publisher,
		PublishDate:     book.PublishDate,
		PageCount:       book.PageCount,
		Description:     book.Description,
		TotalCopies:     book.TotalCopies,
		AvailableCopies: book.AvailableCopies,
	}
}

type seatResponse struct {
	ID          uuid.UUID `json:"id"`
	SeatNumber  string    `json:"seatNumber"`
	Floor       int       `json:"floor"`
	Section     string    `json:"section,omitempty"`
	Type        string    `json:"type,omitempty"`
	IsAvailable bool      `json:"isAvailable"`
}

func toSeatResponse(seat core.Seat) seatResponse {
	return seatResponse{
		ID:          seat.ID,
		SeatNumber:  seat.SeatNumber,
		Floor:       seat.Floor,
		Section:     seat.Section,
		Type:        seat.Type,
		IsAvailable: seat.IsAvailable,
	}
}

type userResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"fullName"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	Role        string    `json:"role"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toUserResponse(user core.User) userResponse {
	return userResponse{
		ID:          user.ID,
		Email:       user.Email,
		FullName:    user.FullName(),
		PhoneNumber: user.PhoneNumber,
		Role:        user.Role.String(),
		IsActive:    user.IsActive,
		CreatedAt:   user.CreatedAt,
	}
}

// rentalResponse carries the reported status, so an open rental past its due
// date reads as Overdue even though storage still says Active.
type rentalResponse struct {
	ID         uuid.UUID  `json:"id"`
	BookID     uuid.UUID  `json:"bookId"`
	RentalDate time.Time  `json:"rentalDate"`
	DueDate    time.Time  `json:"dueDate"`
	ReturnDate *time.Time `json:"returnDate,omitempty"`
	Status     string     `json:"status"`
	FineCents  int64      `json:"fineCents"`
}

func toRentalResponse(rental core.BookRental, asOf time.Time) rentalResponse {
	// closed rentals report the fine that was settled at return time, open
	// ones the fine accruing right now
	fineCents := rental.FineCents
	if rental.Status == core.RentalActive {
		fineCents = rental.OverdueFineAt(asOf)
	}

	return rentalResponse{
		ID:         rental.ID,
		BookID:     rental.BookID,
		RentalDate: rental.RentalDate,
		DueDate:    rental.DueDate,
		ReturnDate: rental.ReturnDate,
		Status:     rental.ReportedStatus(asOf).String(),
		FineCents:  fineCents,
	}
}

type reservationResponse struct {
	ID              uuid.UUID `json:"id"`
	SeatID          uuid.UUID `json:"seatId"`
	ReservationDate time.Time `json:"reservationDate"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	Status          string    `json:"status"`
}

func toReservationResponse(reservation core.SeatReservation) reservationResponse {
	return reservationResponse{
		ID:              reservation.ID,
		SeatID:          reservation.SeatID,
		ReservationDate: reservation.ReservationDate,
		StartTime:       reservation.StartTime,
		EndTime:         reservation.EndTime,
		Status:          reservation.Status.String(),
	}
}
