package librarystats

// LibraryStats represents the query result containing the dashboard counts.
type LibraryStats struct {
	TotalBooks         int
	TotalSeats         int
	TotalUsers         int
	ActiveRentals      int
	ActiveReservations int
}
