package updatebook

import (
	"time"

	"github.com/google/uuid"
)

const (
	commandType = "UpdateBook"
)

// Command represents the intent to edit a catalog entry. All descriptive
// fields are replaced wholesale; the available count is derived, not taken
// from the caller.
type Command struct {
	BookID      uuid.UUID
	Title       string
	Author      string
	ISBN        string
	Category    string
	Publisher   string
	PublishDate *time.Time
	PageCount   int
	Description string
	TotalCopies int
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	bookID uuid.UUID,
	title string,
	author string,
	isbn string,
	category string,
	publisher string,
	publishDate *time.Time,
	pageCount int,
	description string,
	totalCopies int,
) Command {
	return Command{
		BookID:      bookID,
		Title:       title,
		Author:      author,
		ISBN:        isbn,
		Category:    category,
		Publisher:   publisher,
		PublishDate: publishDate,
		PageCount:   pageCount,
		Description: description,
		TotalCopies: totalCopies,
	}
}
