package addbook

import (
	"time"

	"github.com/google/uuid"

	"github.com/readhall/circulation-go/core"
)

const (
	commandType = "AddBook"
)

// Command represents the intent to add a new title to the catalog.
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
	OccurredAt  core.Timestamp
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
	occurredAt time.Time,
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
		OccurredAt:  core.ToTimestamp(occurredAt),
	}
}
