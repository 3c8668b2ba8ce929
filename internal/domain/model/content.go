package model

import "time"

type ContentType string

const (
	ContentTypeMovie  ContentType = "movie"
	ContentTypeSeries ContentType = "series"
	ContentTypeAnime  ContentType = "anime"
)

// Label returns the user-facing name of the type.
func (t ContentType) Label() string {
	switch t {
	case ContentTypeMovie:
		return "Kino"
	case ContentTypeSeries:
		return "Serial"
	case ContentTypeAnime:
		return "Anime"
	default:
		return string(t)
	}
}

// Content is a catalog entry (a movie, a series or an anime).
type Content struct {
	ID           int64
	Title        string
	Type         ContentType
	Year         string
	Country      string
	Language     string
	Genres       string
	Description  string
	PosterFileID string
	PartsTotal   int
	Views        int64
	CreatedAt    time.Time
}

// Part is a single deliverable episode of a Content. ChannelMessageID points
// at the media message inside one of the content channels.
type Part struct {
	ID               int64
	ContentID        int64
	Season           int
	Number           int
	ChannelMessageID int
}

// Stats is the aggregate counters shown to admins.
type Stats struct {
	Content int
	Parts   int
	Users   int
	Views   int64
}
