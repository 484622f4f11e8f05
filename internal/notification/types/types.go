// Package types contains shared type definitions for notification packages.
package types

import (
	"context"

	"github.com/movietrend/movietrend/internal/metadata/tmdb"
)

// NotifierType identifies a notification provider
type NotifierType string

const (
	NotifierTelex NotifierType = "telex"
	NotifierMock  NotifierType = "mock"
)

// DisplayMovie is a trending movie prepared for a message.
type DisplayMovie struct {
	Title    string      `json:"title"`
	Rating   float64     `json:"rating"`
	Overview string      `json:"overview"`
	Cover    tmdb.Poster `json:"-"`
}

// CoverPhoto renders the cover as it appears in messages.
func (m DisplayMovie) CoverPhoto() string {
	return m.Cover.String()
}

// Notifier delivers a trending movie list to a destination URL.
type Notifier interface {
	Type() NotifierType
	SendTrending(ctx context.Context, url string, movies []DisplayMovie) error
}
