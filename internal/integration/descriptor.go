// Package integration builds the descriptor Telex reads to register the app.
package integration

import (
	"strings"
	"time"

	"github.com/movietrend/movietrend/internal/trending"
)

const (
	AppName  = "MovieTrend"
	Author   = "Edric Oghenejobor"
	TickPath = "/tick"
)

// Languages offered by the Preferred Language setting.
var Languages = []string{"en", "fr", "es", "de", "it", "ja", "zh"}

// Descriptor is the document served at /integration.json.
type Descriptor struct {
	Data Data `json:"data"`
}

type Data struct {
	Date            Dates        `json:"date"`
	Descriptions    Descriptions `json:"descriptions"`
	Author          string       `json:"author"`
	IntegrationType string       `json:"integration_type"`
	IsActive        bool         `json:"is_active"`
	KeyFeatures     []string     `json:"key_features"`
	Settings        []Setting    `json:"settings"`
	TickURL         string       `json:"tick_url"`
	TargetURL       *string      `json:"target_url"`
}

type Dates struct {
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type Descriptions struct {
	AppDescription  string `json:"app_description"`
	AppLogo         string `json:"app_logo"`
	AppName         string `json:"app_name"`
	AppURL          string `json:"app_url"`
	BackgroundColor string `json:"background_color"`
}

// Setting is one configurable option shown to Telex users.
type Setting struct {
	Label       string   `json:"label"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Required    bool     `json:"required"`
	Default     any      `json:"default"`
	Options     []string `json:"options,omitempty"`
}

// Options controls the environment-dependent parts of the descriptor.
type Options struct {
	// StaticURL is the path prefix static assets are served under.
	StaticURL string
}

// Build returns the descriptor for a service reachable at baseURL.
func Build(baseURL string, now time.Time, opts Options) Descriptor {
	baseURL = strings.TrimRight(baseURL, "/")
	today := now.Format(time.DateOnly)

	staticURL := "/" + strings.Trim(opts.StaticURL, "/") + "/"
	if staticURL == "//" {
		staticURL = "/static/"
	}

	return Descriptor{
		Data: Data{
			Date: Dates{CreatedAt: today, UpdatedAt: today},
			Descriptions: Descriptions{
				AppDescription:  "Fetches and provides trending movies from the past week.",
				AppLogo:         baseURL + staticURL + "logo/logo.jpeg",
				AppName:         AppName,
				AppURL:          baseURL,
				BackgroundColor: "#000000",
			},
			Author:          Author,
			IntegrationType: "interval",
			IsActive:        true,
			KeyFeatures: []string{
				"Fetches trending movies weekly",
				"Provides movie titles, ratings, descriptions and image url",
				"Sends movie data to Telex for processing",
			},
			Settings: []Setting{
				{
					Label:       trending.SettingInterval,
					Type:        "text",
					Description: "Crontab format for scheduling the fetch operation.",
					Required:    true,
					Default:     "* * * * *",
				},
				{
					Label:       trending.SettingAPIKey,
					Type:        "text",
					Description: "API key for accessing TMDb movie data.",
					Required:    false,
					Default:     "",
				},
				{
					Label:       trending.SettingNumMovies,
					Type:        "number",
					Description: "How many trending movies to fetch (e.g., 5, 10, 20).",
					Required:    false,
					Default:     trending.DefaultNumMovies,
				},
				{
					Label:       trending.SettingLanguage,
					Type:        "dropdown",
					Description: "Select the language for movie titles and descriptions.",
					Required:    false,
					Default:     trending.DefaultLanguage,
					Options:     Languages,
				},
			},
			TickURL: baseURL + TickPath,
		},
	}
}
