package trending

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultLanguage  = "en"
	DefaultNumMovies = 10
	MaxNumMovies     = 100
)

// Setting labels advertised in the integration descriptor. Telex echoes
// them back in the tick payload's settings array.
const (
	SettingInterval  = "Interval"
	SettingAPIKey    = "TMDb API Key"
	SettingNumMovies = "Number of Trending Movies"
	SettingLanguage  = "Preferred Language"
)

var ErrInvalidRequest = errors.New("invalid tick request")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Count is an integer that also decodes from a numeric string or a float,
// as Telex sends setting values untyped.
type Count int

func (c *Count) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = []byte(strings.TrimSpace(s))
	}

	if n, err := strconv.Atoi(string(data)); err == nil {
		*c = Count(n)
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("num_movies: %q is not a number", data)
	}
	*c = Count(int(f))
	return nil
}

// Setting is one entry of the settings array Telex sends with a tick.
type Setting struct {
	Label    string          `json:"label"`
	Type     string          `json:"type"`
	Required bool            `json:"required"`
	Default  json.RawMessage `json:"default"`
}

// TickRequest is the payload Telex posts to the tick URL.
type TickRequest struct {
	ChannelID         string    `json:"channel_id,omitempty"`
	ReturnURL         string    `json:"return_url" validate:"required,url"`
	APIKey            string    `json:"api_key,omitempty"`
	PreferredLanguage string    `json:"preferred_language,omitempty" validate:"required"`
	NumMovies         Count     `json:"num_movies" validate:"min=1,max=100"`
	Settings          []Setting `json:"settings,omitempty"`
}

// Normalize fills fields missing from the top level from the settings array,
// then applies defaults. A zero num_movies counts as missing.
func (r *TickRequest) Normalize() {
	for _, s := range r.Settings {
		switch {
		case strings.EqualFold(s.Label, SettingAPIKey) && r.APIKey == "":
			r.APIKey = settingString(s.Default)
		case strings.EqualFold(s.Label, SettingLanguage) && r.PreferredLanguage == "":
			r.PreferredLanguage = settingString(s.Default)
		case strings.EqualFold(s.Label, SettingNumMovies) && r.NumMovies == 0:
			var n Count
			if err := n.UnmarshalJSON(s.Default); err == nil {
				r.NumMovies = n
			}
		}
	}

	if r.PreferredLanguage == "" {
		r.PreferredLanguage = DefaultLanguage
	}
	if r.NumMovies == 0 {
		r.NumMovies = DefaultNumMovies
	}
}

// Validate checks a normalized request.
func (r TickRequest) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "url":
		return fe.Field() + " must be an absolute URL"
	case "min", "max":
		return fmt.Sprintf("%s must be between 1 and %d", fe.Field(), MaxNumMovies)
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

func settingString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return ""
}
