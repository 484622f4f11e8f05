package integration

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	d := Build("https://movietrend.example/", now, Options{StaticURL: "static"})

	assert.Equal(t, "https://movietrend.example/tick", d.Data.TickURL)
	assert.Equal(t, "https://movietrend.example", d.Data.Descriptions.AppURL)
	assert.Equal(t, "https://movietrend.example/static/logo/logo.jpeg", d.Data.Descriptions.AppLogo)
	assert.Equal(t, "2026-10-15", d.Data.Date.CreatedAt)
	assert.Equal(t, "2026-10-15", d.Data.Date.UpdatedAt)
	assert.Equal(t, "interval", d.Data.IntegrationType)

	require.Len(t, d.Data.Settings, 4)
	labels := make([]string, len(d.Data.Settings))
	for i, s := range d.Data.Settings {
		labels[i] = s.Label
	}
	assert.Equal(t, []string{"Interval", "TMDb API Key", "Number of Trending Movies", "Preferred Language"}, labels)
	assert.True(t, d.Data.Settings[0].Required)
	assert.Equal(t, Languages, d.Data.Settings[3].Options)
}

func TestBuild_JSONShape(t *testing.T) {
	d := Build("http://localhost:8000", time.Now(), Options{})

	body, err := json.Marshal(d)
	require.NoError(t, err)

	var doc map[string]map[string]any
	require.NoError(t, json.Unmarshal(body, &doc))

	data := doc["data"]
	assert.Equal(t, "http://localhost:8000/tick", data["tick_url"])
	assert.Nil(t, data["target_url"])
	assert.Contains(t, data, "target_url")

	settings, ok := data["settings"].([]any)
	require.True(t, ok)
	assert.NotEmpty(t, settings)

	numMovies := settings[2].(map[string]any)
	assert.EqualValues(t, 10, numMovies["default"])
	assert.NotContains(t, numMovies, "options")

	logo := data["descriptions"].(map[string]any)["app_logo"]
	assert.Equal(t, "http://localhost:8000/static/logo/logo.jpeg", logo)
}
