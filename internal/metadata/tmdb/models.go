package tmdb

// TrendingResponse is the response from the TMDB trending endpoint.
type TrendingResponse struct {
	Page         int           `json:"page"`
	Results      []MovieResult `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

// MovieResult is a movie from TMDB list results.
type MovieResult struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title"`
	Overview      string  `json:"overview"`
	ReleaseDate   string  `json:"release_date"`
	PosterPath    *string `json:"poster_path"`
	BackdropPath  *string `json:"backdrop_path"`
	VoteAverage   float64 `json:"vote_average"`
	VoteCount     int     `json:"vote_count"`
	Popularity    float64 `json:"popularity"`
	Adult         bool    `json:"adult"`
	GenreIDs      []int   `json:"genre_ids"`
}

// Poster returns the relative poster path, or "" when TMDB has none.
func (m MovieResult) Poster() string {
	if m.PosterPath == nil {
		return ""
	}
	return *m.PosterPath
}

// ConfigurationResponse is the response from the TMDB configuration endpoint.
type ConfigurationResponse struct {
	Images     ImageConfig `json:"images"`
	ChangeKeys []string    `json:"change_keys"`
}

// ImageConfig describes where TMDB hosts images and in which sizes.
type ImageConfig struct {
	BaseURL       string   `json:"base_url"`
	SecureBaseURL string   `json:"secure_base_url"`
	BackdropSizes []string `json:"backdrop_sizes"`
	PosterSizes   []string `json:"poster_sizes"`
}

// ErrorResponse is an error from the TMDB API.
type ErrorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
	Success       bool   `json:"success"`
}
