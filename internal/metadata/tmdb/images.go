package tmdb

// preferredPosterSize is the index into poster_sizes used for covers. TMDB
// lists sizes smallest first, so index 4 is usually w500.
const preferredPosterSize = 4

// Reasons rendered in place of a poster URL.
const (
	ReasonInvalidConfig = "Invalid URL configuration."
	ReasonUnavailable   = "Image unavailable."
)

// PosterSize picks the size token for covers: the fifth listed size when
// there are more than four, else the first, else "".
func (ic ImageConfig) PosterSize() string {
	switch {
	case len(ic.PosterSizes) > preferredPosterSize:
		return ic.PosterSizes[preferredPosterSize]
	case len(ic.PosterSizes) > 0:
		return ic.PosterSizes[0]
	default:
		return ""
	}
}

// Poster is the outcome of resolving a cover image: either an absolute URL
// or the reason no URL could be built.
type Poster struct {
	URL    string
	Reason string
}

// ResolvedPoster returns a resolved outcome.
func ResolvedPoster(u string) Poster {
	return Poster{URL: u}
}

// UnresolvedPoster returns an outcome carrying only a reason.
func UnresolvedPoster(reason string) Poster {
	return Poster{Reason: reason}
}

// Resolved reports whether the poster has a URL.
func (p Poster) Resolved() bool {
	return p.URL != ""
}

// String renders the URL, or the reason when unresolved.
func (p Poster) String() string {
	if p.Resolved() {
		return p.URL
	}
	return p.Reason
}

// ResolvePoster builds the absolute cover URL for posterPath.
func ResolvePoster(cfg ImageConfig, posterPath string) Poster {
	size := cfg.PosterSize()
	if cfg.BaseURL == "" || size == "" || posterPath == "" {
		return UnresolvedPoster(ReasonInvalidConfig)
	}
	return ResolvedPoster(cfg.BaseURL + size + posterPath)
}
