package config

// EmbeddedTMDBToken is the default TMDB read access token, injected at build
// time via ldflags. The config file and MOVIETREND_TMDB_BEARER_TOKEN override it.
//
// Build with:
//
//	go build -ldflags "-X 'github.com/movietrend/movietrend/internal/config.EmbeddedTMDBToken=xxx'"
var EmbeddedTMDBToken string
