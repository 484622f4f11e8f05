package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/movietrend/movietrend/internal/integration"
	"github.com/movietrend/movietrend/internal/trending"
)

const (
	statusSuccess = "success"
	statusError   = "error"

	msgSent        = "Trending movies sent to Telex"
	msgFetchFailed = "Failed to fetch trending movies"
	msgSendFailed  = "Failed to send movie data to Telex"
	msgBadBody     = "Invalid request body"
)

// TickResponse is the body returned to Telex for a tick.
type TickResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// tick runs the trending pipeline for a Telex tick.
// POST /tick
func (s *Server) tick(c echo.Context) error {
	var req trending.TickRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, TickResponse{Status: statusError, Message: msgBadBody})
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, TickResponse{Status: statusError, Message: err.Error()})
	}

	res := s.trending.Run(c.Request().Context(), req)
	switch res.State {
	case trending.StateSent:
		return c.JSON(http.StatusOK, TickResponse{Status: statusSuccess, Message: msgSent})
	case trending.StateFetchFailed:
		return c.JSON(http.StatusInternalServerError, TickResponse{Status: statusError, Message: msgFetchFailed})
	default:
		return c.JSON(http.StatusInternalServerError, TickResponse{Status: statusError, Message: msgSendFailed})
	}
}

// getIntegration returns the integration descriptor.
// GET /integration.json
func (s *Server) getIntegration(c echo.Context) error {
	descriptor := integration.Build(s.baseURL(c), time.Now(), integration.Options{
		StaticURL: s.cfg.Site.StaticURL,
	})
	return c.JSON(http.StatusOK, descriptor)
}

// baseURL is the configured public URL, or the scheme and host the request
// arrived on.
func (s *Server) baseURL(c echo.Context) string {
	if u := s.cfg.Server.PublicURL; u != "" {
		return strings.TrimRight(u, "/")
	}
	return c.Scheme() + "://" + c.Request().Host
}

func (s *Server) redirectHome(c echo.Context) error {
	return c.Redirect(http.StatusFound, s.cfg.Site.RedirectURL)
}

func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
