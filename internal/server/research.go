package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mohammad-safakhou/ferret/internal/agent"
	"github.com/mohammad-safakhou/ferret/internal/session"
)

// Researcher is the pipeline boundary the handlers call into; satisfied
// by *agent.Agent.
type Researcher interface {
	RunSearch(ctx context.Context, sess *session.Session, query string) agent.Result
	RunExtract(ctx context.Context, sess *session.Session, input string) agent.Result
}

// ResearchHandler exposes the two pipeline modes and session recall.
type ResearchHandler struct {
	Agent      Researcher
	Sessions   *session.Store
	SessionTTL time.Duration
}

func (h *ResearchHandler) Register(g *echo.Group) {
	g.POST("/search", h.search)
	g.POST("/extract", h.extract)
	g.POST("/recall", h.recall)
}

type searchRequest struct {
	SessionID string `json:"session_id"`
	Query     string `json:"query"`
}

type searchResponse struct {
	SessionID string `json:"session_id"`
	Answer    string `json:"answer"`
	Outcome   string `json:"outcome"`
}

func (h *ResearchHandler) search(c echo.Context) error {
	var req searchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Query) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query is required")
	}
	sess, err := h.Sessions.Ensure(req.SessionID, h.SessionTTL)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	res := h.Agent.RunSearch(c.Request().Context(), sess, req.Query)
	return c.JSON(http.StatusOK, searchResponse{
		SessionID: sess.ID(),
		Answer:    res.Answer,
		Outcome:   string(res.Outcome.Kind),
	})
}

type extractRequest struct {
	SessionID string `json:"session_id"`
	Input     string `json:"input"`
}

type extractResponse struct {
	SessionID string `json:"session_id"`
	Answer    string `json:"answer"`
	Outcome   string `json:"outcome"`
	IsURL     bool   `json:"is_url"`
}

func (h *ResearchHandler) extract(c echo.Context) error {
	var req extractRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Input) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "input is required")
	}
	sess, err := h.Sessions.Ensure(req.SessionID, h.SessionTTL)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	res := h.Agent.RunExtract(c.Request().Context(), sess, req.Input)
	return c.JSON(http.StatusOK, extractResponse{
		SessionID: sess.ID(),
		Answer:    res.Answer,
		Outcome:   string(res.Outcome.Kind),
		IsURL:     res.IsURL,
	})
}

type recallRequest struct {
	SessionID string `json:"session_id"`
	Query     string `json:"query"`
	K         int    `json:"k"`
}

func (h *ResearchHandler) recall(c echo.Context) error {
	var req recallRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Query) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query is required")
	}
	sess := h.Sessions.Get(req.SessionID)
	if sess == nil {
		return echo.NewHTTPError(http.StatusNotFound, "unknown session")
	}
	hits, err := sess.Recall.Search(req.Query, req.K)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"session_id": sess.ID(),
		"hits":       hits,
	})
}
