// Package httpapi exposes the ask/chat pipeline over HTTP with gin.
package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ragchat/internal/domain"
)

// Controller adapts HTTP requests to the RAG service.
type Controller struct {
	service domain.RAGService
	logger  *zap.Logger
}

func NewController(service domain.RAGService, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{service: service, logger: logger}
}

// Ask handles POST /api/ask.
func (c *Controller) Ask(ctx *gin.Context) {
	var req AskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	res, err := c.service.Ask(ctx.Request.Context(), req.Query)
	if err != nil {
		c.fail(ctx, "ask", err)
		return
	}
	sources := res.Sources
	if sources == nil {
		sources = []domain.Source{}
	}
	ctx.JSON(http.StatusOK, AskResponse{Answer: res.Answer, Sources: sources, SessionID: res.SessionID})
}

// Chat handles POST /api/chat.
func (c *Controller) Chat(ctx *gin.Context) {
	var req ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	res, err := c.service.Chat(ctx.Request.Context(), req.SessionID, req.Query)
	if err != nil {
		c.fail(ctx, "chat", err)
		return
	}
	ctx.JSON(http.StatusOK, ChatResponse{Answer: res.Answer, SessionID: res.SessionID})
}

// History handles GET /api/chat/history?session_id=...
func (c *Controller) History(ctx *gin.Context) {
	turns, err := c.service.History(ctx.Query("session_id"))
	if err != nil {
		c.fail(ctx, "history", err)
		return
	}
	out := make([]HistoryEntry, 0, len(turns))
	for _, t := range turns {
		out = append(out, HistoryEntry{Sender: string(t.Sender), Text: t.Text})
	}
	ctx.JSON(http.StatusOK, HistoryResponse{History: out})
}

// fail maps service errors to status codes. Only the sentinel message
// reaches the client; the full chain is logged.
func (c *Controller) fail(ctx *gin.Context, op string, err error) {
	status, msg := classify(err)
	if status >= http.StatusInternalServerError {
		c.logger.Error("request failed", zap.String("op", op), zap.Int("status", status), zap.Error(err))
	} else {
		c.logger.Debug("request rejected", zap.String("op", op), zap.Int("status", status), zap.Error(err))
	}
	ctx.JSON(status, ErrorResponse{Error: msg})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidQuery):
		return http.StatusBadRequest, domain.ErrInvalidQuery.Error()
	case errors.Is(err, domain.ErrMissingSession):
		return http.StatusBadRequest, domain.ErrMissingSession.Error()
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, domain.ErrSessionNotFound.Error()
	case errors.Is(err, domain.ErrProviderUnavailable):
		return http.StatusBadGateway, domain.ErrProviderUnavailable.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
