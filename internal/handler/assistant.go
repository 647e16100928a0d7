package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Girish14j/Iskcon-bhakti-booking/internal/assistant"
)

// AssistantHandler serves POST /v1/assistant: one user message in, one
// plain-text reply out. All scheduling decisions are made locally; the
// language model only extracts the intent and handles small talk.
type AssistantHandler struct {
	Responder *assistant.Responder
}

func NewAssistantHandler(r *assistant.Responder) *AssistantHandler {
	if r == nil {
		panic("nil responder passed to NewAssistantHandler")
	}
	return &AssistantHandler{Responder: r}
}

type assistantReq struct {
	Message string `json:"message"`
}

func (h *AssistantHandler) Chat(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req assistantReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "message required"})
	}

	reply, err := h.Responder.HandleMessage(c.Request().Context(), uid, strings.TrimSpace(req.Message))
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "assistant unavailable"})
	}
	return c.JSON(http.StatusOK, echo.Map{"response": reply})
}
