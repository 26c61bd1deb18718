package httpapi

import "ragchat/internal/domain"

type AskRequest struct {
	Query string `json:"query"`
}

type AskResponse struct {
	Answer    string          `json:"answer"`
	Sources   []domain.Source `json:"sources"`
	SessionID string          `json:"session_id"`
}

type ChatRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id"`
}

type ChatResponse struct {
	Answer    string `json:"answer"`
	SessionID string `json:"session_id"`
}

type HistoryEntry struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

type HistoryResponse struct {
	History []HistoryEntry `json:"history"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
