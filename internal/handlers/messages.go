package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/xuantrong94/chat-backend/internal/model"
)

// MessageHandler holds the message-send endpoints. Delivery and persistence
// are not implemented yet; the handlers validate and acknowledge only.
type MessageHandler struct{}

func NewMessageHandler() *MessageHandler {
	return &MessageHandler{}
}

type messageAck struct {
	ID          uuid.UUID `json:"id"`
	SenderID    uuid.UUID `json:"senderId"`
	RecipientID uuid.UUID `json:"recipientId"`
	Content     string    `json:"content"`
	SentAt      time.Time `json:"sentAt"`
}

// Send godoc
//
//	@Summary		Send a message (stub)
//	@Description	Validate and acknowledge a message; no delivery yet
//	@Tags			Messages
//	@Accept			json
//	@Produce		json
//	@Success		202	{object}	map[string]any
//	@Failure		400	{object}	map[string]any
//	@Router			/messages [post]
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	claims := GetIdentity(r.Context())
	if claims == nil {
		RespondErrorJSON(w, r, http.StatusUnauthorized, ErrInvalidToken.Error(), "identity not found in request context", nil)
		return
	}

	var req model.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondErrorJSON(w, r, http.StatusBadRequest, ErrInvalidJson.Error(), "Invalid JSON format", nil)
		return
	}

	if err := validate.Struct(req); err != nil {
		RespondErrorJSON(w, r, http.StatusBadRequest, ErrInvalidRequest.Error(), "Input validation failed", validationDetails(err))
		return
	}

	ack := messageAck{
		ID:          uuid.New(),
		SenderID:    claims.UserID,
		RecipientID: uuid.MustParse(req.RecipientID),
		Content:     req.Content,
		SentAt:      time.Now().UTC(),
	}

	RespondSuccessJSON(w, r, http.StatusAccepted, "message accepted", ack)
}

// List godoc
//
//	@Summary		List messages (stub)
//	@Tags			Messages
//	@Produce		json
//	@Success		200	{object}	map[string]any
//	@Router			/messages [get]
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	RespondSuccessJSON(w, r, http.StatusOK, "message history is not available yet", []messageAck{})
}
