package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xuantrong94/chat-backend/internal/model"
	"github.com/xuantrong94/chat-backend/pkg/token"
)

var requestIDKey = "X-Request-ID"

type ctxKey string

const identityKey ctxKey = "identity"

// WithIdentity attaches the verified claims to the request context.
func WithIdentity(ctx context.Context, claims *token.Claims) context.Context {
	return context.WithValue(ctx, identityKey, claims)
}

// GetIdentity returns the claims the route guard attached, or nil.
func GetIdentity(ctx context.Context) *token.Claims {
	claims, ok := ctx.Value(identityKey).(*token.Claims)
	if !ok {
		return nil
	}
	return claims
}

func writeJson(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.S().Errorw("failed to write json response", "status", status, "error", err)
	}
}

// RespondSuccessJSON wraps data in the success envelope, echoing or minting
// a request ID so the client always gets one back.
func RespondSuccessJSON[T any](w http.ResponseWriter, r *http.Request, status int, message string, data T) {
	reqID := r.Header.Get(requestIDKey)
	if reqID == "" {
		reqID = uuid.NewString()
	}
	w.Header().Set(requestIDKey, reqID)

	payload := model.APIResponse[T]{
		Success: true,
		Message: message,
		Metadata: model.Metadata{
			Timestamp: time.Now().UTC(),
			RequestID: reqID,
		},
		Data:  data,
		Error: nil,
	}
	writeJson(w, status, payload)
}

// RespondErrorJSON wraps a machine-readable code plus human message in the
// error envelope.
func RespondErrorJSON(w http.ResponseWriter, r *http.Request, status int, code string, message string, details []model.ErrorDetails) {
	reqID := r.Header.Get(requestIDKey)
	if reqID == "" {
		reqID = uuid.NewString()
	}
	w.Header().Set(requestIDKey, reqID)

	payload := model.APIResponse[any]{
		Success: false,
		Metadata: model.Metadata{
			Timestamp: time.Now().UTC(),
			RequestID: reqID,
		},
		Error: &model.APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
	writeJson(w, status, payload)
}

// validationDetails flattens validator errors into field-level details.
func validationDetails(err error) []model.ErrorDetails {
	var details []model.ErrorDetails
	if validErrs, ok := err.(validator.ValidationErrors); ok {
		for _, vErr := range validErrs {
			details = append(details, model.ErrorDetails{
				Field: vErr.Field(),
				Issue: fmt.Sprintf("failed on tag '%s' with param '%s'", vErr.Tag(), vErr.Param()),
			})
		}
	}
	return details
}
