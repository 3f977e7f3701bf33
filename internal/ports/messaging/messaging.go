package messaging

import (
	"context"
	"errors"
	"net/http"
)

// ErrInvalidSignature: la firma del webhook no corresponde al body.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// Inbound es un mensaje de texto entrante ya verificado.
type Inbound struct {
	SenderID   string
	Text       string
	ReplyToken string
}

// EventParser verifica la firma y extrae los mensajes de texto de un webhook.
type EventParser interface {
	Parse(r *http.Request) ([]Inbound, error)
}

// Replier envía la única respuesta de texto de un turno.
type Replier interface {
	Reply(ctx context.Context, replyToken string, text string) error
}

// ProfileLookup resuelve el nombre visible de un sender.
type ProfileLookup interface {
	DisplayName(ctx context.Context, senderID string) (string, error)
}
