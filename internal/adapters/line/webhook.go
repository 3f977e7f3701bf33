package line

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"

	"pet-care-log/internal/ports/messaging"
)

// Parser verifica X-Line-Signature con el channel secret y extrae los mensajes de texto.
type Parser struct {
	channelSecret string
}

func NewParser(channelSecret string) (*Parser, error) {
	channelSecret = strings.TrimSpace(channelSecret)
	if channelSecret == "" {
		return nil, ErrLineNotConfigured
	}
	return &Parser{channelSecret: channelSecret}, nil
}

func (p *Parser) Parse(r *http.Request) ([]messaging.Inbound, error) {
	cb, err := webhook.ParseRequest(p.channelSecret, r)
	if err != nil {
		if errors.Is(err, webhook.ErrInvalidSignature) {
			return nil, messaging.ErrInvalidSignature
		}
		return nil, fmt.Errorf("line: parse webhook: %w", err)
	}

	out := make([]messaging.Inbound, 0, len(cb.Events))
	for _, ev := range cb.Events {
		e, ok := ev.(webhook.MessageEvent)
		if !ok {
			continue
		}
		msg, ok := e.Message.(webhook.TextMessageContent)
		if !ok {
			continue
		}

		out = append(out, messaging.Inbound{
			SenderID:   senderID(e.Source),
			Text:       msg.Text,
			ReplyToken: e.ReplyToken,
		})
	}
	return out, nil
}

// senderID devuelve el usuario que escribió, también dentro de grupos y salas.
func senderID(src webhook.SourceInterface) string {
	switch s := src.(type) {
	case webhook.UserSource:
		return s.UserId
	case webhook.GroupSource:
		return s.UserId
	case webhook.RoomSource:
		return s.UserId
	default:
		return ""
	}
}
