package line

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"

	"pet-care-log/internal/platform/httpclient"
)

var (
	ErrLineNotConfigured = errors.New("line client not configured")
	ErrLineUpstream      = errors.New("line upstream error")
)

// Config del cliente del Messaging API.
type Config struct {
	ChannelAccessToken string

	// Timeout HTTP por llamada. Default 10s.
	Timeout time.Duration

	// Endpoint alternativo del API (tests). Vacío => api.line.me.
	Endpoint string
}

// messagingAPI es el subconjunto de *messaging_api.MessagingApiAPI que usamos (permite fakes).
type messagingAPI interface {
	ReplyMessage(req *messaging_api.ReplyMessageRequest) (*messaging_api.ReplyMessageResponse, error)
	GetProfile(userID string) (*messaging_api.UserProfileResponse, error)
}

// Client implementa messaging.Replier y messaging.ProfileLookup.
type Client struct {
	api messagingAPI
}

func NewClient(cfg Config) (*Client, error) {
	token := strings.TrimSpace(cfg.ChannelAccessToken)
	if token == "" {
		return nil, ErrLineNotConfigured
	}
	opts := []messaging_api.MessagingApiAPIOption{
		messaging_api.WithHTTPClient(httpclient.New(cfg.Timeout)),
	}
	if ep := strings.TrimSpace(cfg.Endpoint); ep != "" {
		opts = append(opts, messaging_api.WithEndpoint(ep))
	}

	api, err := messaging_api.NewMessagingApiAPI(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("line: new messaging api: %w", err)
	}
	return &Client{api: api}, nil
}

// Reply envía un único mensaje de texto con el reply token del evento.
// El SDK no toma context por llamada; el corte lo da el timeout del http.Client.
func (c *Client) Reply(_ context.Context, replyToken string, text string) error {
	if c == nil || c.api == nil {
		return ErrLineNotConfigured
	}

	_, err := c.api.ReplyMessage(&messaging_api.ReplyMessageRequest{
		ReplyToken: replyToken,
		Messages: []messaging_api.MessageInterface{
			messaging_api.TextMessage{Text: text},
		},
	})
	if err != nil {
		return fmt.Errorf("%w: reply: %v", ErrLineUpstream, err)
	}
	return nil
}

// DisplayName trae el nombre visible del perfil. Falla si el usuario no agregó al bot.
func (c *Client) DisplayName(_ context.Context, senderID string) (string, error) {
	if c == nil || c.api == nil {
		return "", ErrLineNotConfigured
	}

	p, err := c.api.GetProfile(senderID)
	if err != nil {
		return "", fmt.Errorf("%w: profile: %v", ErrLineUpstream, err)
	}
	if p == nil || strings.TrimSpace(p.DisplayName) == "" {
		return "", errors.New("line profile missing display name")
	}
	return strings.TrimSpace(p.DisplayName), nil
}
