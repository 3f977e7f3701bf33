package conversation

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pet-care-log/internal/ports/messaging"
)

func RegisterRoutes(r chi.Router, svc *Service, parser messaging.EventParser) {
	r.Post("/callback", callbackHandler(svc, parser))
}

// callbackHandler godoc
// @Summary Webhook de LINE
// @Description Recibe eventos del Messaging API. Verifica `X-Line-Signature`, responde una vez por mensaje de texto.
// @Tags webhook
// @Accept json
// @Produce plain
// @Param X-Line-Signature header string true "HMAC-SHA256 del body (base64)"
// @Success 200 {string} string "OK"
// @Failure 400 {string} string "invalid signature / invalid body"
// @Router /callback [post]
func callbackHandler(svc *Service, parser messaging.EventParser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		inbound, err := parser.Parse(r)
		if err != nil {
			if errors.Is(err, messaging.ErrInvalidSignature) {
				http.Error(w, "invalid signature", http.StatusBadRequest)
				return
			}
			svc.log.Warn("webhook parse failed", map[string]any{"error": err})
			http.Error(w, "invalid body", http.StatusBadRequest)
			return
		}

		for _, in := range inbound {
			svc.Respond(r.Context(), in)
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}
