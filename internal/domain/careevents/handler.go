package careevents

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/care-events", func(er chi.Router) {
		er.Get("/", listCareEventsHandler(svc))
		er.Get("/latest", latestCareEventHandler(svc))
	})
}

// careEventResponse representa un registro de cuidado devuelto por la API.
type careEventResponse struct {
	ID          int64     `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	DisplayTime string    `json:"display_time"`
	UserID      string    `json:"user_id"`
	ActionType  string    `json:"action_type"`
	Action      string    `json:"action"`
}

// listCareEventsHandler godoc
// @Summary Listar registros de cuidado
// @Description Lista los registros más recientes primero. Requiere `Authorization: Bearer <ADMIN_TOKEN>`.
// @Tags care-events
// @Produce json
// @Param Authorization header string true "Bearer token de administración"
// @Param user_id query string false "Filtra por ID de usuario LINE"
// @Param types query string false "Lista CSV de tipos (feed,defecate,urinate,water)"
// @Param from query string false "timestamp mínimo (RFC3339)"
// @Param to query string false "timestamp máximo (RFC3339)"
// @Param limit query int false "Máximo de registros (1-1000). Por defecto 50"
// @Success 200 {array} careEventResponse
// @Failure 400 {string} string "Parámetros de filtro inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 503 {string} string "store unavailable"
// @Router /care-events [get]
func listCareEventsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseListFilter(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		items, err := svc.List(r.Context(), filter)
		if err != nil {
			writeStoreError(w, err)
			return
		}

		out := make([]careEventResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toCareEventResponse(e))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// latestCareEventHandler godoc
// @Summary Último registro de cuidado
// @Description Devuelve el registro más reciente, global o filtrado por tipo.
// @Tags care-events
// @Produce json
// @Param Authorization header string true "Bearer token de administración"
// @Param type query string false "feed | defecate | urinate | water"
// @Success 200 {object} careEventResponse
// @Failure 400 {string} string "type inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "no events"
// @Failure 503 {string} string "store unavailable"
// @Router /care-events/latest [get]
func latestCareEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			e   CareEvent
			err error
		)

		if v := strings.TrimSpace(r.URL.Query().Get("type")); v != "" {
			action, ok := ParseAction(v)
			if !ok {
				http.Error(w, "invalid type", http.StatusBadRequest)
				return
			}
			e, err = svc.LatestByType(r.Context(), action)
		} else {
			e, err = svc.Latest(r.Context())
		}
		if err != nil {
			writeStoreError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toCareEventResponse(e))
	}
}

func parseListFilter(r *http.Request) (ListFilter, error) {
	q := r.URL.Query()
	filter := ListFilter{Limit: DefaultListLimit}

	if v := strings.TrimSpace(q.Get("limit")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > MaxListLimit {
			return ListFilter{}, errors.New("limit must be between 1 and " + strconv.Itoa(MaxListLimit))
		}
		filter.Limit = n
	}

	filter.SenderID = strings.TrimSpace(q.Get("user_id"))

	// types=feed,water
	if v := strings.TrimSpace(q.Get("types")); v != "" {
		for _, p := range strings.Split(v, ",") {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			a, ok := ParseAction(p)
			if !ok {
				return ListFilter{}, errors.New("unknown type: " + p)
			}
			filter.Actions = append(filter.Actions, a)
		}
	}

	if v := strings.TrimSpace(q.Get("from")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return ListFilter{}, errors.New("from must be RFC3339")
		}
		filter.From = &t
	}
	if v := strings.TrimSpace(q.Get("to")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return ListFilter{}, errors.New("to must be RFC3339")
		}
		filter.To = &t
	}

	return filter, nil
}

func toCareEventResponse(e CareEvent) careEventResponse {
	return careEventResponse{
		ID:          e.ID,
		Timestamp:   e.Timestamp,
		DisplayTime: FormatTimestamp(e.Timestamp),
		UserID:      e.SenderID,
		ActionType:  string(e.Action),
		Action:      e.Action.Slug(),
	}
}

func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "no events", http.StatusNotFound)
	case errors.Is(err, ErrUnavailable):
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, "invalid input", http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
