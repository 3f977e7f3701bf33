package conversation

import (
	"context"
	"errors"

	"pet-care-log/internal/domain/careevents"
	"pet-care-log/internal/platform/logger"
	"pet-care-log/internal/platform/metrics"
	"pet-care-log/internal/ports/messaging"
)

// Service es el único punto que decide texto visible vs. entrada de log.
type Service struct {
	classifier *Classifier
	events     *careevents.Service
	profiles   messaging.ProfileLookup
	replier    messaging.Replier
	log        logger.Logger
}

type Options struct {
	Classifier *Classifier // nil => DefaultRules
	Events     *careevents.Service
	Profiles   messaging.ProfileLookup
	Replier    messaging.Replier
	Logger     logger.Logger
}

func NewService(opts Options) *Service {
	c := opts.Classifier
	if c == nil {
		c = NewClassifier(DefaultRules())
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{
		classifier: c,
		events:     opts.Events,
		profiles:   opts.Profiles,
		replier:    opts.Replier,
		log:        log.With(map[string]any{"component": "conversation"}),
	}
}

// Handle clasifica el texto, ejecuta el intent y devuelve el texto de respuesta.
func (s *Service) Handle(ctx context.Context, in messaging.Inbound) string {
	it := s.classifier.Classify(in.Text)
	metrics.MessagesTotal.WithLabelValues(it.Kind.String()).Inc()

	out := s.execute(ctx, in.SenderID, it)
	if out.Err != nil {
		s.logOutcomeError(in, it, out.Err)
	}

	return Format(it, out, s.displayName(ctx, in.SenderID))
}

// Respond calcula la respuesta y la envía. Un fallo de entrega solo se loguea y se cuenta.
func (s *Service) Respond(ctx context.Context, in messaging.Inbound) {
	text := s.Handle(ctx, in)

	if s.replier == nil || in.ReplyToken == "" {
		s.log.Warn("reply skipped", map[string]any{"sender_id": in.SenderID, "has_token": in.ReplyToken != ""})
		return
	}

	if err := s.replier.Reply(ctx, in.ReplyToken, text); err != nil {
		metrics.ReplyFailuresTotal.Inc()
		s.log.Error("reply delivery failed", map[string]any{
			"sender_id": in.SenderID,
			"error":     err,
		})
	}
}

func (s *Service) execute(ctx context.Context, senderID string, it Intent) Outcome {
	switch it.Kind {
	case KindRecord:
		e, err := s.events.Record(ctx, senderID, it.Action)
		if err == nil {
			metrics.CareEventsRecordedTotal.WithLabelValues(it.Action.Slug()).Inc()
		}
		return Outcome{Event: e, Err: err}

	case KindDelete:
		d, err := s.events.DeleteLatestFor(ctx, senderID)
		return Outcome{Deleted: d, Err: err}

	case KindLatest:
		e, err := s.events.Latest(ctx)
		if err != nil {
			return Outcome{Err: err}
		}
		return Outcome{Event: e, OwnerName: s.displayName(ctx, e.SenderID)}

	case KindLatestByType:
		e, err := s.events.LatestByType(ctx, it.Action)
		if err != nil {
			return Outcome{Err: err}
		}
		return Outcome{Event: e, OwnerName: s.displayName(ctx, e.SenderID)}

	default:
		return Outcome{}
	}
}

// displayName nunca falla: sin perfil devuelve "" y el formatter usa el placeholder.
func (s *Service) displayName(ctx context.Context, senderID string) string {
	if s.profiles == nil || senderID == "" {
		return ""
	}
	name, err := s.profiles.DisplayName(ctx, senderID)
	if err != nil {
		metrics.ProfileLookupFailuresTotal.Inc()
		s.log.Warn("profile lookup failed", map[string]any{
			"sender_id": senderID,
			"error":     err,
		})
		return ""
	}
	return name
}

func (s *Service) logOutcomeError(in messaging.Inbound, it Intent, err error) {
	if errors.Is(err, careevents.ErrNotFound) {
		return
	}

	kind := "failed"
	if errors.Is(err, careevents.ErrUnavailable) {
		kind = "unavailable"
	}
	metrics.StoreErrorsTotal.WithLabelValues(it.Kind.String(), kind).Inc()

	s.log.Error("care event store error", map[string]any{
		"sender_id": in.SenderID,
		"intent":    it.Kind.String(),
		"rule":      it.Rule,
		"kind":      kind,
		"error":     err,
	})
}
