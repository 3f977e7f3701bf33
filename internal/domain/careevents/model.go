package careevents

import "time"

const (
	MaxSenderIDLen   = 50
	MaxActionTypeLen = 20
)

// CareEvent es una fila de pet_logs. Nunca se actualiza: solo se inserta o se borra.
type CareEvent struct {
	ID        int64
	Timestamp time.Time // UTC
	SenderID  string
	Action    ActionType
}
