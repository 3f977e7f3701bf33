package careevents

import "time"

const TimestampLayout = "2006/01/02 15時04分"

var displayZone = time.FixedZone("UTC+9", 9*60*60)

// FormatTimestamp convierte el instante UTC guardado al huso fijo UTC+9 de las respuestas.
func FormatTimestamp(t time.Time) string {
	return t.In(displayZone).Format(TimestampLayout)
}
