package conversation

import "pet-care-log/internal/domain/careevents"

// Kind es la decisión del clasificador sobre qué pide el texto.
type Kind int

const (
	KindFallback Kind = iota
	KindDelete
	KindLatest
	KindLatestByType
	KindRecord
	KindStatic
	KindPhatic
	KindHelp
)

func (k Kind) String() string {
	switch k {
	case KindDelete:
		return "delete"
	case KindLatest:
		return "latest"
	case KindLatestByType:
		return "latest_by_type"
	case KindRecord:
		return "record"
	case KindStatic:
		return "static"
	case KindPhatic:
		return "phatic"
	case KindHelp:
		return "help"
	default:
		return "fallback"
	}
}

type Intent struct {
	Kind Kind

	// Action aplica a KindRecord y KindLatestByType.
	Action careevents.ActionType

	// Reply es la plantilla fija de KindStatic/KindPhatic ({name} = sender).
	Reply string

	// Rule es el nombre de la regla que matcheó ("" en fallback).
	Rule string
}

// Outcome es el resultado de ejecutar un Intent contra el store.
type Outcome struct {
	Event   careevents.CareEvent
	Deleted careevents.DeleteOutcome

	// OwnerName es el nombre visible del sender del evento consultado.
	OwnerName string

	Err error
}
