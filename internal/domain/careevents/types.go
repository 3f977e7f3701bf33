package careevents

// ActionType es el tipo de cuidado registrado. Los valores son los que se persisten en
// pet_logs.action_type, por eso quedan en japonés.
type ActionType string

const (
	ActionFeed     ActionType = "給餌"
	ActionDefecate ActionType = "排便"
	ActionUrinate  ActionType = "排尿"
	ActionWater    ActionType = "水分補給"
)

// Actions devuelve los tipos conocidos en orden estable.
func Actions() []ActionType {
	return []ActionType{ActionFeed, ActionDefecate, ActionUrinate, ActionWater}
}

func (a ActionType) Valid() bool {
	switch a {
	case ActionFeed, ActionDefecate, ActionUrinate, ActionWater:
		return true
	default:
		return false
	}
}

// Phrase es la frase legible usada en respuestas ("X さんが <phrase>").
// Valores históricos fuera del set conocido se devuelven tal cual.
func (a ActionType) Phrase() string {
	switch a {
	case ActionFeed:
		return "ごはんをくれた"
	case ActionDefecate:
		return "うんちを片付けた"
	case ActionUrinate:
		return "おしっこを片付けた"
	case ActionWater:
		return "お水を替えた"
	default:
		return string(a)
	}
}

// Noun se usa en el agradecimiento al registrar.
func (a ActionType) Noun() string {
	switch a {
	case ActionFeed:
		return "ごはん"
	case ActionDefecate:
		return "うんちの片付け"
	case ActionUrinate:
		return "おしっこの片付け"
	case ActionWater:
		return "お水の交換"
	default:
		return string(a)
	}
}

// Slug es el nombre ASCII usado en la API HTTP, métricas y export.
func (a ActionType) Slug() string {
	switch a {
	case ActionFeed:
		return "feed"
	case ActionDefecate:
		return "defecate"
	case ActionUrinate:
		return "urinate"
	case ActionWater:
		return "water"
	default:
		return "unknown"
	}
}

// ParseAction acepta tanto el slug ("feed") como el valor persistido ("給餌").
func ParseAction(s string) (ActionType, bool) {
	for _, a := range Actions() {
		if s == a.Slug() || s == string(a) {
			return a, true
		}
	}
	return "", false
}

// DeleteOutcome es el resultado de DeleteLatestFor.
type DeleteOutcome int

const (
	NotFound DeleteOutcome = iota
	Deleted
)

func (o DeleteOutcome) String() string {
	if o == Deleted {
		return "deleted"
	}
	return "not_found"
}
