package conversation

import "strings"

// Classifier evalúa una tabla ordenada de reglas; es pura y no hace I/O.
type Classifier struct {
	rules []Rule
}

func NewClassifier(rules []Rule) *Classifier {
	normalized := make([]Rule, 0, len(rules))
	for _, r := range rules {
		kws := make([]string, 0, len(r.Keywords))
		for _, kw := range r.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			kws = append(kws, kw)
		}
		if len(kws) == 0 {
			continue
		}

		it := r.Intent
		it.Rule = r.Name
		normalized = append(normalized, Rule{Name: r.Name, Keywords: kws, Intent: it})
	}
	return &Classifier{rules: normalized}
}

// Classify devuelve el Intent de la primera regla con alguna keyword contenida en el texto.
func (c *Classifier) Classify(text string) Intent {
	folded := strings.ToLower(text)
	for _, r := range c.rules {
		for _, kw := range r.Keywords {
			if strings.Contains(folded, kw) {
				return r.Intent
			}
		}
	}
	return Intent{Kind: KindFallback}
}

// Rules expone la tabla normalizada (para `classify` y tests).
func (c *Classifier) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}
