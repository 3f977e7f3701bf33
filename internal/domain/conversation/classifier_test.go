package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pet-care-log/internal/domain/careevents"
)

func TestClassify_RuleTable(t *testing.T) {
	c := NewClassifier(DefaultRules())

	cases := []struct {
		text   string
		kind   Kind
		action careevents.ActionType
	}{
		{"ごはん", KindRecord, careevents.ActionFeed},
		{"エサあげたよ", KindRecord, careevents.ActionFeed},
		{"うんち片付けた", KindRecord, careevents.ActionDefecate},
		{"おしっこ", KindRecord, careevents.ActionUrinate},
		{"トイレ", KindRecord, careevents.ActionDefecate},
		{"トイレ掃除した", KindRecord, careevents.ActionDefecate},
		{"トイレのおしっこ片付けた", KindRecord, careevents.ActionUrinate},
		{"お水かえたよ", KindRecord, careevents.ActionWater},
		{"ごはん食べた？", KindLatestByType, careevents.ActionFeed},
		{"うんちした?", KindLatestByType, careevents.ActionDefecate},
		{"おしっこした？", KindLatestByType, careevents.ActionUrinate},
		{"水飲んだ？", KindLatestByType, careevents.ActionWater},
		{"最新", KindLatest, ""},
		{"今日だれがお世話した？", KindLatest, ""},
		{"間違えた", KindDelete, ""},
		{"かわいいね", KindStatic, ""},
		{"おはよう", KindPhatic, ""},
		{"HELP", KindHelp, ""},
		{"使い方おしえて", KindHelp, ""},
	}

	for _, tc := range cases {
		it := c.Classify(tc.text)
		assert.Equal(t, tc.kind, it.Kind, tc.text)
		assert.Equal(t, tc.action, it.Action, tc.text)
	}
}

func TestClassify_DeleteBeatsRecord(t *testing.T) {
	c := NewClassifier(DefaultRules())

	it := c.Classify("ごはん削除して")
	assert.Equal(t, KindDelete, it.Kind)
	assert.Equal(t, "delete", it.Rule)
}

func TestClassify_QueryBeatsRecord(t *testing.T) {
	c := NewClassifier(DefaultRules())

	// "お世話" (latest) gana aunque también aparezca "ごはん".
	assert.Equal(t, KindLatest, c.Classify("ごはんのお世話は誰？").Kind)
	// "うんちした？" (query) gana sobre "うんち" (record).
	assert.Equal(t, KindLatestByType, c.Classify("うんちした？").Kind)
}

func TestClassify_Fallback(t *testing.T) {
	c := NewClassifier(DefaultRules())

	it := c.Classify("今日はいい天気")
	assert.Equal(t, KindFallback, it.Kind)
	assert.Equal(t, FallbackReply, Format(it, Outcome{}, "Aki"))
}

func TestClassify_OrderIsTableOrderNotPosition(t *testing.T) {
	c := NewClassifier([]Rule{
		{Name: "first", Keywords: []string{"zz"}, Intent: Intent{Kind: KindHelp}},
		{Name: "second", Keywords: []string{"a"}, Intent: Intent{Kind: KindPhatic}},
	})

	// "a" aparece antes en el texto, pero la regla "first" tiene prioridad.
	it := c.Classify("a zz")
	assert.Equal(t, "first", it.Rule)
}

func TestNewClassifier_DropsEmptyKeywords(t *testing.T) {
	c := NewClassifier([]Rule{
		{Name: "empty", Keywords: []string{"", "  "}, Intent: Intent{Kind: KindHelp}},
		{Name: "upper", Keywords: []string{"PING"}, Intent: Intent{Kind: KindPhatic}},
	})

	rules := c.Rules()
	assert.Len(t, rules, 1)
	assert.Equal(t, []string{"ping"}, rules[0].Keywords)
	assert.Equal(t, KindPhatic, c.Classify("Ping!").Kind)
	assert.Equal(t, KindFallback, c.Classify("").Kind)
}
