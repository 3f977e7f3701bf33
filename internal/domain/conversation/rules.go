package conversation

import "pet-care-log/internal/domain/careevents"

// Rule asocia un set de keywords (substring) a un Intent.
type Rule struct {
	Name     string
	Keywords []string
	Intent   Intent
}

// DefaultRules es la tabla ordenada: gana la primera regla que matchea.
// El orden importa porque las keywords se solapan ("ごはん削除して" es un delete).
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:     "delete",
			Keywords: []string{"削除", "消して", "取り消し", "やり直し", "間違えた", "まちがえた"},
			Intent:   Intent{Kind: KindDelete},
		},
		{
			Name:     "latest",
			Keywords: []string{"誰が", "だれが", "お世話", "最新"},
			Intent:   Intent{Kind: KindLatest},
		},

		{
			Name:     "latest_feed",
			Keywords: []string{"もらった？", "もらった?", "もらえた？", "もらえた?", "食べた？", "食べた?", "たべた？", "たべた?"},
			Intent:   Intent{Kind: KindLatestByType, Action: careevents.ActionFeed},
		},
		{
			Name:     "latest_defecate",
			Keywords: []string{"うんちした？", "うんちした?", "排便した？", "排便した?"},
			Intent:   Intent{Kind: KindLatestByType, Action: careevents.ActionDefecate},
		},
		{
			Name:     "latest_urinate",
			Keywords: []string{"おしっこした？", "おしっこした?", "排尿した？", "排尿した?"},
			Intent:   Intent{Kind: KindLatestByType, Action: careevents.ActionUrinate},
		},
		{
			Name:     "latest_water",
			Keywords: []string{"水飲んだ？", "水飲んだ?", "お水は？", "お水は?", "水かえた？", "水かえた?"},
			Intent:   Intent{Kind: KindLatestByType, Action: careevents.ActionWater},
		},

		{
			Name:     "record_feed",
			Keywords: []string{"ごはん", "ご飯", "エサ", "えさ", "餌"},
			Intent:   Intent{Kind: KindRecord, Action: careevents.ActionFeed},
		},
		{
			Name:     "record_defecate",
			Keywords: []string{"うんち", "うんこ", "排便"},
			Intent:   Intent{Kind: KindRecord, Action: careevents.ActionDefecate},
		},
		{
			Name:     "record_urinate",
			Keywords: []string{"おしっこ", "排尿"},
			Intent:   Intent{Kind: KindRecord, Action: careevents.ActionUrinate},
		},
		{
			// "トイレ" sin más detalle cuenta como limpieza de うんち; si nombra おしっこ gana la regla anterior.
			Name:     "record_toilet",
			Keywords: []string{"トイレ"},
			Intent:   Intent{Kind: KindRecord, Action: careevents.ActionDefecate},
		},
		{
			Name:     "record_water",
			Keywords: []string{"お水", "水分", "水替え", "水かえ"},
			Intent:   Intent{Kind: KindRecord, Action: careevents.ActionWater},
		},

		{
			Name:     "static_name",
			Keywords: []string{"名前", "なまえ"},
			Intent:   Intent{Kind: KindStatic, Reply: "ぼくはこの家のねこだにゃ。{name}さんのことはちゃんと覚えてるにゃ"},
		},
		{
			Name:     "static_cute",
			Keywords: []string{"かわいい", "可愛い", "かわいすぎ"},
			Intent:   Intent{Kind: KindStatic, Reply: "知ってるにゃ😼"},
		},
		{
			Name:     "static_love",
			Keywords: []string{"好き", "すき", "大好き"},
			Intent:   Intent{Kind: KindStatic, Reply: "ぼくも{name}さんが大好きだにゃ"},
		},
		{
			Name:     "static_bath",
			Keywords: []string{"お風呂", "おふろ", "シャンプー"},
			Intent:   Intent{Kind: KindStatic, Reply: "お風呂はいやだにゃ…"},
		},

		{
			Name:     "phatic",
			Keywords: []string{"ありがとう", "おはよう", "こんにちは", "こんばんは", "おやすみ", "ただいま", "にゃー", "にゃん"},
			Intent:   Intent{Kind: KindPhatic, Reply: "にゃーん🐾 {name}さん、いつもありがとうにゃ"},
		},

		{
			Name:     "help",
			Keywords: []string{"help", "ヘルプ", "使い方", "つかいかた"},
			Intent:   Intent{Kind: KindHelp},
		},
	}
}
