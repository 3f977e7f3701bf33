package conversation

import (
	"errors"
	"strings"

	"pet-care-log/internal/domain/careevents"
)

// PlaceholderName se usa cuando el perfil del sender no se pudo resolver.
const PlaceholderName = "だれか"

const (
	FallbackReply      = "よくわからないにゃ。「ごはん」「うんち」「おしっこ」「お水」とかならわかるにゃ"
	NoOneRecordedReply = "まだ誰もお世話を記録してないにゃ"
	UnavailableReply   = "技術的な問題でメモできなかったにゃ。設定を確認してほしいにゃ"

	recordFailedReply = "ごめんにゃ、メモに失敗しちゃったにゃ。もう一回送ってほしいにゃ"
	deleteFailedReply = "ごめんにゃ、取り消しに失敗しちゃったにゃ。もう一回送ってほしいにゃ"
	queryFailedReply  = "ごめんにゃ、記録を確認できなかったにゃ。あとでもう一回聞いてほしいにゃ"
)

const HelpReply = "使い方だにゃ🐾\n" +
	"・記録: 「ごはん」「うんち」「おしっこ」「お水」\n" +
	"・確認: 「最新」「誰がお世話した？」「ごはん食べた？」「うんちした？」「おしっこした？」「水飲んだ？」\n" +
	"・取り消し: 「削除」「間違えた」"

// Format arma el texto de respuesta para (intent, outcome, nombre del sender). Es pura.
func Format(it Intent, out Outcome, senderName string) string {
	senderName = nameOrPlaceholder(senderName)

	switch it.Kind {
	case KindRecord:
		if out.Err != nil {
			return failureReply(out.Err, recordFailedReply)
		}
		return senderName + "さん、" + it.Action.Noun() + "ありがとう！メモしたにゃ"

	case KindDelete:
		if out.Err != nil {
			return failureReply(out.Err, deleteFailedReply)
		}
		if out.Deleted == careevents.Deleted {
			return senderName + "さんの最新の記録を取り消したにゃ"
		}
		return senderName + "さんの記録は見つからなかったにゃ"

	case KindLatest:
		if errors.Is(out.Err, careevents.ErrNotFound) {
			return NoOneRecordedReply
		}
		if out.Err != nil {
			return failureReply(out.Err, queryFailedReply)
		}
		return "最新のお世話は、" + careevents.FormatTimestamp(out.Event.Timestamp) + "に" +
			nameOrPlaceholder(out.OwnerName) + "さんが" + out.Event.Action.Phrase() + "にゃ"

	case KindLatestByType:
		if errors.Is(out.Err, careevents.ErrNotFound) {
			return "まだ" + it.Action.Noun() + "の記録はないにゃ"
		}
		if out.Err != nil {
			return failureReply(out.Err, queryFailedReply)
		}
		return "最後は" + careevents.FormatTimestamp(out.Event.Timestamp) + "に" +
			nameOrPlaceholder(out.OwnerName) + "さんが" + out.Event.Action.Phrase() + "にゃ"

	case KindStatic, KindPhatic:
		return strings.ReplaceAll(it.Reply, "{name}", senderName)

	case KindHelp:
		return HelpReply

	default:
		return FallbackReply
	}
}

// failureReply separa "sin conexión" (problema de configuración) de cualquier otra falla.
func failureReply(err error, generic string) string {
	if errors.Is(err, careevents.ErrUnavailable) {
		return UnavailableReply
	}
	return generic
}

func nameOrPlaceholder(name string) string {
	if name = strings.TrimSpace(name); name == "" {
		return PlaceholderName
	}
	return name
}
