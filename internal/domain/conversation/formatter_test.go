package conversation

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"pet-care-log/internal/domain/careevents"
)

func TestFormat_Record(t *testing.T) {
	it := Intent{Kind: KindRecord, Action: careevents.ActionFeed}

	got := Format(it, Outcome{}, "Aki")
	assert.Contains(t, got, "メモした")
	assert.Contains(t, got, "Aki")

	got = Format(it, Outcome{}, "")
	assert.Contains(t, got, PlaceholderName)
}

func TestFormat_FailuresAreDistinct(t *testing.T) {
	it := Intent{Kind: KindRecord, Action: careevents.ActionFeed}

	unavailable := Format(it, Outcome{Err: careevents.ErrUnavailable}, "Aki")
	failed := Format(it, Outcome{Err: fmt.Errorf("%w: boom", careevents.ErrWriteFailed)}, "Aki")

	assert.Equal(t, UnavailableReply, unavailable)
	assert.NotEqual(t, unavailable, failed)
	assert.NotContains(t, failed, "boom")
}

func TestFormat_Latest(t *testing.T) {
	ts := time.Date(2026, 10, 15, 23, 5, 0, 0, time.UTC)
	ev := careevents.CareEvent{ID: 1, Timestamp: ts, SenderID: "U2", Action: careevents.ActionWater}

	got := Format(Intent{Kind: KindLatest}, Outcome{Event: ev, OwnerName: "Mina"}, "Aki")
	assert.Equal(t, "最新のお世話は、2026/10/16 08時05分にMinaさんがお水を替えたにゃ", got)

	assert.Equal(t, NoOneRecordedReply,
		Format(Intent{Kind: KindLatest}, Outcome{Err: careevents.ErrNotFound}, "Aki"))

	assert.Equal(t, UnavailableReply,
		Format(Intent{Kind: KindLatest}, Outcome{Err: careevents.ErrUnavailable}, "Aki"))
}

func TestFormat_LatestByType(t *testing.T) {
	it := Intent{Kind: KindLatestByType, Action: careevents.ActionDefecate}
	ev := careevents.CareEvent{Timestamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Action: careevents.ActionDefecate}

	assert.Equal(t, "最後は2026/01/01 09時00分にだれかさんがうんちを片付けたにゃ", Format(it, Outcome{Event: ev}, "Aki"))
	assert.Equal(t, "まだうんちの片付けの記録はないにゃ", Format(it, Outcome{Err: careevents.ErrNotFound}, "Aki"))
}

func TestFormat_Delete(t *testing.T) {
	it := Intent{Kind: KindDelete}

	assert.Contains(t, Format(it, Outcome{Deleted: careevents.Deleted}, "Aki"), "取り消した")
	assert.Contains(t, Format(it, Outcome{Deleted: careevents.NotFound}, "Aki"), "見つからなかった")
	assert.Equal(t, UnavailableReply, Format(it, Outcome{Err: careevents.ErrUnavailable}, "Aki"))
	assert.NotEqual(t, UnavailableReply, Format(it, Outcome{Err: errors.New("x")}, "Aki"))
}

func TestFormat_StaticInterpolatesName(t *testing.T) {
	it := Intent{Kind: KindStatic, Reply: "ぼくも{name}さんが大好きだにゃ"}
	assert.Equal(t, "ぼくもAkiさんが大好きだにゃ", Format(it, Outcome{}, "Aki"))
	assert.Equal(t, HelpReply, Format(Intent{Kind: KindHelp}, Outcome{}, "Aki"))
}
