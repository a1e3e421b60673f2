package fsrs

import (
	"errors"
	"testing"
	"time"

	"github.com/heartmarshall/srs-scheduler/internal/domain"
)

func historyInputs(start time.Time) []ReviewInput {
	return []ReviewInput{
		{Rating: Good, Review: start},
		{Rating: Good, Review: start.Add(10 * time.Minute)},
		{Rating: Hard, Review: start.AddDate(0, 0, 3)},
		{Rating: Again, Review: start.AddDate(0, 0, 9)},
		{Rating: Good, Review: start.AddDate(0, 0, 9).Add(10 * time.Minute)},
	}
}

func TestReplay_MatchesSequentialReviews(t *testing.T) {
	f := newTestFSRS(t, PartialParameters{})
	inputs := historyInputs(testNow)

	got, err := f.Replay(NewCard(testNow), inputs)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(inputs) {
		t.Fatalf("got %d items, want %d", len(got), len(inputs))
	}

	card := NewCard(testNow)
	for i, in := range inputs {
		item, err := f.Next(card, in.Review, in.Rating)
		if err != nil {
			t.Fatal(err)
		}
		assertSameCard(t, in.Rating.String(), got[i].Card, item.Card)
		card = item.Card
	}
}

func TestReschedule_SortsAndSkipsManual(t *testing.T) {
	f := newTestFSRS(t, PartialParameters{})
	inputs := historyInputs(testNow)
	shuffled := []ReviewInput{inputs[3], inputs[0], inputs[4], inputs[2], inputs[1]}
	review := domain.CardStateReview
	due := testNow.AddDate(0, 0, 1)
	shuffled = append(shuffled, ReviewInput{Rating: Manual, Review: testNow.AddDate(0, 0, 1), State: &review, Due: &due})

	want, err := f.Replay(NewCard(testNow), inputs)
	if err != nil {
		t.Fatal(err)
	}
	final := want[len(want)-1].Card

	res, err := f.Reschedule(final, shuffled, RescheduleOptions{FirstCard: ptr(NewCard(testNow)), Now: testNow.AddDate(0, 0, 10)})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Collections) != len(inputs) {
		t.Fatalf("collections = %d, want %d", len(res.Collections), len(inputs))
	}
	assertSameCard(t, "final", res.Collections[len(inputs)-1].Card, final)
	if res.RescheduleItem != nil {
		t.Errorf("reschedule item = %+v, want nil when due already matches", res.RescheduleItem)
	}
}

func TestReschedule_ManualItemWhenDueDiffers(t *testing.T) {
	f := newTestFSRS(t, PartialParameters{})
	inputs := historyInputs(testNow)
	replayed, err := f.Replay(NewCard(testNow), inputs)
	if err != nil {
		t.Fatal(err)
	}
	target := replayed[len(replayed)-1].Card

	current := target
	current.Due = target.Due.AddDate(0, 0, 5)
	current.Stability = 99

	now := testNow.AddDate(0, 0, 12)
	res, err := f.Reschedule(current, inputs, RescheduleOptions{Now: now, UpdateMemoryState: true})
	if err != nil {
		t.Fatal(err)
	}
	item := res.RescheduleItem
	if item == nil {
		t.Fatal("expected a reschedule item")
	}
	if item.Log.Rating != Manual {
		t.Errorf("log rating = %s, want Manual", item.Log.Rating)
	}
	if !item.Card.Due.Equal(target.Due) {
		t.Errorf("due = %s, want %s", item.Card.Due, target.Due)
	}
	if item.Card.Stability != target.Stability || item.Card.Difficulty != target.Difficulty {
		t.Errorf("memory state = %v/%v, want %v/%v",
			item.Card.Stability, item.Card.Difficulty, target.Stability, target.Difficulty)
	}
	if item.Card.Reps != current.Reps+1 {
		t.Errorf("reps = %d, want %d", item.Card.Reps, current.Reps+1)
	}
	if item.Log.ScheduledDays != 0 {
		t.Errorf("log scheduled days = %d, want 0 when moved earlier", item.Log.ScheduledDays)
	}

	keep, err := f.Reschedule(current, inputs, RescheduleOptions{Now: now})
	if err != nil {
		t.Fatal(err)
	}
	if keep.RescheduleItem.Card.Stability != 99 {
		t.Errorf("stability = %v, want current 99 kept", keep.RescheduleItem.Card.Stability)
	}
}

func TestReschedule_EmptyHistory(t *testing.T) {
	f := newTestFSRS(t, PartialParameters{})
	res, err := f.Reschedule(NewCard(testNow), nil, RescheduleOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Collections) != 0 || res.RescheduleItem != nil {
		t.Errorf("result = %+v, want empty", res)
	}
}

func TestReplay_Manual(t *testing.T) {
	f := newTestFSRS(t, PartialParameters{})
	review := domain.CardStateReview
	fresh := domain.CardStateNew
	due := testNow.AddDate(0, 0, 4)
	s, d := 6.0, 4.0

	items, err := f.Replay(NewCard(testNow), []ReviewInput{
		{Rating: Manual, Review: testNow, State: &review, Due: &due, Stability: &s, Difficulty: &d},
		{Rating: Good, Review: testNow.AddDate(0, 0, 4)},
		{Rating: Manual, Review: testNow.AddDate(0, 0, 20), State: &fresh},
	})
	if err != nil {
		t.Fatal(err)
	}

	set := items[0].Card
	if set.State != domain.CardStateReview || set.ScheduledDays != 4 || set.Stability != 6 || set.Reps != 1 {
		t.Errorf("manual set = %+v", set)
	}
	if items[1].Card.State != domain.CardStateReview || items[1].Log.ElapsedDays != 4 {
		t.Errorf("review after manual = %+v", items[1])
	}
	reset := items[2].Card
	if reset.State != domain.CardStateNew || reset.Stability != 0 || reset.Reps != 0 {
		t.Errorf("manual reset = %+v", reset)
	}
	if reset.LastReview == nil || !reset.LastReview.Equal(testNow.AddDate(0, 0, 20)) {
		t.Errorf("manual reset last review = %v", reset.LastReview)
	}
}

func TestReplay_ManualMissingFields(t *testing.T) {
	f := newTestFSRS(t, PartialParameters{})
	review := domain.CardStateReview

	tests := []struct {
		name string
		in   ReviewInput
	}{
		{"missing state", ReviewInput{Rating: Manual, Review: testNow}},
		{"missing due", ReviewInput{Rating: Manual, Review: testNow, State: &review}},
		{"missing memory state", ReviewInput{Rating: Manual, Review: testNow, State: &review, Due: ptr(testNow.AddDate(0, 0, 5))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.Replay(NewCard(testNow), []ReviewInput{tt.in})
			if !errors.Is(err, domain.ErrMissingRequiredField) {
				t.Errorf("err = %v, want ErrMissingRequiredField", err)
			}
		})
	}
}

func TestReplay_ManualWithoutMemoryStateStopsReplay(t *testing.T) {
	f := newTestFSRS(t, PartialParameters{})
	review := domain.CardStateReview
	due := testNow.AddDate(0, 0, 5)

	_, err := f.Replay(NewCard(testNow), []ReviewInput{
		{Rating: Manual, Review: testNow, State: &review, Due: &due},
		{Rating: Good, Review: due},
	})
	if !errors.Is(err, domain.ErrMissingRequiredField) {
		t.Errorf("err = %v, want ErrMissingRequiredField", err)
	}
}

func TestReplay_ManualKeepsExistingMemoryState(t *testing.T) {
	f := newTestFSRS(t, PartialParameters{})
	review := domain.CardStateReview
	due := testNow.AddDate(0, 0, 5)

	items, err := f.Replay(reviewCard(10, 5, testNow.AddDate(0, 0, -1)), []ReviewInput{
		{Rating: Manual, Review: testNow, State: &review, Due: &due},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := items[0].Card; got.Stability != 10 || got.Difficulty != 5 {
		t.Errorf("memory state = %v/%v, want 10/5", got.Stability, got.Difficulty)
	}
}

func TestReschedule_OverdueCardKeepsNonNegativeScheduledDays(t *testing.T) {
	f := newTestFSRS(t, PartialParameters{RequestRetention: ptr(0.8)})
	inputs := []ReviewInput{
		{Rating: Good, Review: testNow},
		{Rating: Good, Review: testNow.Add(10 * time.Minute)},
		{Rating: Good, Review: testNow.AddDate(0, 0, 3)},
	}
	replayed, err := f.Replay(NewCard(testNow), inputs)
	if err != nil {
		t.Fatal(err)
	}
	current := replayed[len(replayed)-1].Card
	current.Due = current.Due.AddDate(0, 0, 2)

	now := testNow.AddDate(0, 3, 0)
	res, err := f.Reschedule(current, inputs, RescheduleOptions{Now: now})
	if err != nil {
		t.Fatal(err)
	}
	item := res.RescheduleItem
	if item == nil {
		t.Fatal("expected a reschedule item")
	}
	if !item.Card.Due.Before(now) {
		t.Fatalf("due = %s, want before %s", item.Card.Due, now)
	}
	if item.Card.ScheduledDays != 0 || item.Log.ScheduledDays != 0 {
		t.Errorf("scheduled days card=%d log=%d, want 0/0", item.Card.ScheduledDays, item.Log.ScheduledDays)
	}
}

func TestReschedule_NewCardTakesReplayedMemoryState(t *testing.T) {
	f := newTestFSRS(t, PartialParameters{})
	inputs := historyInputs(testNow)
	replayed, err := f.Replay(NewCard(testNow), inputs)
	if err != nil {
		t.Fatal(err)
	}
	target := replayed[len(replayed)-1].Card

	res, err := f.Reschedule(NewCard(testNow), inputs, RescheduleOptions{
		FirstCard: ptr(NewCard(testNow)),
		Now:       testNow.AddDate(0, 0, 12),
	})
	if err != nil {
		t.Fatal(err)
	}
	got := res.RescheduleItem.Card
	if got.Stability != target.Stability || got.Difficulty != target.Difficulty {
		t.Errorf("memory state = %v/%v, want %v/%v", got.Stability, got.Difficulty, target.Stability, target.Difficulty)
	}
}

func ptr[T any](v T) *T { return &v }
