package study

import (
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/srs-scheduler/internal/domain"
	"github.com/heartmarshall/srs-scheduler/internal/service/study/fsrs"
)

// cardToFSRS converts a domain Card to an fsrs.Card for scheduling calculations.
func cardToFSRS(card *domain.Card) fsrs.Card {
	return fsrs.Card{
		State:         card.State,
		Due:           card.Due,
		Stability:     card.Stability,
		Difficulty:    card.Difficulty,
		ElapsedDays:   card.ElapsedDays,
		ScheduledDays: card.ScheduledDays,
		Reps:          card.Reps,
		Lapses:        card.Lapses,
		LearningSteps: card.LearningSteps,
		LastReview:    copyTime(card.LastReview),
	}
}

// applyFSRS returns a copy of card with the scheduling fields of result.
func applyFSRS(card *domain.Card, result fsrs.Card) *domain.Card {
	out := *card
	out.State = result.State
	out.Due = result.Due
	out.Stability = result.Stability
	out.Difficulty = result.Difficulty
	out.ElapsedDays = result.ElapsedDays
	out.ScheduledDays = result.ScheduledDays
	out.Reps = result.Reps
	out.Lapses = result.Lapses
	out.LearningSteps = result.LearningSteps
	out.LastReview = copyTime(result.LastReview)
	return &out
}

func logFromFSRS(cardID uuid.UUID, l fsrs.ReviewLog) *domain.ReviewLog {
	return &domain.ReviewLog{
		ID:              uuid.New(),
		CardID:          cardID,
		Grade:           ratingToGrade(l.Rating),
		State:           l.State,
		Due:             l.Due,
		LastReview:      copyTime(l.LastReview),
		Stability:       l.Stability,
		Difficulty:      l.Difficulty,
		ElapsedDays:     l.ElapsedDays,
		LastElapsedDays: l.LastElapsedDays,
		ScheduledDays:   l.ScheduledDays,
		LearningSteps:   l.LearningSteps,
		ReviewedAt:      l.Review,
	}
}

func logToFSRS(l *domain.ReviewLog) fsrs.ReviewLog {
	return fsrs.ReviewLog{
		Rating:          gradeToRating(l.Grade),
		State:           l.State,
		Due:             l.Due,
		LastReview:      copyTime(l.LastReview),
		Stability:       l.Stability,
		Difficulty:      l.Difficulty,
		ElapsedDays:     l.ElapsedDays,
		LastElapsedDays: l.LastElapsedDays,
		ScheduledDays:   l.ScheduledDays,
		LearningSteps:   l.LearningSteps,
		Review:          l.ReviewedAt,
	}
}

// gradeToRating maps domain ReviewGrade to FSRS Rating. Unknown grades map
// to an out-of-range rating so the scheduler rejects them.
func gradeToRating(grade domain.ReviewGrade) fsrs.Rating {
	switch grade {
	case domain.ReviewGradeManual:
		return fsrs.Manual
	case domain.ReviewGradeAgain:
		return fsrs.Again
	case domain.ReviewGradeHard:
		return fsrs.Hard
	case domain.ReviewGradeGood:
		return fsrs.Good
	case domain.ReviewGradeEasy:
		return fsrs.Easy
	default:
		return fsrs.Rating(-1)
	}
}

func ratingToGrade(r fsrs.Rating) domain.ReviewGrade {
	switch r {
	case fsrs.Again:
		return domain.ReviewGradeAgain
	case fsrs.Hard:
		return domain.ReviewGradeHard
	case fsrs.Good:
		return domain.ReviewGradeGood
	case fsrs.Easy:
		return domain.ReviewGradeEasy
	default:
		return domain.ReviewGradeManual
	}
}

// historyToInputs converts persisted review logs into replay inputs.
func historyToInputs(logs []*domain.ReviewLog) []fsrs.ReviewInput {
	out := make([]fsrs.ReviewInput, 0, len(logs))
	for _, l := range logs {
		out = append(out, fsrs.ReviewInput{
			Rating: gradeToRating(l.Grade),
			Review: l.ReviewedAt,
		})
	}
	return out
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
