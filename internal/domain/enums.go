package domain

// CardState represents the FSRS learning state of a card.
type CardState string

const (
	CardStateNew        CardState = "NEW"
	CardStateLearning   CardState = "LEARNING"
	CardStateReview     CardState = "REVIEW"
	CardStateRelearning CardState = "RELEARNING"
)

func (s CardState) String() string { return string(s) }

func (s CardState) IsValid() bool {
	switch s {
	case CardStateNew, CardStateLearning, CardStateReview, CardStateRelearning:
		return true
	}
	return false
}

// ReviewGrade represents the user's self-assessed recall quality.
// MANUAL marks a state change applied from outside the scheduler.
type ReviewGrade string

const (
	ReviewGradeManual ReviewGrade = "MANUAL"
	ReviewGradeAgain  ReviewGrade = "AGAIN"
	ReviewGradeHard   ReviewGrade = "HARD"
	ReviewGradeGood   ReviewGrade = "GOOD"
	ReviewGradeEasy   ReviewGrade = "EASY"
)

func (g ReviewGrade) String() string { return string(g) }

func (g ReviewGrade) IsValid() bool {
	switch g {
	case ReviewGradeManual, ReviewGradeAgain, ReviewGradeHard, ReviewGradeGood, ReviewGradeEasy:
		return true
	}
	return false
}

// IsRecall reports whether g is one of the four recall grades.
func (g ReviewGrade) IsRecall() bool {
	return g.IsValid() && g != ReviewGradeManual
}

// ItemKind distinguishes incremental-reading topics from extracts.
type ItemKind string

const (
	ItemKindTopic   ItemKind = "TOPIC"
	ItemKindExtract ItemKind = "EXTRACT"
)

func (k ItemKind) String() string { return string(k) }

func (k ItemKind) IsValid() bool {
	switch k {
	case ItemKindTopic, ItemKindExtract:
		return true
	}
	return false
}
