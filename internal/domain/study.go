package domain

// SRSConfig holds the study-queue settings (pure domain type). Memory-model
// parameters live with the scheduler.
type SRSConfig struct {
	Timezone          string
	NewCardsPerDay    int
	QueueLimit        int
	UndoWindowMinutes int // 0 disables the window
}

// ReadingConfig holds incremental-reading queue defaults.
type ReadingConfig struct {
	Timezone          string
	TopicQuotaPercent int
	DailyLimit        int
	EnableAutoDefer   bool
}
