package config

import (
	"fmt"
	"time"

	"github.com/heartmarshall/srs-scheduler/internal/service/study/fsrs"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Log.validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if err := c.FSRS.validate(); err != nil {
		return fmt.Errorf("fsrs: %w", err)
	}
	if err := c.Study.validate(); err != nil {
		return fmt.Errorf("study: %w", err)
	}
	if err := c.Reading.validate(); err != nil {
		return fmt.Errorf("reading: %w", err)
	}
	return nil
}

func (l *LogConfig) validate() error {
	switch l.Format {
	case "json", "text":
	default:
		return fmt.Errorf("format must be json or text (got %q)", l.Format)
	}
	return nil
}

func (f *FSRSConfig) validate() error {
	weights, err := fsrs.ParseWeights(f.WeightsRaw)
	if err != nil {
		return fmt.Errorf("weights: %w", err)
	}

	learning, err := fsrs.ParseSteps(f.LearningStepsRaw)
	if err != nil {
		return fmt.Errorf("learning_steps: %w", err)
	}
	relearning, err := fsrs.ParseSteps(f.RelearningStepsRaw)
	if err != nil {
		return fmt.Errorf("relearning_steps: %w", err)
	}

	params, err := fsrs.GenerateParameters(fsrs.PartialParameters{
		W:                weights,
		RequestRetention: &f.RequestRetention,
		MaximumInterval:  &f.MaximumInterval,
		EnableFuzz:       &f.EnableFuzz,
		EnableShortTerm:  &f.EnableShortTerm,
		LearningSteps:    learning,
		RelearningSteps:  relearning,
	})
	if err != nil {
		return err
	}
	f.params = params

	return nil
}

func (s *StudyConfig) validate() error {
	if _, err := time.LoadLocation(s.Timezone); err != nil {
		return fmt.Errorf("timezone %q: %w", s.Timezone, err)
	}
	if s.NewCardsPerDay < 0 {
		return fmt.Errorf("new_cards_per_day must be >= 0 (got %d)", s.NewCardsPerDay)
	}
	if s.QueueLimit < 1 || s.QueueLimit > 200 {
		return fmt.Errorf("queue_limit must be between 1 and 200 (got %d)", s.QueueLimit)
	}
	if s.UndoWindowMinutes < 0 {
		return fmt.Errorf("undo_window_minutes must be >= 0 (got %d)", s.UndoWindowMinutes)
	}
	return nil
}

func (r *ReadingConfig) validate() error {
	if _, err := time.LoadLocation(r.Timezone); err != nil {
		return fmt.Errorf("timezone %q: %w", r.Timezone, err)
	}
	if r.TopicQuotaPercent < 0 || r.TopicQuotaPercent > 100 {
		return fmt.Errorf("topic_quota_percent must be between 0 and 100 (got %d)", r.TopicQuotaPercent)
	}
	if r.DailyLimit < 0 {
		return fmt.Errorf("daily_limit must be >= 0 (got %d)", r.DailyLimit)
	}
	return nil
}
