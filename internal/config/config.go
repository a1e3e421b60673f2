package config

import (
	"time"

	"github.com/heartmarshall/srs-scheduler/internal/domain"
	"github.com/heartmarshall/srs-scheduler/internal/service/study/fsrs"
)

// Config is the root application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	FSRS     FSRSConfig     `yaml:"fsrs"`
	Study    StudyConfig    `yaml:"study"`
	Reading  ReadingConfig  `yaml:"reading"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// FSRSConfig holds the memory-model parameters. An empty weight list means
// the default weights. cleanenv applies env-default to zero values, so the
// booleans and step lists can only be switched off or cleared through the
// environment (e.g. FSRS_ENABLE_FUZZ=false, FSRS_LEARNING_STEPS="").
type FSRSConfig struct {
	WeightsRaw         string  `yaml:"weights"           env:"FSRS_WEIGHTS"`
	RequestRetention   float64 `yaml:"request_retention" env:"FSRS_REQUEST_RETENTION" env-default:"0.9"`
	MaximumInterval    int     `yaml:"maximum_interval"  env:"FSRS_MAXIMUM_INTERVAL"  env-default:"36500"`
	EnableFuzz         bool    `yaml:"enable_fuzz"       env:"FSRS_ENABLE_FUZZ"       env-default:"true"`
	EnableShortTerm    bool    `yaml:"enable_short_term" env:"FSRS_ENABLE_SHORT_TERM" env-default:"true"`
	LearningStepsRaw   string  `yaml:"learning_steps"    env:"FSRS_LEARNING_STEPS"    env-default:"1m,10m"`
	RelearningStepsRaw string  `yaml:"relearning_steps"  env:"FSRS_RELEARNING_STEPS"  env-default:"10m"`

	// params is built from the raw fields during validation.
	params fsrs.Parameters
}

// StudyConfig holds flashcard study-queue settings.
type StudyConfig struct {
	Timezone          string `yaml:"timezone"            env:"STUDY_TIMEZONE"            env-default:"UTC"`
	NewCardsPerDay    int    `yaml:"new_cards_per_day"   env:"STUDY_NEW_CARDS_DAY"       env-default:"20"`
	QueueLimit        int    `yaml:"queue_limit"         env:"STUDY_QUEUE_LIMIT"         env-default:"50"`
	UndoWindowMinutes int    `yaml:"undo_window_minutes" env:"STUDY_UNDO_WINDOW_MINUTES" env-default:"10"`
}

// ReadingConfig holds incremental-reading queue settings.
type ReadingConfig struct {
	Timezone          string `yaml:"timezone"            env:"READING_TIMEZONE"            env-default:"UTC"`
	TopicQuotaPercent int    `yaml:"topic_quota_percent" env:"READING_TOPIC_QUOTA_PERCENT" env-default:"20"`
	DailyLimit        int    `yaml:"daily_limit"         env:"READING_DAILY_LIMIT"         env-default:"30"`
	EnableAutoDefer   bool   `yaml:"enable_auto_defer"   env:"READING_ENABLE_AUTO_DEFER"   env-default:"true"`
}

// Parameters returns the scheduler parameters built during validation.
func (c FSRSConfig) Parameters() fsrs.Parameters {
	p := c.params
	p.LearningSteps = append([]time.Duration(nil), c.params.LearningSteps...)
	p.RelearningSteps = append([]time.Duration(nil), c.params.RelearningSteps...)
	return p
}

// Domain converts the study settings to the domain type.
func (c StudyConfig) Domain() domain.SRSConfig {
	return domain.SRSConfig{
		Timezone:          c.Timezone,
		NewCardsPerDay:    c.NewCardsPerDay,
		QueueLimit:        c.QueueLimit,
		UndoWindowMinutes: c.UndoWindowMinutes,
	}
}

// Domain converts the reading settings to the domain type.
func (c ReadingConfig) Domain() domain.ReadingConfig {
	return domain.ReadingConfig{
		Timezone:          c.Timezone,
		TopicQuotaPercent: c.TopicQuotaPercent,
		DailyLimit:        c.DailyLimit,
		EnableAutoDefer:   c.EnableAutoDefer,
	}
}
