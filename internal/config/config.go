package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/blackwell-systems/sentimeter/internal/logging"
	"github.com/blackwell-systems/sentimeter/internal/scoring"
)

// Config is the top-level sentimeter configuration.
type Config struct {
	DBPath    string    `mapstructure:"db_path"`
	Log       Log       `mapstructure:"log"`
	Scoring   Scoring   `mapstructure:"scoring"`
	Lexicon   Lexicon   `mapstructure:"lexicon"`
	Analytics Analytics `mapstructure:"analytics"`
	Output    Output    `mapstructure:"output"`
}

// Log defines logger settings.
type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// Scoring defines the active score map.
type Scoring struct {
	Version   string           `mapstructure:"version"`
	Questions []QuestionConfig `mapstructure:"questions"`
}

// QuestionConfig is one weighted question. Answers are a list because viper
// lowercases map keys and answer labels are case sensitive.
type QuestionConfig struct {
	Key     string         `mapstructure:"key"`
	Weight  float64        `mapstructure:"weight"`
	Answers []AnswerConfig `mapstructure:"answers"`
}

// AnswerConfig maps one answer label to its raw score.
type AnswerConfig struct {
	Answer string  `mapstructure:"answer"`
	Score  float64 `mapstructure:"score"`
}

// Lexicon holds extra word scores merged over the built-in lexicon.
type Lexicon struct {
	Words map[string]int `mapstructure:"words"`
}

// Analytics defines aggregation settings.
type Analytics struct {
	Workers int `mapstructure:"workers"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`

	// Width is the line budget for tables and score bars; under 40 means
	// no limit.
	Width int `mapstructure:"width"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied. A .env file in the
// working directory is loaded first, then SENTIMETER_* variables override
// file values.
func Load(cfgFile string) (*Config, error) {
	// Missing .env is fine.
	_ = godotenv.Load()

	v := viper.New()

	// Set defaults.
	v.SetDefault("db_path", filepath.Join(DefaultConfigDir, DefaultDBName))
	v.SetDefault("log.level", DefaultLog.Level)
	v.SetDefault("log.format", DefaultLog.Format)
	v.SetDefault("log.output", DefaultLog.Output)
	v.SetDefault("scoring.version", scoring.DefaultVersion)
	v.SetDefault("scoring.questions", defaultQuestionsSetting())
	v.SetDefault("lexicon.words", map[string]int{})
	v.SetDefault("analytics.workers", DefaultAnalytics.Workers)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.AddConfigPath(expandPath(DefaultConfigDir))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	cfg.DBPath = expandPath(cfg.DBPath)
	if cfg.Log.Output != "stderr" && cfg.Log.Output != "stdout" {
		cfg.Log.Output = expandPath(cfg.Log.Output)
	}
	if cfg.Analytics.Workers < 1 {
		cfg.Analytics.Workers = 1
	}

	return &cfg, nil
}

// ScoreMap builds the configured score map.
func (c *Config) ScoreMap() (*scoring.ScoreMap, error) {
	qs := make([]scoring.Question, 0, len(c.Scoring.Questions))
	for _, qc := range c.Scoring.Questions {
		q := scoring.Question{Key: qc.Key, Weight: qc.Weight, Answers: make(map[string]float64, len(qc.Answers))}
		for _, a := range qc.Answers {
			q.Answers[a.Answer] = a.Score
		}
		qs = append(qs, q)
	}
	return scoring.NewScoreMap(c.Scoring.Version, qs)
}

// LoggingOptions returns the logger settings in the form logging.New takes.
func (c *Config) LoggingOptions() logging.Options {
	return logging.Options{Level: c.Log.Level, Format: c.Log.Format, Output: c.Log.Output}
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
