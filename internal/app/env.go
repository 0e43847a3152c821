package app

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/blackwell-systems/sentimeter/internal/config"
	"github.com/blackwell-systems/sentimeter/internal/feedback"
	"github.com/blackwell-systems/sentimeter/internal/insight"
	"github.com/blackwell-systems/sentimeter/internal/lexical"
	"github.com/blackwell-systems/sentimeter/internal/logging"
	"github.com/blackwell-systems/sentimeter/internal/output"
	"github.com/blackwell-systems/sentimeter/internal/scoring"
	"github.com/blackwell-systems/sentimeter/internal/store"
)

// env bundles the loaded config with what commands build from it.
type env struct {
	cfg      *config.Config
	log      *zap.Logger
	scoreMap *scoring.ScoreMap
	engine   *feedback.Engine
	db       *store.DB
}

// openEnv loads config and builds the scoring engine. The database is
// opened only when withDB is set.
func openEnv(withDB bool) (*env, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	output.SetNoColor(flagNoColor || !output.ColorEnabled(os.Stdout, cfg.Output.Color))
	output.SetWidth(cfg.Output.Width)

	logOpts := cfg.LoggingOptions()
	if flagVerbose {
		logOpts.Level = "debug"
	}
	log, err := logging.New(logOpts)
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}

	scoreMap, err := cfg.ScoreMap()
	if err != nil {
		return nil, fmt.Errorf("loading score map: %w", err)
	}
	lexicon, err := lexical.DefaultLexicon(cfg.Lexicon.Words)
	if err != nil {
		return nil, fmt.Errorf("loading lexicon: %w", err)
	}

	e := &env{
		cfg:      cfg,
		log:      log,
		scoreMap: scoreMap,
		engine: feedback.NewEngine(
			scoring.NewScorer(scoreMap, insight.NewGenerator()),
			lexical.NewScorer(lexicon),
			feedback.WithLogger(log.Named("engine")),
		),
	}

	if withDB {
		db, err := store.Open(cfg.DBPath)
		if err != nil {
			_ = log.Sync()
			return nil, fmt.Errorf("opening database: %w", err)
		}
		e.db = db
		log.Debug("opened database", zap.String("path", cfg.DBPath))
	}
	return e, nil
}

// Close releases the database and flushes the logger.
func (e *env) Close() {
	if e.db != nil {
		_ = e.db.Close()
	}
	_ = e.log.Sync()
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
