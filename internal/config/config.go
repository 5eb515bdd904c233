package config

import "time"

// Config is the root application configuration.
type Config struct {
	Sources  SourcesConfig  `yaml:"sources"`
	Enrich   EnrichConfig   `yaml:"enrich"`
	Output   OutputConfig   `yaml:"output"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
}

// SourcesConfig holds the paths of the input datasets. The dictionary, kanji
// database and word list are required; the sentence corpus and pitch file
// are optional and disable their feature when empty.
type SourcesConfig struct {
	JMdictPath   string `yaml:"jmdict_path"   env:"SOURCE_JMDICT_PATH"`
	KanjidicPath string `yaml:"kanjidic_path" env:"SOURCE_KANJIDIC_PATH"`
	WordListPath string `yaml:"word_list_path" env:"SOURCE_WORD_LIST_PATH"`
	TatoebaPath  string `yaml:"tatoeba_path"  env:"SOURCE_TATOEBA_PATH"`
	PitchPath    string `yaml:"pitch_path"    env:"SOURCE_PITCH_PATH"`
}

// EnrichConfig holds derivation settings.
type EnrichConfig struct {
	Workers   int    `yaml:"workers"    env:"ENRICH_WORKERS"    env-default:"8"`
	BatchSize int    `yaml:"batch_size" env:"ENRICH_BATCH_SIZE" env-default:"500"`
	Matcher   string `yaml:"matcher"    env:"ENRICH_MATCHER"    env-default:"substring"`
	DryRun    bool   `yaml:"dry_run"    env:"ENRICH_DRY_RUN"    env-default:"false"`
}

// OutputConfig selects where records are written.
type OutputConfig struct {
	Kind      string `yaml:"kind"      env:"OUTPUT_KIND"      env-default:"json"`
	Dir       string `yaml:"dir"       env:"OUTPUT_DIR"       env-default:"./enrich-output"`
	Overwrite bool   `yaml:"overwrite" env:"OUTPUT_OVERWRITE" env-default:"false"`
}

// DatabaseConfig holds PostgreSQL connection settings. DSN is only required
// for postgres output.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	Migrate         bool          `yaml:"migrate"            env:"DATABASE_MIGRATE"            env-default:"true"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// Output kinds.
const (
	OutputJSON     = "json"
	OutputPostgres = "postgres"
)

// Example matchers.
const (
	MatcherSubstring = "substring"
	MatcherLemma     = "lemma"
)
