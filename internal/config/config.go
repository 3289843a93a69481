package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MThorpester/covid-us-etl/internal/logging"
)

// Config is the full pipeline configuration.
type Config struct {
	Source   SourceConfig   `yaml:"source"`
	Inputs   InputsConfig   `yaml:"inputs"`
	Backup   BackupConfig   `yaml:"backup"`
	Database DatabaseConfig `yaml:"database"`
	Logging  logging.Config `yaml:"logging"`
}

// SourceConfig locates the input CSV files.
type SourceConfig struct {
	Mode     string `yaml:"mode"` // "local" | "gcs" | "s3"
	Dir      string `yaml:"dir"`
	Bucket   string `yaml:"bucket"`
	Prefix   string `yaml:"prefix"`
	Endpoint string `yaml:"endpoint"` // custom endpoint for B2/MinIO/R2
	Region   string `yaml:"region"`
}

// InputsConfig names the six input files within the source.
// Compressed variants (.csv.gz, .csv.zst) are accepted.
type InputsConfig struct {
	PeopleFullyVaccinated           string `yaml:"people_fully_vaccinated"`
	PeopleFullyVaccinatedPerHundred string `yaml:"people_fully_vaccinated_per_hundred"`
	DailyVaccinations               string `yaml:"daily_vaccinations"`
	DailyVaccinationsPerMillion     string `yaml:"daily_vaccinations_per_million"`
	CaseDeaths                      string `yaml:"case_deaths"`
	CrossRef                        string `yaml:"cross_ref"`
}

// BackupConfig configures where cleaned-table backups are written.
type BackupConfig struct {
	Backend  string `yaml:"backend"` // "local" | "gcs" | "s3"
	Dir      string `yaml:"dir"`
	Bucket   string `yaml:"bucket"`
	Prefix   string `yaml:"prefix"`
	Endpoint string `yaml:"endpoint"`
	Region   string `yaml:"region"`

	// Parquet enables parquet snapshots alongside the CSV backups.
	Parquet     bool   `yaml:"parquet"`
	Compression string `yaml:"compression"` // "snappy" | "zstd"
}

// DatabaseConfig configures the PostgreSQL target.
type DatabaseConfig struct {
	DSN        string `yaml:"dsn"`
	InitSchema bool   `yaml:"init_schema"`
}

// Default returns the configuration used when no file overrides it.
func Default() Config {
	return Config{
		Source: SourceConfig{
			Mode: "local",
			Dir:  "./data",
		},
		Inputs: InputsConfig{
			PeopleFullyVaccinated:           "people_fully_vaccinated.csv",
			PeopleFullyVaccinatedPerHundred: "people_fully_vaccinated_per_hundred.csv",
			DailyVaccinations:               "daily_vaccinations.csv",
			DailyVaccinationsPerMillion:     "daily_vaccinations_per_million.csv",
			CaseDeaths:                      "cases_deaths_by_state.csv",
			CrossRef:                        "state_abbreviations.csv",
		},
		Backup: BackupConfig{
			Backend:     "local",
			Dir:         "./backups",
			Compression: "snappy",
		},
		Database: DatabaseConfig{},
		Logging: logging.Config{
			Format: "text",
			Level:  "info",
		},
	}
}

// Load reads the YAML file at path over the defaults and applies environment
// overrides. An empty path means defaults plus environment only.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// MustLoad is Load for main: it exits on any configuration error.
func MustLoad(path string) Config {
	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("[config] %v", err)
	}
	return cfg
}

// applyEnv overrides file values with environment variables. The DSN carries
// credentials, so it is expected to arrive via the environment in most
// deployments.
func applyEnv(cfg *Config) {
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("SOURCE_DIR"); v != "" {
		cfg.Source.Dir = v
	}
	if v := os.Getenv("BACKUP_DIR"); v != "" {
		cfg.Backup.Dir = v
	}
}

// Validate checks the parts of the configuration that would otherwise fail
// deep inside the run.
func (c Config) Validate() error {
	switch c.Source.Mode {
	case "local":
		if c.Source.Dir == "" {
			return fmt.Errorf("source.dir required for local mode")
		}
	case "gcs", "s3":
		if c.Source.Bucket == "" {
			return fmt.Errorf("source.bucket required for %s mode", c.Source.Mode)
		}
	default:
		return fmt.Errorf("unknown source mode: %s", c.Source.Mode)
	}

	switch c.Backup.Backend {
	case "local":
		if c.Backup.Dir == "" {
			return fmt.Errorf("backup.dir required for local backend")
		}
	case "gcs", "s3":
		if c.Backup.Bucket == "" {
			return fmt.Errorf("backup.bucket required for %s backend", c.Backup.Backend)
		}
	default:
		return fmt.Errorf("unknown backup backend: %s", c.Backup.Backend)
	}

	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn (or DATABASE_DSN) is required")
	}
	return nil
}
