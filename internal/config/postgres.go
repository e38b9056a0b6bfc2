package config

import "fmt"

// ResultsConfig points the runner at the optional run-history
// database. Setting RESULTS_HOSTNAME activates the sink; without it
// the runner writes file artifacts only.
type ResultsConfig struct {
	User     string
	Password string
	Database string
	Host     string
}

// ResultsSinkEnabled reports whether a run-history database is configured
func ResultsSinkEnabled(getenv func(string) string) bool {
	return getenv("RESULTS_HOSTNAME") != ""
}

// LoadResultsConfig reads the run-history connection details from the
// environment. Once the sink is enabled, every field must be present;
// a half-configured sink fails loudly instead of recording nothing.
func LoadResultsConfig(getenv func(string) string) (*ResultsConfig, error) {
	cfg := &ResultsConfig{
		User:     getenv("RESULTS_USER"),
		Password: getenv("RESULTS_PASSWORD"),
		Database: getenv("RESULTS_DB"),
		Host:     getenv("RESULTS_HOSTNAME"),
	}

	required := []struct {
		name  string
		value string
	}{
		{"RESULTS_USER", cfg.User},
		{"RESULTS_PASSWORD", cfg.Password},
		{"RESULTS_DB", cfg.Database},
		{"RESULTS_HOSTNAME", cfg.Host},
	}
	for _, r := range required {
		if r.value == "" {
			return nil, fmt.Errorf("results sink needs %s set", r.name)
		}
	}

	return cfg, nil
}

// ConnectionString renders the lib/pq DSN for the configured database
func (c *ResultsConfig) ConnectionString() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.User, c.Password, c.Database)
}
