package config

// Config is the per-invocation configuration, filled from CLI flags (and
// their environment sources) via pkg/clicfg.
type Config struct {
	APIURL   string `flag:"api-url"`
	LogLevel string `flag:"log-level"`

	// Fetch policy.
	TimeoutSeconds int `flag:"timeout"`
	Retries        int `flag:"retries"`

	PageSize int `flag:"page-size"`

	MetricsAddr string `flag:"metrics-addr"`
}
