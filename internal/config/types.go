package config

// Config is the top-level schedview configuration, corresponding to .schedview.yml.
type Config struct {
	// Source is an http(s) base URL or a local directory holding the
	// JSON documents.
	Source       string `yaml:"source" koanf:"source"`
	Language     string `yaml:"language" koanf:"language"`
	LangDir      string `yaml:"lang_dir" koanf:"lang_dir"`
	ScheduleFile string `yaml:"schedule_file" koanf:"schedule_file"`
	TeachersFile string `yaml:"teachers_file" koanf:"teachers_file"`
	DaysMapFile  string `yaml:"days_map_file" koanf:"days_map_file"`
	CacheBust    bool   `yaml:"cache_bust" koanf:"cache_bust"`
	LoadMode     string `yaml:"load_mode" koanf:"load_mode"`

	FetchTimeoutSeconds int  `yaml:"fetch_timeout_seconds" koanf:"fetch_timeout_seconds"`
	WeekFilter          bool `yaml:"week_filter" koanf:"week_filter"`
	AutoWeek            bool `yaml:"auto_week" koanf:"auto_week"`
	ClockIntervalMS     int  `yaml:"clock_interval_ms" koanf:"clock_interval_ms"`

	Cache  CacheConfig  `yaml:"cache" koanf:"cache"`
	Server ServerConfig `yaml:"server" koanf:"server"`
	Site   SiteConfig   `yaml:"site" koanf:"site"`
}

// CacheConfig selects where view state and other small values are kept.
type CacheConfig struct {
	Backend   string `yaml:"backend" koanf:"backend"`
	Path      string `yaml:"path" koanf:"path"`
	RedisAddr string `yaml:"redis_addr" koanf:"redis_addr"`
	RedisDB   int    `yaml:"redis_db" koanf:"redis_db"`
	Prefix    string `yaml:"prefix" koanf:"prefix"`
}

// ServerConfig holds settings for `schedview serve`.
type ServerConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all" koanf:"allow_all"`
}

// SiteConfig holds settings for `schedview site`.
type SiteConfig struct {
	OutputDir string   `yaml:"output_dir" koanf:"output_dir"`
	AssetsDir string   `yaml:"assets_dir" koanf:"assets_dir"`
	Assets    []string `yaml:"assets" koanf:"assets"`
}
