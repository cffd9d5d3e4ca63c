package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/ziadkadry99/schedview/internal/cache"
	"github.com/ziadkadry99/schedview/internal/tables"
)

// detectSource returns the working directory when it already holds a
// schedule document, else an empty default.
func detectSource(scheduleFile string) string {
	if _, err := os.Stat(scheduleFile); err == nil {
		return "."
	}
	return ""
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .schedview.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to schedview! Let's configure your site.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Data source.
	sourcePrompt := promptui.Prompt{
		Label:   "Data source (URL or directory with the JSON files)",
		Default: detectSource(cfg.ScheduleFile),
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("source is required")
			}
			return nil
		},
	}
	source, err := sourcePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	cfg.Source = strings.TrimSpace(source)

	// 2. Language.
	langPrompt := promptui.Select{
		Label: "Interface language",
		Items: []string{"ru", "en"},
	}
	_, cfg.Language, err = langPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("language selection: %w", err)
	}

	// 3. Load mode.
	modePrompt := promptui.Select{
		Label: "Load the documents",
		Items: []string{
			"parallel   - all four requests at once",
			"sequential - one after another",
		},
	}
	modeIdx, _, err := modePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("load mode selection: %w", err)
	}
	cfg.LoadMode = []string{tables.ModeParallel, tables.ModeSequential}[modeIdx]

	// 4. Cache backend.
	backendPrompt := promptui.Select{
		Label: "Where to keep the last view state",
		Items: []string{cache.BackendSQLite, cache.BackendRedis, cache.BackendMemory},
	}
	_, cfg.Cache.Backend, err = backendPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("cache backend selection: %w", err)
	}
	if cfg.Cache.Backend == cache.BackendRedis {
		addrPrompt := promptui.Prompt{
			Label:   "Redis address",
			Default: "localhost:6379",
		}
		if cfg.Cache.RedisAddr, err = addrPrompt.Run(); err != nil {
			return nil, fmt.Errorf("redis address: %w", err)
		}
	}

	// 5. Server port.
	portPrompt := promptui.Prompt{
		Label:   "Port for schedview serve",
		Default: strconv.Itoa(cfg.Server.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("port must be 1-65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("server port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	// 6. Static site output and assets.
	outputPrompt := promptui.Prompt{
		Label:   "Output directory for the static site",
		Default: cfg.Site.OutputDir,
	}
	if cfg.Site.OutputDir, err = outputPrompt.Run(); err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}

	assetsPrompt := promptui.Prompt{
		Label:   "Asset patterns to copy (comma-separated globs)",
		Default: strings.Join(DefaultAssets, ","),
	}
	assetsStr, err := assetsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("asset patterns: %w", err)
	}
	cfg.Site.Assets = splitAndTrim(assetsStr)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(DefaultPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", DefaultPath)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
// Commas inside braces belong to the glob.
func splitAndTrim(s string) []string {
	var result []string
	depth, start := 0, 0
	for i := 0; i <= len(s); i++ {
		if i < len(s) {
			switch s[i] {
			case '{':
				depth++
				continue
			case '}':
				depth--
				continue
			case ',':
				if depth > 0 {
					continue
				}
			default:
				continue
			}
		}
		if token := strings.TrimSpace(s[start:i]); token != "" {
			result = append(result, token)
		}
		start = i + 1
	}
	return result
}
