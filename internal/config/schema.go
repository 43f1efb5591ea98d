package config

import (
	"os"
	"path/filepath"
)

// Key describes one configuration setting.
type Key struct {
	Name    string
	Default string
	// Doc is written above the key in the sample config file.
	Doc string
	// Secret keys are masked by Describe callers and left out of the
	// sample file.
	Secret    bool
	validator Validator
}

var sortKeys = map[string]bool{
	"none": true, "name": true, "company": true, "job_title": true, "location": true, "score": true,
}

// schema lists every known key in the order the sample file uses.
func schema() []Key {
	configHome, stateHome := xdgDirs()
	positive := PositiveIntValidator()
	boolean := BoolValidator()
	return []Key{
		{Name: "config_dir", Default: filepath.Join(configHome, "leadnexus"), Doc: "Directory holding config.toml."},
		{Name: "state_dir", Default: filepath.Join(stateHome, "leadnexus"), Doc: "Directory for the workspace database and logs."},
		{Name: "storage_backend", Default: "sqlite", Doc: "Workspace storage: sqlite or memory.",
			validator: EnumValidator(map[string]bool{"sqlite": true, "memory": true})},

		{Name: "leads_source", Doc: "Default lead file (.json or .csv). Empty uses api_base_url."},
		{Name: "api_base_url", Doc: "Marketplace API root, e.g. https://api.example.com.", validator: URLValidator()},
		{Name: "api_token", Secret: true, Doc: "Bearer token for the marketplace API."},
		{Name: "api_timeout_seconds", Default: "10", Doc: "HTTP timeout per API request.", validator: positive},

		{Name: "page_size", Default: "12", Doc: "Leads per result page.", validator: positive},
		{Name: "default_sort", Default: "none", Doc: "Sort applied when a query has no sort: token.", validator: EnumValidator(sortKeys)},
		{Name: "output_format", Default: "table", Doc: "search output: table, json or csv.",
			validator: EnumValidator(map[string]bool{"table": true, "json": true, "csv": true})},
		{Name: "notification_lifetime_ms", Default: "5000", Doc: "How long a notification stays on screen.", validator: positive},

		{Name: "logging_enabled", Default: "false", Doc: "Write JSON logs under state_dir/logs.", validator: boolean},
		{Name: "logging_level", Default: "info", Doc: "debug, info, warn or error.",
			validator: EnumValidator(map[string]bool{"debug": true, "info": true, "warn": true, "error": true})},
		{Name: "logging_max_files", Default: "10", Doc: "Log files kept before the oldest are removed.", validator: positive},
		{Name: "logging_redact_pii", Default: "true", Doc: "Mask lead emails and names in logs.", validator: boolean},

		{Name: "hooks_dir", Default: filepath.Join(configHome, "leadnexus", "hooks"), Doc: "Hook scripts live in <hooks_dir>/<point>/."},
		{Name: "hooks_failure_mode", Default: "warn", Doc: "On hook failure: abort, warn or ignore.",
			validator: EnumValidator(map[string]bool{"abort": true, "warn": true, "ignore": true})},
		{Name: "hooks_async", Default: "false", Doc: "Run hooks in the background.", validator: boolean},
		{Name: "hooks_async_timeout_seconds", Default: "30", Doc: "Kill background hooks after this long.", validator: positive},
		{Name: "hooks_max_async", Default: "10", Doc: "Background hooks allowed at once.", validator: positive},

		{Name: "debug", Default: "false", Doc: "Print debug output.", validator: boolean},
		{Name: "quiet", Default: "false", Doc: "Only print errors.", validator: boolean},
	}
}

func xdgDirs() (configHome, stateHome string) {
	home, _ := os.UserHomeDir()
	configHome = os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}
	stateHome = os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		stateHome = filepath.Join(home, ".local", "state")
	}
	return configHome, stateHome
}

// Describe returns the schema entry for name. It works before Load.
func Describe(name string) (Key, bool) {
	mu.RLock()
	k, ok := known[name]
	loaded := known != nil
	mu.RUnlock()
	if loaded {
		return k, ok
	}
	for _, k := range schema() {
		if k.Name == name {
			return k, true
		}
	}
	return Key{}, false
}
