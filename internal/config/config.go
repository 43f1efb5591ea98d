// Package config provides configuration loading.
//
// Values are resolved in order: schema defaults, the TOML config file, then
// LEADNEXUS_* environment variables. Every value passes its key's validator;
// rejected values fall back to the default with a warning.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/cristianoliveira/leadnexus/internal/colors"
	"github.com/pelletier/go-toml/v2"
)

const (
	FileModeDir  os.FileMode = 0755
	FileModeFile os.FileMode = 0644

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "LEADNEXUS_"
	// EnvConfigPath points at an explicit config file.
	EnvConfigPath = EnvPrefix + "CONFIG_PATH"

	configFile = "config.toml"
)

var (
	mu       sync.RWMutex
	values   map[string]string
	defaults map[string]string
	known    map[string]Key
	order    []Key
)

// Load reads defaults, the config file and the environment. On first run it
// also writes a commented sample file into config_dir.
func Load() {
	mu.Lock()
	defer mu.Unlock()

	order = schema()
	known = make(map[string]Key, len(order))
	defaults = make(map[string]string, len(order))
	values = make(map[string]string, len(order))
	for _, k := range order {
		known[k.Name] = k
		defaults[k.Name] = k.Default
		values[k.Name] = k.Default
	}

	// config_dir may itself come from the environment.
	applyEnv()
	path, explicit := filePath()
	applyFile(path, explicit)
	applyEnv()

	for key, value := range values {
		values[key] = normalize(key, value)
	}
	if !explicit {
		writeSample(path)
	}
}

// Path returns the config file Load reads, whether or not it exists.
func Path() string {
	mu.RLock()
	defer mu.RUnlock()
	path, _ := filePath()
	return path
}

func filePath() (path string, explicit bool) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, true
	}
	dir := values["config_dir"]
	if dir == "" {
		configHome, _ := xdgDirs()
		dir = filepath.Join(configHome, "leadnexus")
	}
	return filepath.Join(dir, configFile), false
}

func applyFile(path string, explicit bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		if explicit || !os.IsNotExist(err) {
			colors.Debug(fmt.Sprintf("config file %s not read: %v", path, err))
		}
		return
	}
	if !strings.EqualFold(filepath.Ext(path), ".toml") {
		colors.Warning(fmt.Sprintf("config file %s is not .toml, skipping", path))
		return
	}
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		colors.Warning(fmt.Sprintf("config file %s: %v", path, err))
		return
	}
	for k, v := range raw {
		s, ok := scalar(v)
		if !ok {
			colors.Warning(fmt.Sprintf("config %s: %T values are not supported", k, v))
			continue
		}
		values[strings.ToLower(k)] = s
	}
}

func scalar(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case bool:
		return strconv.FormatBool(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case int:
		return strconv.Itoa(t), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	}
	return "", false
}

// applyEnv copies non-empty LEADNEXUS_* variables into values.
func applyEnv() {
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || value == "" || !strings.HasPrefix(name, EnvPrefix) || name == EnvConfigPath {
			continue
		}
		values[strings.ToLower(strings.TrimPrefix(name, EnvPrefix))] = value
	}
}

func normalize(key, value string) string {
	v := lookupValidator(key)
	if v == nil {
		return value
	}
	out, err := v(key, value, defaults[key])
	if err != nil {
		colors.Warning(fmt.Sprintf("config %s: %v", key, err))
		return defaults[key]
	}
	return out
}

// writeSample documents every non-secret key with its default value.
func writeSample(path string) {
	if _, err := os.Stat(path); err == nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), FileModeDir); err != nil {
		colors.Debug(fmt.Sprintf("config dir not created: %v", err))
		return
	}

	var buf bytes.Buffer
	buf.WriteString("# leadnexus configuration (TOML).\n# LEADNEXUS_<KEY> environment variables override these values.\n")
	for _, k := range order {
		if k.Secret {
			fmt.Fprintf(&buf, "\n# %s\n# Set it with %s%s.\n", k.Doc, EnvPrefix, strings.ToUpper(k.Name))
			continue
		}
		line, err := toml.Marshal(map[string]any{k.Name: typed(k.Default)})
		if err != nil {
			colors.Debug(fmt.Sprintf("config sample %s: %v", k.Name, err))
			continue
		}
		fmt.Fprintf(&buf, "\n# %s\n%s", k.Doc, line)
	}
	if err := os.WriteFile(path, buf.Bytes(), FileModeFile); err != nil {
		colors.Warning(fmt.Sprintf("sample config not written to %s: %v", path, err))
	}
}

func typed(s string) any {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}

// Set overrides a single value after Load, running its validator.
func Set(key, value string) {
	mu.Lock()
	defer mu.Unlock()
	if values == nil {
		values = map[string]string{}
		defaults = map[string]string{}
	}
	values[key] = normalize(key, value)
}

// Keys returns every loaded key in sorted order.
func Keys() []string {
	mu.RLock()
	defer mu.RUnlock()
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value for key, or def when it is not set.
func Get(key, def string) string {
	mu.RLock()
	defer mu.RUnlock()
	if v, ok := values[key]; ok {
		return v
	}
	return def
}

// GetInt returns key as an integer, or def when unset or not a number.
func GetInt(key string, def int) int {
	if n, err := strconv.Atoi(Get(key, "")); err == nil {
		return n
	}
	return def
}

// GetBool returns key as a boolean, or def when unset or not a boolean.
func GetBool(key string, def bool) bool {
	if b, ok := parseBool(Get(key, "")); ok {
		return b
	}
	return def
}
