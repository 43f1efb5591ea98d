package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/cristianoliveira/leadnexus/internal/colors"
)

// Validator normalizes a raw value. Invalid values are reported and
// replaced by def; a returned error also falls back to def.
type Validator func(key, value, def string) (string, error)

var (
	extraMu    sync.RWMutex
	extraRules = map[string]Validator{}
)

// RegisterValidator adds a validator for a key outside the built-in
// schema. It panics when the key already has one.
func RegisterValidator(key string, v Validator) {
	extraMu.Lock()
	defer extraMu.Unlock()
	if _, dup := extraRules[key]; dup || validatorFor(key) != nil {
		panic(fmt.Sprintf("config: validator for %q registered twice", key))
	}
	extraRules[key] = v
}

func validatorFor(key string) Validator {
	for _, k := range schema() {
		if k.Name == key {
			return k.validator
		}
	}
	return nil
}

func lookupValidator(key string) Validator {
	if k, ok := known[key]; ok && k.validator != nil {
		return k.validator
	}
	extraMu.RLock()
	defer extraMu.RUnlock()
	return extraRules[key]
}

// reject warns about an unusable value and returns the default.
func reject(key, value, want, def string) (string, error) {
	colors.Warning(fmt.Sprintf("config %s=%q ignored (%s), using %q", key, value, want, def))
	return def, nil
}

// PositiveIntValidator accepts integers greater than zero.
func PositiveIntValidator() Validator {
	return func(key, value, def string) (string, error) {
		value = strings.TrimSpace(value)
		if value == "" {
			return def, nil
		}
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return strconv.Itoa(n), nil
		}
		return reject(key, value, "want a positive integer", def)
	}
}

// EnumValidator accepts one of allowed, case-insensitively.
func EnumValidator(allowed map[string]bool) Validator {
	return func(key, value, def string) (string, error) {
		v := strings.ToLower(strings.TrimSpace(value))
		switch {
		case v == "":
			return def, nil
		case allowed[v]:
			return v, nil
		}
		names := make([]string, 0, len(allowed))
		for name := range allowed {
			names = append(names, name)
		}
		sort.Strings(names)
		return reject(key, value, "want one of "+strings.Join(names, "|"), def)
	}
}

// BoolValidator accepts 1/0, true/false, yes/no and on/off.
func BoolValidator() Validator {
	return func(key, value, def string) (string, error) {
		if strings.TrimSpace(value) == "" {
			return def, nil
		}
		if b, ok := parseBool(value); ok {
			return strconv.FormatBool(b), nil
		}
		return reject(key, value, "want true or false", def)
	}
}

// URLValidator accepts http(s) URLs and drops a trailing slash.
func URLValidator() Validator {
	return func(key, value, def string) (string, error) {
		value = strings.TrimSpace(value)
		switch {
		case value == "":
			return def, nil
		case strings.HasPrefix(value, "http://"), strings.HasPrefix(value, "https://"):
			return strings.TrimRight(value, "/"), nil
		}
		return reject(key, value, "want an http(s) URL", def)
	}
}

func parseBool(s string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	}
	return false, false
}
