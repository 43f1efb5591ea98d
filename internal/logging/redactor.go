package logging

import (
	"fmt"
	"regexp"
	"strings"
)

const redacted = "[REDACTED]"

// Keys whose values are secrets. Matched per key segment, so "api_token"
// and "Authorization" match but "secretary" does not.
var secretWords = map[string]bool{
	"secret": true, "password": true, "token": true, "key": true,
	"auth": true, "authorization": true, "credential": true,
}

// Keys whose values identify a lead. With PII redaction on, their values
// are masked rather than dropped so log lines stay correlatable.
var personalKeys = map[string]bool{
	"email": true, "full_name": true, "name": true, "phone": true,
}

var (
	keySegments  = regexp.MustCompile(`[^a-z0-9]+`)
	emailAddress = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
)

// redactor scrubs secrets, and optionally lead PII, from log arguments.
type redactor struct {
	pii bool
}

func newRedactor(pii bool) *redactor {
	return &redactor{pii: pii}
}

// redact returns a copy of the flattened key-value pairs with sensitive
// values replaced. An odd trailing element is kept as is.
func (r *redactor) redact(pairs []any) []any {
	if len(pairs) == 0 {
		return pairs
	}
	out := make([]any, len(pairs))
	copy(out, pairs)
	for i := 0; i+1 < len(out); i += 2 {
		key, ok := out[i].(string)
		if !ok {
			continue
		}
		switch {
		case isSecret(key):
			out[i+1] = redacted
		case r.pii && personalKeys[strings.ToLower(key)]:
			out[i+1] = maskPersonal(fmt.Sprint(out[i+1]))
		case r.pii:
			if s, ok := out[i+1].(string); ok {
				out[i+1] = r.redactText(s)
			}
		}
	}
	return out
}

// redactText masks email addresses embedded in free text.
func (r *redactor) redactText(s string) string {
	if !r.pii || !strings.Contains(s, "@") {
		return s
	}
	return emailAddress.ReplaceAllStringFunc(s, maskEmail)
}

func isSecret(key string) bool {
	for _, part := range keySegments.Split(strings.ToLower(key), -1) {
		if secretWords[part] {
			return true
		}
	}
	return false
}

func maskPersonal(v string) string {
	if strings.Contains(v, "@") {
		return maskEmail(v)
	}
	return maskName(v)
}

// maskEmail keeps the first character of the mailbox and the domain:
// "sam@acme.io" becomes "s***@acme.io".
func maskEmail(email string) string {
	mailbox, domain, ok := strings.Cut(email, "@")
	if !ok || mailbox == "" {
		return redacted
	}
	return mailbox[:1] + "***@" + domain
}

// maskName keeps initials: "Sam Carter" becomes "S. C.".
func maskName(name string) string {
	words := strings.Fields(name)
	if len(words) == 0 {
		return ""
	}
	initials := make([]string, len(words))
	for i, w := range words {
		initials[i] = strings.ToUpper(string([]rune(w)[:1])) + "."
	}
	return strings.Join(initials, " ")
}
