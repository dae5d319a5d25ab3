package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed session.yaml
var defaultSessionYAML []byte

// Session is the upstream browser session: header block, cookie and the
// search-page URL parameters.
type Session struct {
	Headers     map[string]string `yaml:"headers"`
	Cookie      string            `yaml:"cookie"`
	QueryParams map[string]string `yaml:"query_params"`
}

// ParseSession decodes a session YAML document.
func ParseSession(b []byte) (Session, error) {
	var s Session
	if err := yaml.Unmarshal(b, &s); err != nil {
		return Session{}, fmt.Errorf("parse session: %w", err)
	}
	if s.Headers == nil {
		s.Headers = map[string]string{}
	}
	if s.QueryParams == nil {
		s.QueryParams = map[string]string{}
	}
	return s, nil
}

// DefaultSession is the session shipped with the binary.
func DefaultSession() Session {
	s, err := ParseSession(defaultSessionYAML)
	if err != nil {
		panic(err) // embedded file is part of the build
	}
	return s
}

// LoadSession reads path, or returns DefaultSession when path is empty.
func LoadSession(path string) (Session, error) {
	if path == "" {
		return DefaultSession(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Session{}, fmt.Errorf("read session: %w", err)
	}
	return ParseSession(b)
}

// WithOverrides returns a copy of s with the expiring values replaced when non-empty.
func (s Session) WithOverrides(cookie, csrf string) Session {
	out := Session{
		Headers:     make(map[string]string, len(s.Headers)),
		Cookie:      s.Cookie,
		QueryParams: make(map[string]string, len(s.QueryParams)),
	}
	for k, v := range s.Headers {
		out.Headers[strings.ToLower(k)] = v
	}
	for k, v := range s.QueryParams {
		out.QueryParams[k] = v
	}
	if cookie != "" {
		out.Cookie = cookie
	}
	if csrf != "" {
		out.Headers["x-booking-csrf-token"] = csrf
	}
	return out
}
