package cliconfig

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// BaseURL returns the collection URL of the users service. APIURL is used
// verbatim when set; otherwise it is http://APIHost:APIPort/APIBase.
func (c *CLIConfig) BaseURL() string {
	if c.APIURL != "" {
		return strings.TrimRight(c.APIURL, "/")
	}
	base := c.APIBase
	if base != "" && !strings.HasPrefix(base, "/") {
		base = "/" + base
	}
	return "http://" + net.JoinHostPort(c.APIHost, strconv.Itoa(c.APIPort)) + strings.TrimRight(base, "/")
}

// Validate checks that the configuration values are within acceptable ranges.
func (c *CLIConfig) Validate() error {
	if c.APIURL == "" {
		if c.APIHost == "" {
			return fmt.Errorf("apiHost is required when apiUrl is not set")
		}
		if c.APIPort < 1 || c.APIPort > 65535 {
			return fmt.Errorf("apiPort %d is out of range (1-65535)", c.APIPort)
		}
	} else if !strings.HasPrefix(c.APIURL, "http://") && !strings.HasPrefix(c.APIURL, "https://") {
		return fmt.Errorf("apiUrl %q must start with http:// or https://", c.APIURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout %s must not be negative", c.Timeout)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logLevel %q is not one of debug, info, warn, error", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("logFormat %q is not one of text, json", c.LogFormat)
	}
	return nil
}

// Source returns where key got its value, or SourceDefault.
func (c *CLIConfig) Source(key string) string {
	if s, ok := c.Sources[key]; ok {
		return s
	}
	return SourceDefault
}

// SetFlag records a value given on the command line.
func (c *CLIConfig) SetFlag(key string, apply func(*CLIConfig)) {
	apply(c)
	if c.Sources == nil {
		c.Sources = make(map[string]string)
	}
	c.Sources[key] = SourceFlag
}

// Entries lists every setting in a stable order. The token is masked.
func (c *CLIConfig) Entries() []Entry {
	token := ""
	if c.APIToken != "" {
		token = "********"
	}
	rows := []struct{ key, value string }{
		{"baseUrl", c.BaseURL()},
		{"apiUrl", c.APIURL},
		{"apiHost", c.APIHost},
		{"apiPort", strconv.Itoa(c.APIPort)},
		{"apiBase", c.APIBase},
		{"apiToken", token},
		{"timeout", c.Timeout.String()},
		{"logLevel", c.LogLevel},
		{"logFormat", c.LogFormat},
		{"language", c.Language},
		{"serveAddr", c.ServeAddr},
	}
	out := make([]Entry, 0, len(rows))
	for _, r := range rows {
		src := c.Source(r.key)
		if r.key == "baseUrl" {
			src = c.baseURLSource()
		} else if r.value == "" {
			src = "unset"
		}
		out = append(out, Entry{Key: r.key, Value: r.value, Source: src})
	}
	return out
}

func (c *CLIConfig) baseURLSource() string {
	if c.APIURL != "" {
		return c.Source("apiUrl")
	}
	return "derived"
}
