package config

import (
	"bufio"
	"os"
	"regexp"
	"strconv"
	"strings"
)

var (
	reExport = regexp.MustCompile(`^\s*export\s+([A-Za-z_][A-Za-z0-9_]*)\s*=\s*(.*)\s*$`)
	reAssign = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_]*)\s*=\s*(.*)\s*$`)
)

// LoadEnv loads shell-style env files into the process environment.
// Supports lines like:
//
//	export KEY=value
//	KEY=value
//
// Values may be unquoted, single-quoted, or double-quoted. Variables already
// set are overridden only when override is true.
func LoadEnv(override bool, paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		f, err := os.Open(p)
		if err != nil {
			continue
		}
		scan := bufio.NewScanner(f)
		for scan.Scan() {
			line := strings.TrimSpace(scan.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			var key, val string
			if m := reExport.FindStringSubmatch(line); m != nil {
				key, val = m[1], m[2]
			} else if m := reAssign.FindStringSubmatch(line); m != nil {
				key, val = m[1], m[2]
			} else {
				continue
			}
			if _, exists := os.LookupEnv(key); exists && !override {
				continue
			}
			os.Setenv(key, unquote(strings.TrimSpace(val)))
		}
		f.Close()
	}
}

func unquote(val string) string {
	if len(val) >= 2 && strings.HasPrefix(val, `"`) && strings.HasSuffix(val, `"`) {
		v := val[1 : len(val)-1]
		v = strings.ReplaceAll(v, `\\`, `\`)
		return strings.ReplaceAll(v, `\"`, `"`)
	}
	if len(val) >= 2 && strings.HasPrefix(val, "'") && strings.HasSuffix(val, "'") {
		return val[1 : len(val)-1]
	}
	return val
}

// ApplyEnv overrides c from SPEECHALIGN_* variables.
func (c *Config) ApplyEnv() {
	if v, ok := os.LookupEnv("SPEECHALIGN_STRICT"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Align.Strict = b
		}
	}
	if v := os.Getenv("SPEECHALIGN_PUNCT_MODE"); v != "" {
		c.Punct.Mode = v
	}
	if v := os.Getenv("SPEECHALIGN_PUNCT_ENDPOINT"); v != "" {
		c.Punct.Endpoint = v
	}
	if v := os.Getenv("SPEECHALIGN_PUNCT_LANGUAGE"); v != "" {
		c.Punct.Language = v
	}
	if v := os.Getenv("SPEECHALIGN_MAX_CONCURRENT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Worker.MaxConcurrent = n
		}
	}
	if v := os.Getenv("SPEECHALIGN_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("SPEECHALIGN_METRICS_FILE"); v != "" {
		c.Metrics.File = v
	}
}
