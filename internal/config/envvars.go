// ABOUTME: Environment variable expansion in config path fields
// ABOUTME: Replaces ${VAR} patterns with os.Getenv values; unset vars become empty

package config

import (
	"os"
	"regexp"
)

var envVarPattern = regexp.MustCompile(`\$\{(\w+)\}`)

// ResolveEnvVars expands ${VAR} patterns in the file paths of c.
func ResolveEnvVars(c *Config) {
	c.ThemeFile = expandEnv(c.ThemeFile)
	c.Log.File = expandEnv(c.Log.File)
	c.Trace.File = expandEnv(c.Trace.File)
}

// expandEnv replaces ${VAR} with os.Getenv(VAR). Unset vars become "".
func expandEnv(s string) string {
	if s == "" {
		return s
	}
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(envVarPattern.FindStringSubmatch(match)[1])
	})
}
