package common

import (
	"regexp"

	"github.com/spf13/viper"
)

// Pattern resolves a regex from configuration, falling back to the built-in
// default when the key is unset. Lets a config file adjust an issuer grammar
// without a rebuild, and keeps the parser packages usable as a plain library.
func Pattern(key, fallback string) *regexp.Regexp {
	if s := viper.GetString(key); s != "" {
		return regexp.MustCompile(s)
	}
	return regexp.MustCompile(fallback)
}
