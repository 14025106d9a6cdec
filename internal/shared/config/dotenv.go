package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

// loadEnvFiles pushes KEY=VALUE pairs from the given files into the process
// environment. Variables that are already set win. Missing or unreadable files
// are skipped.
func loadEnvFiles(paths ...string) {
	if extra := strings.TrimSpace(os.Getenv("ENV_FILE")); extra != "" {
		paths = append([]string{extra}, paths...)
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		v := viper.New()
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			continue
		}
		for _, key := range v.AllKeys() {
			envKey := strings.ToUpper(key)
			if _, exists := os.LookupEnv(envKey); exists {
				continue
			}
			_ = os.Setenv(envKey, v.GetString(key))
		}
	}
}
