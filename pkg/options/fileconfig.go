package options

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// LoadFromFile reads store configuration from a YAML file, in the style of
// jassi-singh/aether-kv's internal/config/config.go: an optional .env file
// is loaded first (missing is not an error), then the YAML file's contents
// are expanded against the process environment with os.ExpandEnv before
// being unmarshaled. Fields absent from the file keep their documented
// defaults.
//
// This is an alternative to the functional-options constructors above for
// embedders that prefer to drive configuration from a file rather than Go
// code.
func LoadFromFile(path string) (Options, error) {
	opts := NewDefaultOptions()

	if envPath := path + ".env"; fileExists(envPath) {
		_ = godotenv.Load(envPath)
	} else {
		_ = godotenv.Load()
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Options{}, err
	}

	expanded := os.ExpandEnv(string(raw))
	if err := yaml.Unmarshal([]byte(expanded), &opts); err != nil {
		return Options{}, err
	}

	return opts, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
