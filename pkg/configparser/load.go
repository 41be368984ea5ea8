package configparser

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

var ErrNoFilePath = errors.New("no file path provided")

// LoadAndParseYaml exports the YAML file into the environment and then fills cfg
// from the environment using `envconfig` and `default` struct tags.
// A missing file is not an error: cfg is then built from env and defaults only.
func LoadAndParseYaml(filepath string, cfg any) error {
	if err := LoadYamlFile(filepath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if err := envconfig.Process("", cfg); err != nil {
		return fmt.Errorf("could not parse environment: %w", err)
	}

	return nil
}

// LoadYamlFile reads a YAML file and loads its leaves into the environment.
// Nested keys are joined with "_" and upper-cased (http.port -> HTTP_PORT).
// Values of the form ${VAR:-default} are expanded. Variables that are already
// set are never overridden.
func LoadYamlFile(filepath string) error {
	if filepath == "" {
		return ErrNoFilePath
	}

	data, err := os.ReadFile(filepath)
	if err != nil {
		return fmt.Errorf("could not open YAML file: %w", err)
	}

	var root map[string]any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("error reading YAML file: %w", err)
	}

	vars := make(map[string]string)
	flatten(nil, root, vars)

	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if os.Getenv(key) != "" {
			continue
		}
		if err := os.Setenv(key, vars[key]); err != nil {
			return fmt.Errorf("could not set env var %s: %w", key, err)
		}
	}

	return nil
}

func flatten(prefix []string, node map[string]any, out map[string]string) {
	for key, value := range node {
		path := append(append([]string{}, prefix...), key)
		name := strings.ToUpper(strings.Join(path, "_"))

		switch v := value.(type) {
		case map[string]any:
			flatten(path, v, out)
		case []any:
			items := make([]string, 0, len(v))
			for _, item := range v {
				items = append(items, expand(fmt.Sprint(item)))
			}
			out[name] = strings.Join(items, ",")
		case nil:
			// "key:" without a value does not represent a variable
		default:
			if s := expand(fmt.Sprint(v)); s != "" {
				out[name] = s
			}
		}
	}
}

// expand resolves the ${VAR:-default} syntax.
func expand(value string) string {
	if !strings.HasPrefix(value, "${") || !strings.HasSuffix(value, "}") || !strings.Contains(value, ":-") {
		return value
	}

	inner := value[2 : len(value)-1]
	parts := strings.SplitN(inner, ":-", 2)
	if env := os.Getenv(strings.TrimSpace(parts[0])); env != "" {
		return env
	}
	return strings.TrimSpace(parts[1])
}
