package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/goccy/go-yaml"
)

var (
	configPath      = "config/config.yaml"
	devConfigPath   = "config/config.dev.yaml"
	localConfigPath = "config/config.local.yaml"
)

// Duration читается из yaml как "5m", целое или дробное число секунд.
type Duration time.Duration

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func LoadConfig(c any) error {
	return parseConfig(c, pathForEnv(os.Getenv("ENV")), CommonParseOptions)
}

func pathForEnv(env string) string {
	switch env {
	case "local":
		return localConfigPath
	case "dev":
		return devConfigPath
	default:
		return configPath
	}
}

func parseConfig(c any, path string, opts parseOptions) error {
	if err := readFile(c, path); err != nil {
		return err
	}

	return CommonHelp("tiktok_page", "Запустить страницу загрузки TikTok", "", c, opts)
}

func readFile(cfg any, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", path, err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.Fatal(cerr)
		}
	}()

	if err = yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("failed to decode yaml file %s: %w", path, err)
	}

	return nil
}

// nolint
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err == nil {
		dur, err := time.ParseDuration(s)
		if err != nil {
			return err
		}

		*d = Duration(dur)

		return nil
	}

	// целое - секунды
	var i int64
	if err := unmarshal(&i); err == nil {
		*d = Duration(time.Duration(i) * time.Second)

		return nil
	}

	var f float64
	if err := unmarshal(&f); err == nil {
		*d = Duration(time.Duration(f * float64(time.Second)))

		return nil
	}

	return fmt.Errorf("unsupported duration format")
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}
