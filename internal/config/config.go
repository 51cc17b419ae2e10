package config

import (
	"flag"
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type (
	// Config represents an application configuration.
	Config struct {
		// Path to the transactions file to replay (plain CSV or gzipped).
		InputPath string `yaml:"input_path" env:"INPUT_FILE"`
		// Path to write the account snapshot to. Empty means stdout.
		OutputPath string `yaml:"output_path" env:"OUTPUT_FILE"`
		// Subconfigs.
		Logger Logger `yaml:"logger"`
	}
	// Config for application's logger.
	Logger struct {
		// Path to store log files. Empty means stderr.
		Path string `yaml:"path" env:"LOG_PATH"`
		// Application logging level.
		Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
		// Log files details.
		MaxSizeMB  int `yaml:"max_size_mb" env-default:"100"`
		MaxBackups int `yaml:"max_backups" env-default:"3"`
		MaxAgeDays int `yaml:"max_age_days" env-default:"30"`
	}
)

// MustLoad returns an application configuration which is populated
// from the given configuration file, environment variables and flags.
// The transactions file may also be given as the sole positional
// argument, which is how the tool is normally invoked.
func MustLoad() *Config {
	configPath := flag.String("config", "", "path to the config file")
	inputPath := flag.String("f", "", "path to the transactions file")
	outputPath := flag.String("o", "", "path to write the snapshot to (default stdout)")
	flag.Parse()

	var cfg Config

	// Load from YAML cfg file if one is provided.
	if *configPath != "" {
		file, err := os.Open(*configPath)
		if err != nil {
			log.Fatalf("failed to open config file: %s", *configPath)
		}
		if err = cleanenv.ParseYAML(file, &cfg); err != nil {
			log.Fatalf("failed to parse config file: %s", *configPath)
		}
		_ = file.Close()
	}

	// Read environment variables.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("failed to read environment variables: %v", err)
	}

	// Read given flags. A bare positional argument wins as the input path.
	if *inputPath != "" {
		cfg.InputPath = *inputPath
	}
	if *outputPath != "" {
		cfg.OutputPath = *outputPath
	}
	if flag.NArg() > 0 {
		cfg.InputPath = flag.Arg(0)
	}

	if cfg.InputPath == "" {
		log.Fatal("a transactions file is expected: pass it as an argument, -f or INPUT_FILE")
	}

	return &cfg
}
