package main

import (
	"flag"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/nikmy/nestedtxn/internal/api"
	"github.com/nikmy/nestedtxn/internal/postgres"
	"github.com/nikmy/nestedtxn/pkg/environment"
	"github.com/nikmy/nestedtxn/pkg/errors"
)

type Config struct {
	Environment environment.Env `yaml:"Environment"`
	Postgres    postgres.Config `yaml:"Postgres"`
	API         api.Config      `yaml:"API"`
}

type flags struct {
	configPath string
	env        string
}

func parseFlags(args []string) (flags, error) {
	fs := flag.NewFlagSet("nestedtxn", flag.ContinueOnError)

	var f flags
	fs.StringVar(&f.configPath, "config", "config.yaml", "path to yaml config")
	fs.StringVar(&f.env, "env", "", "environment (dev, prod, test)")

	err := fs.Parse(args)
	return f, err
}

func loadConfig(f flags) (*Config, error) {
	path, err := filepath.Abs(f.configPath)
	if err != nil {
		return nil, errors.WrapFail(err, "build path to config")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapFailf(err, "read %q", path)
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, errors.WrapFail(err, "parse yaml")
	}

	if f.env != "" {
		cfg.Environment = environment.FromString(f.env)
	}

	if dsn := os.Getenv("NESTEDTXN_POSTGRES_DSN"); dsn != "" {
		cfg.Postgres.DSN = dsn
	}

	return &cfg, nil
}
