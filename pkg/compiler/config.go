package compiler

import (
	"github.com/wundergraph/cqir/pkg/printer"
	"github.com/wundergraph/cqir/pkg/schema"
)

const (
	DefaultCacheSize = 1024
)

// Config is loaded by viper, keys use the mapstructure names
type Config struct {
	// InputArgumentName is the only argument of mutation and subscription fields
	InputArgumentName string `mapstructure:"input_argument_name"`
	// SnakeCase switches the well known runtime field names to snake_case
	SnakeCase bool `mapstructure:"snake_case"`
	// CacheSize is the number of artifacts a Cache keeps
	CacheSize int `mapstructure:"cache_size"`
	// Concurrency limits the files CompileFiles works on at once, zero means unlimited
	Concurrency int `mapstructure:"concurrency"`
}

func DefaultConfig() Config {
	return Config{
		InputArgumentName: printer.DefaultInputArgumentName,
		CacheSize:         DefaultCacheSize,
	}
}

func (c Config) SchemaConfig() schema.Config {
	return schema.Config{SnakeCase: c.SnakeCase}
}

func (c Config) withDefaults() Config {
	if c.InputArgumentName == "" {
		c.InputArgumentName = printer.DefaultInputArgumentName
	}
	if c.CacheSize <= 0 {
		c.CacheSize = DefaultCacheSize
	}
	return c
}
