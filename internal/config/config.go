// Package config holds the settings of a calbin batch run.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/BurntSushi/toml"

	"github.com/aerissecure/calbin/internal/logger"
	"github.com/aerissecure/calbin/xlsx"
)

const (
	// DefaultInputDir is the directory scanned for workbooks.
	DefaultInputDir = "../input"

	// DefaultOutputDir receives the binary images and the header.
	DefaultOutputDir = "../output"

	// DefaultHeaderFile is the header name inside the output directory.
	DefaultHeaderFile = "header.h"
)

// Config represents the configuration of a batch run.
type Config struct {
	InputDir    string `toml:"input-dir"`
	OutputDir   string `toml:"output-dir"`
	HeaderFile  string `toml:"header-file"`
	Concurrency int    `toml:"concurrency"`

	Sheet   xlsx.Config   `toml:"sheet"`
	Logging logger.Config `toml:"logging"`
}

// NewConfig returns an instance of Config with reasonable defaults.
func NewConfig() *Config {
	return &Config{
		InputDir:    DefaultInputDir,
		OutputDir:   DefaultOutputDir,
		HeaderFile:  DefaultHeaderFile,
		Concurrency: runtime.NumCPU(),
		Sheet:       xlsx.NewConfig(),
		Logging:     logger.NewConfig(),
	}
}

// FromTomlFile loads the config from a TOML file.
func (c *Config) FromTomlFile(fpath string) error {
	bs, err := os.ReadFile(fpath)
	if err != nil {
		return err
	}
	return c.FromToml(string(bs))
}

// FromToml loads the config from TOML. Keys absent from input keep their
// current values.
func (c *Config) FromToml(input string) error {
	md, err := toml.Decode(input, c)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return nil
}

// Validate returns an error if the config is invalid.
func (c *Config) Validate() error {
	if c.InputDir == "" {
		return errors.New("input-dir must be set")
	}
	if c.OutputDir == "" {
		return errors.New("output-dir must be set")
	}
	if c.HeaderFile == "" {
		return errors.New("header-file must be set")
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be positive, got %d", c.Concurrency)
	}
	if c.Sheet.LabelRow < 1 {
		return fmt.Errorf("sheet.label-row must be positive, got %d", c.Sheet.LabelRow)
	}
	if c.Sheet.SkipTrailingRows < 0 {
		return fmt.Errorf("sheet.skip-trailing-rows must not be negative, got %d", c.Sheet.SkipTrailingRows)
	}
	return nil
}
