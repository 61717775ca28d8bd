package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	LogLevel   slog.Level       `json:"LogLevel" yaml:"logLevel"`
	Source     SourceConfig     `json:"Source" yaml:"source" validate:"required"`
	Output     OutputConfig     `json:"Output" yaml:"output"`
	Layout     LayoutConfig     `json:"Layout" yaml:"layout"`
	Directives DirectivesConfig `json:"Directives" yaml:"directives"`
	Serve      ServeConfig      `json:"Serve" yaml:"serve"`
}

type SourceConfig struct {
	Type  string       `json:"Type" yaml:"type" validate:"required,oneof=local b2"`
	Local *LocalConfig `json:"Local" yaml:"local" validate:"required_if=Type local"`
	B2    *B2Config    `json:"B2" yaml:"b2" validate:"required_if=Type b2"`
}

type LocalConfig struct {
	Dir string `json:"Dir" yaml:"dir" validate:"required"`
}

type B2Config struct {
	BucketName     string `json:"BucketName" yaml:"bucketName" validate:"required,min=1"`
	Region         string `json:"Region" yaml:"region"`
	Prefix         string `json:"Prefix" yaml:"prefix"`
	KeyID          string `json:"KeyID" yaml:"keyID" validate:"required"`
	ApplicationKey string `json:"ApplicationKey" yaml:"applicationKey" validate:"required"`
}

type OutputConfig struct {
	Dir string `json:"Dir" yaml:"dir"`
}

type LayoutConfig struct {
	Files []string `json:"Files" yaml:"files" validate:"dive,filepath"`
}

type DirectivesConfig struct {
	ErrorPolicy string `json:"ErrorPolicy" yaml:"errorPolicy" validate:"omitempty,oneof=inline log"`
}

type ServeConfig struct {
	Address    string        `json:"Address" yaml:"address"`
	CacheTTL   time.Duration `json:"CacheTTL" yaml:"cacheTTL"`
	RescanCron string        `json:"RescanCron" yaml:"rescanCron"`
}

func (c *Config) setDefaults() {
	if c.Output.Dir == "" {
		c.Output.Dir = "public"
	}
	if c.Serve.Address == "" {
		c.Serve.Address = ":3000"
	}
	if c.Serve.CacheTTL == 0 {
		c.Serve.CacheTTL = 10 * time.Minute
	}
}

func LoadConfig(path string, config *Config) error {
	fileBytes, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	expandedFileBytes := []byte(os.ExpandEnv(string(fileBytes)))

	if err = yaml.Unmarshal(expandedFileBytes, config); err != nil {
		return err
	}

	return nil
}

func InitConfig(path string) (*Config, error) {
	config := &Config{}
	if err := LoadConfig(path, config); err != nil {
		return nil, err
	}
	config.setDefaults()

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(config); err != nil {
		return nil, err
	}

	return config, nil
}
