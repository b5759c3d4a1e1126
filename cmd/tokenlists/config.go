package main

import (
	"os"
	"strings"

	"github.com/dipdup-net/go-lib/config"
)

// Config -
type Config struct {
	ListPath    string            `yaml:"list_path"`
	ImagesRoot  string            `yaml:"images_root" validate:"required"`
	ImagesPath  string            `yaml:"images_path"`
	LogLevel    string            `yaml:"log_level" validate:"omitempty,oneof=debug trace info warn error fatal panic"`
	LogoBaseURL string            `yaml:"logo_base_url" validate:"omitempty,url"`
	Restructure RestructureConfig `yaml:"restructure"`
}

// RestructureConfig -
type RestructureConfig struct {
	Root   string   `yaml:"root"`
	Chains []uint64 `yaml:"chains" validate:"omitempty,dive,min=1"`
}

// Substitute -
func (c *Config) Substitute() error {
	c.ListPath = strings.TrimSpace(c.ListPath)
	c.ImagesRoot = strings.TrimSpace(c.ImagesRoot)
	if c.ImagesRoot == "" {
		c.ImagesRoot = defaultImagesRoot
	}
	c.ImagesPath = strings.Trim(strings.TrimSpace(c.ImagesPath), "/")
	if c.ImagesPath == "" {
		c.ImagesPath = defaultImagesRoot
	}
	return nil
}

// images_root is where the images are on disk, images_path is the same directory inside the repository
const defaultImagesRoot = "src/public/images"

// Load -
func Load(filename string) (cfg Config, err error) {
	err = config.Parse(filename, &cfg)
	return
}

// fromEnv - configuration used when no config file is present
func fromEnv() Config {
	cfg := Config{
		ListPath:   os.Getenv("LIST_PATH"),
		ImagesRoot: os.Getenv("IMAGES_ROOT"),
		ImagesPath: os.Getenv("IMAGES_PATH"),
		LogLevel:   os.Getenv("LOG_LEVEL"),
	}
	_ = cfg.Substitute()
	return cfg
}
