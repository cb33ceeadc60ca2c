package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"k8s.io/klog/v2"
)

// StaticConfig is the configuration for kubehelper.
// Every field can also be set with the equivalent command line flag, which takes precedence.
type StaticConfig struct {
	LogLevel int `toml:"log_level,omitzero"`
	// KubeConfig is the path to the kubeconfig file. Relative paths are resolved against the
	// directory of the config file that sets them.
	KubeConfig string `toml:"kubeconfig,omitempty"`
	// Context is the kubeconfig context to use, defaults to the current-context.
	Context string `toml:"context,omitempty"`
	// Namespace to list resources from, defaults to the kubeconfig context namespace.
	Namespace     string `toml:"namespace,omitempty"`
	AllNamespaces bool   `toml:"all_namespaces,omitempty"`
	// LabelSelector is sent to the API server with every list request.
	LabelSelector string `toml:"label_selector,omitempty"`
	// Filter is the default free text filter, matched against resource names and labels.
	Filter     string `toml:"filter,omitempty"`
	ListOutput string `toml:"list_output,omitempty"`

	// Internal: the config.toml directory, to help resolve relative file paths
	configDirPath string
}

type ReadConfigOpt func(cfg *StaticConfig)

// WithDirPath returns a ReadConfigOpt that sets the config directory path.
func WithDirPath(path string) ReadConfigOpt {
	return func(cfg *StaticConfig) {
		cfg.configDirPath = path
	}
}

// Read reads the toml file, applies drop-in configs from configDir (if provided),
// and returns the StaticConfig with any opts applied.
// Loading order: defaults → main config file → drop-in files (lexically sorted)
func Read(configPath string, configDir string, opts ...ReadConfigOpt) (*StaticConfig, error) {
	cfg := Default()

	var dirPath string
	if configPath != "" {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve absolute path to config file: %w", err)
		}
		dirPath = filepath.Dir(absPath)

		klog.V(2).Infof("Loading main config from: %s", configPath)
		if err := mergeConfigFile(cfg, configPath, append(opts, WithDirPath(dirPath))...); err != nil {
			return nil, fmt.Errorf("failed to load main config file %s: %w", configPath, err)
		}
	}

	if configDir != "" {
		if err := loadDropInConfigs(cfg, configDir, opts...); err != nil {
			return nil, fmt.Errorf("failed to load drop-in configs from %s: %w", configDir, err)
		}
	}

	return cfg, nil
}

// mergeConfigFile reads a config file and merges its values into the target config.
// Values present in the file will overwrite existing values in cfg.
// Values not present in the file will remain unchanged in cfg.
func mergeConfigFile(cfg *StaticConfig, filePath string, opts ...ReadConfigOpt) error {
	configData, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	kubeConfig := cfg.KubeConfig
	if _, err = toml.NewDecoder(bytes.NewReader(configData)).Decode(cfg); err != nil {
		return fmt.Errorf("failed to decode TOML: %w", err)
	}
	for _, opt := range opts {
		opt(cfg)
	}
	// Only a kubeconfig set by this very file is relative to its directory
	if cfg.KubeConfig != kubeConfig {
		absPath, err := filepath.Abs(filePath)
		if err != nil {
			return fmt.Errorf("failed to resolve absolute path to config file: %w", err)
		}
		cfg.KubeConfig = resolvePath(filepath.Dir(absPath), cfg.KubeConfig)
	}
	return nil
}

// loadDropInConfigs loads and merges config files from a drop-in directory.
// Files are processed in lexical (alphabetical) order.
// Only files with .toml extension are processed; dotfiles are ignored.
func loadDropInConfigs(cfg *StaticConfig, dropInDir string, opts ...ReadConfigOpt) error {
	info, err := os.Stat(dropInDir)
	if err != nil {
		if os.IsNotExist(err) {
			klog.V(2).Infof("Drop-in config directory does not exist, skipping: %s", dropInDir)
			return nil
		}
		return fmt.Errorf("failed to stat drop-in directory: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("drop-in config path is not a directory: %s", dropInDir)
	}

	files, err := getSortedConfigFiles(dropInDir)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		klog.V(2).Infof("No drop-in config files found in: %s", dropInDir)
		return nil
	}

	klog.V(2).Infof("Loading %d drop-in config file(s) from: %s", len(files), dropInDir)

	for _, file := range files {
		klog.V(3).Infof("  - Merging drop-in config: %s", filepath.Base(file))
		if err := mergeConfigFile(cfg, file, opts...); err != nil {
			return fmt.Errorf("failed to merge drop-in config %s: %w", file, err)
		}
	}

	return nil
}

// getSortedConfigFiles returns a sorted list of .toml files in the specified directory.
// Dotfiles (starting with '.') and non-.toml files are ignored.
func getSortedConfigFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()

		if strings.HasPrefix(name, ".") {
			klog.V(4).Infof("Skipping dotfile: %s", name)
			continue
		}

		if !strings.HasSuffix(name, ".toml") {
			klog.V(4).Infof("Skipping non-.toml file: %s", name)
			continue
		}

		files = append(files, filepath.Join(dir, name))
	}

	sort.Strings(files)

	return files, nil
}

// ReadToml reads the toml data and returns the StaticConfig, with any opts applied
func ReadToml(configData []byte, opts ...ReadConfigOpt) (*StaticConfig, error) {
	config := Default()
	if _, err := toml.NewDecoder(bytes.NewReader(configData)).Decode(config); err != nil {
		return nil, err
	}

	for _, opt := range opts {
		opt(config)
	}

	config.KubeConfig = resolvePath(config.configDirPath, config.KubeConfig)
	return config, nil
}

// ConfigDirPath returns the directory of the main config file, empty if none was read.
func (c *StaticConfig) ConfigDirPath() string {
	return c.configDirPath
}

func resolvePath(dir, path string) string {
	if path == "" || dir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
