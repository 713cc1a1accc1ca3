package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"prepare-test/internal/logger"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// EnvLogLevel はログレベルを上書きする環境変数
const EnvLogLevel = "PREPARE_TEST_LOG_LEVEL"

// デフォルト値
const (
	DefaultModule    = "swamp"
	DefaultConfigDir = "cfg"
	DefaultConfigExt = ".config"
	DefaultLogLevel  = "info"
)

// DefaultSwapFiles はSWAMPが作成するスワップファイル
var DefaultSwapFiles = []string{
	"/home/utnso/swap1.bin",
	"/home/utnso/swap2.bin",
	"/home/utnso/swap3.bin",
	"/home/utnso/swap4.bin",
}

// FileConfig は設定ファイルの構造
type FileConfig struct {
	Prep PrepConfig `yaml:"prep" json:"prep" toml:"prep"`
}

// PrepConfig はテスト準備の設定
type PrepConfig struct {
	WorkDir   string   `yaml:"work_dir" json:"work_dir" toml:"work_dir"`
	Module    string   `yaml:"module" json:"module" toml:"module"`
	ConfigDir string   `yaml:"config_dir" json:"config_dir" toml:"config_dir"`
	ConfigExt string   `yaml:"config_ext" json:"config_ext" toml:"config_ext"`
	LogFile   string   `yaml:"log_file" json:"log_file" toml:"log_file"`
	SwapFiles []string `yaml:"swap_files" json:"swap_files" toml:"swap_files"`
	LogLevel  string   `yaml:"log_level" json:"log_level" toml:"log_level"`
}

// Default は設定ファイルなしの場合の設定を返す
func Default() *FileConfig {
	return &FileConfig{}
}

// LoadFile は設定ファイルを読み込む
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	var config FileConfig
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, errors.Wrap(err, "failed to parse YAML")
		}
	case ".json":
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, errors.Wrap(err, "failed to parse JSON")
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &config); err != nil {
			return nil, errors.Wrap(err, "failed to parse TOML")
		}
	default:
		return nil, errors.Errorf("unsupported config format: %s", ext)
	}

	return &config, nil
}

// ApplyEnv は環境変数による上書きを適用する
func (f *FileConfig) ApplyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		f.Prep.LogLevel = v
	}
}

// Validate は設定を検証する
func (f *FileConfig) Validate() error {
	p := f.Prep

	if strings.ContainsAny(p.Module, `/\`) {
		return errors.Errorf("module must be a bare name: %q", p.Module)
	}
	if p.ConfigExt != "" && !strings.HasPrefix(p.ConfigExt, ".") {
		return errors.Errorf("config_ext must start with '.': %q", p.ConfigExt)
	}
	for i, s := range p.SwapFiles {
		if strings.TrimSpace(s) == "" {
			return errors.Errorf("swap_files[%d] is empty", i)
		}
	}
	if _, err := logger.ParseLevel(p.LogLevel); err != nil {
		return errors.Wrap(err, "log_level")
	}
	return nil
}

// Level は設定されたログレベルを返す
func (f *FileConfig) Level() logger.Level {
	lvl, err := logger.ParseLevel(f.Prep.LogLevel)
	if err != nil {
		return logger.LevelInfo
	}
	return lvl
}

// ToContext はFileConfigをWorkingContextに変換する。
// cwd は work_dir が未指定の場合に使われる。
func (f *FileConfig) ToContext(cwd string) (WorkingContext, error) {
	p := f.Prep

	ctx := WorkingContext{
		WorkDir:   cwd,
		Module:    DefaultModule,
		ConfigDir: DefaultConfigDir,
		ConfigExt: DefaultConfigExt,
		SwapFiles: append([]string(nil), DefaultSwapFiles...),
	}

	if p.WorkDir != "" {
		ctx.WorkDir = p.WorkDir
	}
	if p.Module != "" {
		ctx.Module = p.Module
	}
	if p.ConfigDir != "" {
		ctx.ConfigDir = p.ConfigDir
	}
	if p.ConfigExt != "" {
		ctx.ConfigExt = p.ConfigExt
	}
	if len(p.SwapFiles) > 0 {
		ctx.SwapFiles = append([]string(nil), p.SwapFiles...)
	}
	ctx.LogFile = p.LogFile
	if ctx.LogFile == "" {
		ctx.LogFile = ctx.Module + ".log"
	}

	abs, err := filepath.Abs(ctx.WorkDir)
	if err != nil {
		return WorkingContext{}, errors.Wrapf(err, "resolve work_dir %q", ctx.WorkDir)
	}
	ctx.WorkDir = abs

	return ctx, nil
}
