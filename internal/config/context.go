package config

import "path/filepath"

// WorkingContext は1回の実行で読み取り専用となる作業環境
type WorkingContext struct {
	WorkDir   string   // 絶対パス
	Module    string   // コンフィグを上書きされるモジュール
	ConfigDir string   // WorkDir からの相対、または絶対パス
	ConfigExt string   // 例: ".config"
	LogFile   string   // WorkDir からの相対、または絶対パス
	SwapFiles []string // WorkDir からの相対、または絶対パス
}

func (c WorkingContext) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.WorkDir, p)
}

// ConfigDirPath はコンフィグディレクトリの絶対パスを返す
func (c WorkingContext) ConfigDirPath() string {
	return c.resolve(c.ConfigDir)
}

// PresetPath はプリセットのコンフィグファイルのパスを返す
func (c WorkingContext) PresetPath(preset string) string {
	return filepath.Join(c.ConfigDirPath(), preset+c.ConfigExt)
}

// ModuleConfigPath はモジュールが次回起動時に読むコンフィグファイルのパスを返す
func (c WorkingContext) ModuleConfigPath() string {
	return c.PresetPath(c.Module)
}

// LogPath はモジュールのログファイルのパスを返す
func (c WorkingContext) LogPath() string {
	return c.resolve(c.LogFile)
}

// Artifacts は毎回削除される成果物（ログ1つとスワップファイル）を返す
func (c WorkingContext) Artifacts() []string {
	out := make([]string, 0, 1+len(c.SwapFiles))
	out = append(out, c.LogPath())
	for _, p := range c.SwapFiles {
		out = append(out, c.resolve(p))
	}
	return out
}
