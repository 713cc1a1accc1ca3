package staging

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"prepare-test/internal/config"
	"prepare-test/internal/events"
	"prepare-test/internal/fsops"
	"prepare-test/internal/logger"

	diff "github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/pkg/errors"
)

const component = "staging"

// Copier はプリセットをモジュールのコンフィグに上書きコピーする能力
type Copier interface {
	Copy(src, dst string) error
}

// Reader はファイル内容を読む能力（差分の記録に使う）
type Reader interface {
	ReadFile(path string) ([]byte, error)
}

// Result は1回のステージングの結果
type Result struct {
	Preset  string
	Source  string
	Target  string
	Err     error  // コピーの結果。制御フローには使わない
	Changed bool   // コピー前後で内容が変わったか（Reader 設定時のみ）
	Diff    string // 変更があった場合の unified diff（debug レベル時のみ）
}

// Command はオペレーターに表示するコピーコマンド
func (r Result) Command() string {
	return fmt.Sprintf("cp %s %s", r.Source, r.Target)
}

// Stager はプリセットのコンフィグをステージングする
type Stager struct {
	copier   Copier
	reader   Reader
	out      io.Writer
	eventBus *events.Bus
}

// New は新しいStagerを作成する
func New(copier Copier, out io.Writer) *Stager {
	return &Stager{
		copier: copier,
		out:    out,
	}
}

// SetReader は差分の記録に使うReaderを設定する
func (s *Stager) SetReader(r Reader) {
	s.reader = r
}

// SetEventBus はイベントバスを設定する
func (s *Stager) SetEventBus(bus *events.Bus) {
	s.eventBus = bus
}

// Stage は <config_dir>/<preset><ext> を <config_dir>/<module><ext> に上書きコピーする。
// コピーの成否にかかわらず実行したコマンドを表示する。
func (s *Stager) Stage(ctx config.WorkingContext, scenarioName, preset string) Result {
	res := Result{
		Preset: preset,
		Source: ctx.PresetPath(preset),
		Target: ctx.ModuleConfigPath(),
	}

	before, hadBefore := s.snapshot(res.Target)

	res.Err = s.copier.Copy(res.Source, res.Target)
	switch {
	case res.Err == nil:
		logger.Info(component, "staged preset %s for %s", preset, ctx.Module)
	case fsops.IsMissing(res.Err):
		logger.Warn(component, "preset %s not found: %v", preset, res.Err)
	case errors.Is(res.Err, fsops.ErrSameFile):
		logger.Warn(component, "preset %s is the active %s config, left as is", preset, ctx.Module)
	default:
		logger.Warn(component, "staging preset %s failed: %v", preset, res.Err)
	}

	if res.Err == nil && s.reader != nil {
		after, _ := s.snapshot(res.Target)
		res.Changed = !hadBefore || before != after
		if !res.Changed {
			logger.Debug(component, "%s unchanged", res.Target)
		} else if logger.Enabled(logger.LevelDebug) {
			name := diffName(ctx.WorkDir, res.Target)
			edits := myers.ComputeEdits("", before, after)
			res.Diff = fmt.Sprint(diff.ToUnified("a/"+name, "b/"+name, before, edits))
			logger.Debug(component, "config diff:\n%s", res.Diff)
		}
	}

	s.eventBus.Publish(events.NewConfigStagedEvent(scenarioName, preset, res.Source, res.Target, res.Err))
	_, _ = fmt.Fprintf(s.out, "Executed: %s\n", res.Command())

	return res
}

// diffName は差分ヘッダに使う作業ディレクトリからの相対パスを返す
func diffName(workDir, path string) string {
	if rel, err := filepath.Rel(workDir, path); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return strings.TrimPrefix(filepath.ToSlash(path), "/")
}

func (s *Stager) snapshot(path string) (string, bool) {
	if s.reader == nil {
		return "", false
	}
	data, err := s.reader.ReadFile(path)
	if err != nil {
		return "", false
	}
	return string(data), true
}
