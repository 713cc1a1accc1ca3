package cleanup

import (
	"fmt"
	"io"

	"prepare-test/internal/config"
	"prepare-test/internal/events"
	"prepare-test/internal/fsops"
	"prepare-test/internal/logger"
)

const component = "cleanup"

// Remover は成果物を削除する能力
type Remover interface {
	Remove(path string) error
}

// Attempt は1つの削除試行の結果
type Attempt struct {
	Path string
	Err  error
}

// Removed は削除に成功したかを返す
func (a Attempt) Removed() bool {
	return a.Err == nil
}

// Missing は対象が存在しなかったかを返す
func (a Attempt) Missing() bool {
	return fsops.IsMissing(a.Err)
}

// Report はクリーンアップの結果
type Report struct {
	Attempts []Attempt
}

// Removed は削除できた数を返す
func (r Report) Removed() int {
	n := 0
	for _, a := range r.Attempts {
		if a.Removed() {
			n++
		}
	}
	return n
}

// Missing は存在しなかった数を返す
func (r Report) Missing() int {
	n := 0
	for _, a := range r.Attempts {
		if a.Missing() {
			n++
		}
	}
	return n
}

// Failed は存在したが削除できなかった数を返す
func (r Report) Failed() int {
	return len(r.Attempts) - r.Removed() - r.Missing()
}

// Stage は前回の実行の成果物を削除する
type Stage struct {
	remover  Remover
	out      io.Writer
	eventBus *events.Bus
}

// New は新しいStageを作成する
func New(remover Remover, out io.Writer) *Stage {
	return &Stage{
		remover: remover,
		out:     out,
	}
}

// SetEventBus はイベントバスを設定する
func (s *Stage) SetEventBus(bus *events.Bus) {
	s.eventBus = bus
}

// Run はログファイルと全スワップファイルの削除を試みる。
// 各削除は独立しており、失敗しても残りの削除と実行は継続する。
func (s *Stage) Run(ctx config.WorkingContext) Report {
	paths := ctx.Artifacts()
	report := Report{Attempts: make([]Attempt, 0, len(paths))}

	for _, p := range paths {
		err := s.remover.Remove(p)
		report.Attempts = append(report.Attempts, Attempt{Path: p, Err: err})

		switch {
		case err == nil:
			logger.Info(component, "removed %s", p)
		case fsops.IsMissing(err):
			logger.Debug(component, "nothing to remove at %s", p)
		default:
			logger.Warn(component, "could not remove %s: %v", p, err)
		}
		s.eventBus.Publish(events.NewArtifactRemovalEvent(p, err))
	}

	s.eventBus.Publish(events.NewCleanupDoneEvent(len(report.Attempts)))
	_, _ = fmt.Fprintf(s.out, "Logs removed (%d of %d artifacts present)\n",
		report.Removed()+report.Failed(), len(report.Attempts))

	return report
}
