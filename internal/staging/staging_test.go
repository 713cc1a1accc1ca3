package staging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"prepare-test/internal/config"
	"prepare-test/internal/events"
	"prepare-test/internal/fsops"
	"prepare-test/internal/logger"

	"github.com/pkg/errors"
)

func tempContext(t *testing.T) config.WorkingContext {
	t.Helper()
	cwd := t.TempDir()
	if err := os.MkdirAll(filepath.Join(cwd, "cfg"), 0755); err != nil {
		t.Fatalf("failed to create cfg dir: %v", err)
	}
	ctx, err := config.Default().ToContext(cwd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return ctx
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return data
}

func TestStageRoundTrip(t *testing.T) {
	ctx := tempContext(t)
	preset := "IP=127.0.0.1\nPUERTO=5003\nTAMANIO_SWAP=1024\n"
	writeFile(t, ctx.PresetPath("memoryTLB"), preset)
	writeFile(t, ctx.ModuleConfigPath(), "PREVIOUS=1\n")

	res := New(fsops.OS{}, &bytes.Buffer{}).Stage(ctx, "tlbLRU", "memoryTLB")

	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if got := readFile(t, ctx.ModuleConfigPath()); !bytes.Equal(got, []byte(preset)) {
		t.Errorf("expected destination to equal preset byte-for-byte, got %q", got)
	}
}

func TestStageIdempotent(t *testing.T) {
	ctx := tempContext(t)
	writeFile(t, ctx.PresetPath("kernelScheduling"), "ALGORITMO_PLANIFICACION=SJF\n")
	stager := New(fsops.OS{}, &bytes.Buffer{})

	stager.Stage(ctx, "schedulingSJF", "kernelScheduling")
	first := readFile(t, ctx.ModuleConfigPath())
	stager.Stage(ctx, "schedulingSJF", "kernelScheduling")
	second := readFile(t, ctx.ModuleConfigPath())

	if !bytes.Equal(first, second) {
		t.Errorf("expected identical content after repeated staging: %q vs %q", first, second)
	}
}

func TestStagePrintsCommandEvenOnFailure(t *testing.T) {
	ctx := tempContext(t)
	buf := &bytes.Buffer{}

	res := New(fsops.OS{}, buf).Stage(ctx, "battlePreset", "battlePreset")

	if !fsops.IsMissing(res.Err) {
		t.Errorf("expected missing preset error, got %v", res.Err)
	}
	want := "Executed: cp " + ctx.PresetPath("battlePreset") + " " + ctx.ModuleConfigPath()
	if !strings.Contains(buf.String(), want) {
		t.Errorf("expected %q in output, got %q", want, buf.String())
	}
}

func TestStageTargetsModuleConfig(t *testing.T) {
	ctx, _ := config.Default().ToContext("/work")
	fs := fsops.NewMemory(map[string]string{"/work/cfg/memoryTLB.config": "TLB"})

	res := New(fs, &bytes.Buffer{}).Stage(ctx, "tlbFIFO", "memoryTLB")

	if res.Target != "/work/cfg/swamp.config" {
		t.Errorf("expected target /work/cfg/swamp.config, got %s", res.Target)
	}
	copies := fs.CallsOf(fsops.OpCopy)
	if len(copies) != 1 {
		t.Fatalf("expected 1 copy, got %d", len(copies))
	}
	if copies[0].Path != "/work/cfg/memoryTLB.config" || copies[0].Target != "/work/cfg/swamp.config" {
		t.Errorf("unexpected copy call: %+v", copies[0])
	}
}

func TestStageDiff(t *testing.T) {
	ctx, _ := config.Default().ToContext("/work")
	fs := fsops.NewMemory(map[string]string{
		"/work/cfg/memoryTLB.config": "CANTIDAD_ENTRADAS_TLB=4\n",
		"/work/cfg/swamp.config":     "CANTIDAD_ENTRADAS_TLB=8\n",
	})
	stager := New(fs, &bytes.Buffer{})
	stager.SetReader(fs)

	prev := logger.Default.Level()
	logger.Default.SetLevel(logger.LevelDebug)
	defer logger.Default.SetLevel(prev)

	res := stager.Stage(ctx, "tlbFIFO", "memoryTLB")

	if !strings.Contains(res.Diff, "--- a/cfg/swamp.config") || !strings.Contains(res.Diff, "+++ b/cfg/swamp.config") {
		t.Errorf("expected headers relative to the working directory, got:\n%s", res.Diff)
	}
	if !res.Changed {
		t.Error("expected change to be detected")
	}
	if !strings.Contains(res.Diff, "-CANTIDAD_ENTRADAS_TLB=8") || !strings.Contains(res.Diff, "+CANTIDAD_ENTRADAS_TLB=4") {
		t.Errorf("unexpected diff: %s", res.Diff)
	}

	again := stager.Stage(ctx, "tlbFIFO", "memoryTLB")
	if again.Changed {
		t.Error("expected second staging to leave the file unchanged")
	}
	if again.Diff != "" {
		t.Errorf("expected empty diff, got %s", again.Diff)
	}
}

func TestStageSkipsDiffBelowDebug(t *testing.T) {
	ctx, _ := config.Default().ToContext("/work")
	fs := fsops.NewMemory(map[string]string{
		"/work/cfg/memoryTLB.config": "CANTIDAD_ENTRADAS_TLB=4\n",
		"/work/cfg/swamp.config":     "CANTIDAD_ENTRADAS_TLB=8\n",
	})
	stager := New(fs, &bytes.Buffer{})
	stager.SetReader(fs)

	prev := logger.Default.Level()
	logger.Default.SetLevel(logger.LevelInfo)
	defer logger.Default.SetLevel(prev)

	res := stager.Stage(ctx, "tlbFIFO", "memoryTLB")

	if !res.Changed {
		t.Error("expected change to be detected")
	}
	if res.Diff != "" {
		t.Errorf("expected no diff below debug level, got:\n%s", res.Diff)
	}
}

func TestDiffName(t *testing.T) {
	tests := []struct {
		workDir  string
		path     string
		expected string
	}{
		{"/work", "/work/cfg/swamp.config", "cfg/swamp.config"},
		{"/work", "/etc/presets/swamp.config", "etc/presets/swamp.config"},
	}

	for _, tt := range tests {
		if got := diffName(tt.workDir, tt.path); got != tt.expected {
			t.Errorf("diffName(%s, %s) = %s, want %s", tt.workDir, tt.path, got, tt.expected)
		}
	}
}

func TestStageOntoActiveConfigKeepsPreset(t *testing.T) {
	cwd := t.TempDir()
	if err := os.MkdirAll(filepath.Join(cwd, "cfg"), 0755); err != nil {
		t.Fatalf("failed to create cfg dir: %v", err)
	}
	cfg := &config.FileConfig{Prep: config.PrepConfig{Module: "memoryTLB"}}
	ctx, err := cfg.ToContext(cwd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	writeFile(t, ctx.PresetPath("memoryTLB"), "TLB=4\n")
	buf := &bytes.Buffer{}

	res := New(fsops.OS{}, buf).Stage(ctx, "tlbFIFO", "memoryTLB")

	if !errors.Is(res.Err, fsops.ErrSameFile) {
		t.Errorf("expected ErrSameFile, got %v", res.Err)
	}
	if got := readFile(t, ctx.PresetPath("memoryTLB")); string(got) != "TLB=4\n" {
		t.Errorf("expected preset to survive, got %q", got)
	}
	if !strings.Contains(buf.String(), "Executed: cp ") {
		t.Errorf("expected copy command in output, got %q", buf.String())
	}
}

func TestStagePublishesEvent(t *testing.T) {
	ctx, _ := config.Default().ToContext("/work")
	bus := events.NewBus()
	ch := bus.Subscribe()

	stager := New(fsops.NewMemory(nil), &bytes.Buffer{})
	stager.SetEventBus(bus)
	stager.Stage(ctx, "suspension", "kernelSuspension")

	got := events.Drain(ch)
	if len(got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(got))
	}
	if got[0].Type != events.EventConfigStaged {
		t.Errorf("expected %s, got %s", events.EventConfigStaged, got[0].Type)
	}
	if got[0].Data.Preset != "kernelSuspension" || got[0].Scenario != "suspension" {
		t.Errorf("unexpected event data: %+v", got[0])
	}
	if got[0].Data.Error == "" {
		t.Error("expected missing preset to be recorded")
	}
}
