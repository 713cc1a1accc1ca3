package dispatch

import (
	"fmt"
	"io"

	"prepare-test/internal/cleanup"
	"prepare-test/internal/config"
	"prepare-test/internal/events"
	"prepare-test/internal/logger"
	"prepare-test/internal/scenario"
	"prepare-test/internal/staging"

	"github.com/pkg/errors"
)

const component = "dispatch"

// DefaultProgram is the program name shown in the usage hint.
const DefaultProgram = "prepare-test"

// ErrMalformedInvocation is recorded when the invocation does not carry exactly one scenario name.
var ErrMalformedInvocation = errors.New("malformed invocation")

// FS is the set of file capabilities a run needs.
type FS interface {
	Remove(path string) error
	Copy(src, dst string) error
	ReadFile(path string) ([]byte, error)
}

// Dispatcher runs one scenario preparation per call to Dispatch.
type Dispatcher struct {
	ctx      config.WorkingContext
	registry *scenario.Registry
	cleanup  *cleanup.Stage
	stager   *staging.Stager
	out      io.Writer
	eventBus *events.Bus
	program  string
}

// New creates a Dispatcher that writes operator output to out.
func New(ctx config.WorkingContext, registry *scenario.Registry, fs FS, out io.Writer) *Dispatcher {
	stager := staging.New(fs, out)
	stager.SetReader(fs)
	return &Dispatcher{
		ctx:      ctx,
		registry: registry,
		cleanup:  cleanup.New(fs, out),
		stager:   stager,
		out:      out,
		program:  DefaultProgram,
	}
}

// SetEventBus sets the bus every attempted action is published on.
func (d *Dispatcher) SetEventBus(bus *events.Bus) {
	d.eventBus = bus
	d.cleanup.SetEventBus(bus)
	d.stager.SetEventBus(bus)
}

// SetProgram sets the program name used in the usage hint.
func (d *Dispatcher) SetProgram(name string) {
	if name != "" {
		d.program = name
	}
}

// Dispatch prepares the scenario named by args[0].
//
// A wrong argument count prints the usage hint but does not stop the run.
// Cleanup always runs first. A known scenario then stages its preset (if
// any) and prints its instructions. Anything else, including no argument,
// lists the known scenarios.
func (d *Dispatcher) Dispatch(args []string) Outcome {
	o := Outcome{State: StateDispatching}

	if len(args) != 1 {
		o.Usage = errors.Wrapf(ErrMalformedInvocation, "expected 1 argument, got %d", len(args))
		logger.Debug(component, "%v", o.Usage)
		d.printUsage()
		d.eventBus.Publish(events.NewUsageHintEvent(len(args)))
	}
	if len(args) > 0 {
		o.Requested = args[0]
	}

	o.Cleanup = d.cleanup.Run(d.ctx)
	d.printf("Working directory: %s\n", d.ctx.WorkDir)

	def, err := d.registry.Resolve(o.Requested)
	if err != nil {
		o.Unknown = err
		logger.Debug(component, "%v", err)
		o.Listed = d.listScenarios(o.Requested)
		o.State = StateDone
		return o
	}

	o.Matched = true
	o.Scenario = def
	logger.Info(component, "preparing scenario %s", def.Name)

	if def.HasPreset() {
		res := d.stager.Stage(d.ctx, def.Name, def.ConfigPreset)
		o.Staging = &res
	}

	lines := def.Instructions()
	for _, line := range lines {
		d.printf("%s\n", line)
	}
	d.eventBus.Publish(events.NewInstructionsEvent(def.Name, len(lines)))

	o.State = StateDone
	return o
}

func (d *Dispatcher) printUsage() {
	d.printf("Usage: %s <scenarioName>\n", d.program)
	d.printf("\tUse \"list\" as <scenarioName> to see every known scenario\n")
}

func (d *Dispatcher) listScenarios(requested string) []string {
	names := d.registry.Names()
	d.printf("Known scenarios:\n")
	for _, name := range names {
		d.printf("\t%s\n", name)
	}
	d.eventBus.Publish(events.NewScenarioListingEvent(requested, len(names)))
	return names
}

func (d *Dispatcher) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(d.out, format, args...)
}
