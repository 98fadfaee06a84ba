package tertest

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/skiy/tertest/logging"
)

// DefaultDelay is how long the detached runner waits before invoking the
// probe surfaces, leaving the instrumentation tool time to attach.
const DefaultDelay = 3 * time.Second

// Runner invokes every probe surface once and logs expected versus actual
// results so a human can confirm whether interception took effect.
type Runner struct {
	log   *slog.Logger
	delay time.Duration
	once  sync.Once
}

// NewRunner creates a Runner writing to log. A nil log falls back to the
// default logger; a non-positive delay falls back to DefaultDelay.
func NewRunner(log *slog.Logger, delay time.Duration) *Runner {
	if log == nil {
		log = slog.Default()
	}
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Runner{log: log, delay: delay}
}

// RunAll calls each probe surface exactly once, in fixed order, logging the
// expected result before each call and the observed result after. The hook
// commentary in the actual-result lines names the values the external tool
// is expected to substitute.
func (runner *Runner) RunAll() {
	runner.log.Info("--- Running Native Tests ---")

	runner.log.Info("[Test 1] Calling test_simple_function(5, 7). Expected result: 12")
	sum := Add(5, 7)
	runner.log.Info(fmt.Sprintf("[Test 1] Actual result: %d. (Hook should change this to 35)", sum))

	data := TestData{ID: 10, Value: 42.5}
	runner.log.Info("[Test 2] Calling test_struct_by_pointer. Initial values: id=10, value=42.5")
	runner.log.Info("[Test 2] Expected values after call: id=11, value=85.0")
	MutateData(&data)
	runner.log.Info(fmt.Sprintf("[Test 2] Actual values after call: id=%d, value=%f. (Hook should change these to -20, -3.14)", data.ID, data.Value))

	var out int32
	runner.log.Info("[Test 3] Calling test_pointer_args. Expected out_val: 500")
	Echo("Hello from Go", &out)
	runner.log.Info(fmt.Sprintf("[Test 3] Actual out_val: %d. (Hook should change this to 999)", out))

	object := NewTestObject(42)
	runner.log.Info("[Test 4] Calling instance_method(10). Expected result: 420")
	product := object.InstanceMethod(10)
	runner.log.Info(fmt.Sprintf("[Test 4] Actual result: %d. (Hook should change this to 1337)", product))

	runner.log.Info("[Test 5] Calling static_method(). Expected result: 'Original static string'")
	static := StaticString()
	runner.log.Info(fmt.Sprintf("[Test 5] Actual result: '%s'. (Hook should change this)", static))

	runner.log.Info("--- Native Tests Finished ---")
}

// Start spawns one detached goroutine that waits the configured delay, runs
// RunAll once, and exits. Start returns immediately and later calls are
// no-ops. There is no cancellation: once started, the run completes or dies
// with the process.
func (runner *Runner) Start() {
	runner.once.Do(func() {
		runner.log.Info("probe library loaded, spawning test runner")
		go func() {
			runner.log.Info("test runner started, waiting", "delay", runner.delay)
			time.Sleep(runner.delay)
			runner.log.Info("starting native tests now")
			runner.RunAll()
		}()
	})
}

var initOnce sync.Once

// Initialize is the entry point the host harness resolves by name after
// loading the built artifact. It starts exactly one delayed probe run, no
// matter how often it is called, and never blocks.
func Initialize() {
	initOnce.Do(func() {
		NewRunner(logging.New(logging.Config{}), DefaultDelay).Start()
	})
}
