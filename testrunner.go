package touchtree

import (
	"fmt"
	"slices"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string   `yaml:"action"`
	X      float64  `yaml:"x,omitempty"`
	Y      float64  `yaml:"y,omitempty"`
	Frames int      `yaml:"frames,omitempty"`
	Chain  []string `yaml:"chain,omitempty"`
}

// testScript is the top-level structure for a test script.
type testScript struct {
	Steps []testStep `yaml:"steps"`
}

var knownActions = []string{"click", "press", "move", "hover", "release", "wait", "expect"}

// ExpectationFailure records an expect step whose resolved chain differed
// from the script.
type ExpectationFailure struct {
	Step int
	X, Y float64
	Want []string
	Got  []string
}

func (f ExpectationFailure) String() string {
	return fmt.Sprintf("step %d: hit at (%g, %g) = %v, want %v", f.Step, f.X, f.Y, f.Got, f.Want)
}

// TestRunner sequences injected input events and chain expectations across
// frames. Attach to a Scene via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
	failures  []ExpectationFailure
}

// LoadTestScript parses a YAML (or JSON) test script and returns a TestRunner
// ready to be attached to a Scene via SetTestRunner.
//
//	steps:
//	  - {action: click, x: 100, y: 200}
//	  - {action: wait, frames: 3}
//	  - {action: expect, x: 100, y: 200, chain: [button, panel, root]}
func LoadTestScript(data []byte) (*TestRunner, error) {
	var script testScript
	if err := decodeStrict(data, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !slices.Contains(knownActions, st.Action) {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the scene. The runner advances one
// step per Scene.Update, before input is processed.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Failures returns the expect steps that did not match, in script order.
func (r *TestRunner) Failures() []ExpectationFailure {
	return r.failures
}

// step advances the test runner by one frame. Called from Scene.Update.
func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	index := r.cursor
	st := r.steps[index]
	r.cursor++

	switch st.Action {
	case "click":
		s.InjectClick(st.X, st.Y)
	case "press":
		s.InjectPress(st.X, st.Y)
	case "move":
		s.InjectMove(st.X, st.Y)
	case "hover":
		s.InjectHover(st.X, st.Y)
	case "release":
		s.InjectRelease(st.X, st.Y)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "expect":
		got := s.HitTest(st.X, st.Y).Names()
		if !slices.Equal(got, st.Chain) {
			r.failures = append(r.failures, ExpectationFailure{
				Step: index, X: st.X, Y: st.Y, Want: st.Chain, Got: got,
			})
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
