package touchtree

import (
	"slices"
	"strings"
	"testing"
)

func TestLoadTestScript(t *testing.T) {
	data := []byte(`
steps:
  - {action: click, x: 100, y: 200}
  - {action: wait, frames: 3}
  - {action: expect, x: 100, y: 200, chain: [button, panel, root]}
`)

	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "click" || runner.steps[0].X != 100 || runner.steps[0].Y != 200 {
		t.Error("step 0 mismatch")
	}
	if runner.steps[1].Action != "wait" || runner.steps[1].Frames != 3 {
		t.Error("step 1 mismatch")
	}
	if !slices.Equal(runner.steps[2].Chain, []string{"button", "panel", "root"}) {
		t.Errorf("step 2 chain = %v", runner.steps[2].Chain)
	}
}

func TestLoadTestScriptJSON(t *testing.T) {
	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "hover", "x": 1, "y": 2}]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if runner.steps[0].Action != "hover" {
		t.Error("JSON scripts should parse as YAML")
	}
}

func TestLoadTestScript_Invalid(t *testing.T) {
	if _, err := LoadTestScript([]byte("steps: [")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoadTestScript_Empty(t *testing.T) {
	if _, err := LoadTestScript([]byte(`steps: []`)); err == nil {
		t.Error("expected error for empty steps")
	}
}

func TestLoadTestScript_UnknownKey(t *testing.T) {
	_, err := LoadTestScript([]byte(`steps: [{action: expect, x: 1, y: 1, chian: [root]}]`))
	if err == nil || !strings.Contains(err.Error(), "chian") {
		t.Errorf("err = %v, want unknown key error", err)
	}
}

func TestLoadTestScript_UnknownAction(t *testing.T) {
	_, err := LoadTestScript([]byte(`steps: [{action: screenshot}]`))
	if err == nil || !strings.Contains(err.Error(), "screenshot") {
		t.Errorf("err = %v, want unknown action error", err)
	}
}

// runScript drives the runner the way Scene.Update does, without the
// transform and camera passes.
func runScript(t *testing.T, s *Scene, runner *TestRunner, maxFrames int) int {
	t.Helper()
	s.SetTestRunner(runner)
	for frame := 1; frame <= maxFrames; frame++ {
		runner.step(s)
		s.processInput()
		if runner.Done() {
			return frame
		}
	}
	t.Fatalf("runner not done after %d frames", maxFrames)
	return 0
}

func TestRunnerStep_Click(t *testing.T) {
	s := NewScene()
	box := NewBox("box", 200, 200)
	s.Root().AddChild(box)
	updateWorldTransform(s.root, identityAffine, false)

	var clicked bool
	box.OnClick = func(ctx ClickContext) { clicked = true }

	runner, err := LoadTestScript([]byte(`steps: [{action: click, x: 50, y: 50}]`))
	if err != nil {
		t.Fatal(err)
	}
	runScript(t, s, runner, 10)

	if !clicked {
		t.Error("click step should click the box")
	}
}

func TestRunnerStep_Wait(t *testing.T) {
	s := NewScene()
	runner, err := LoadTestScript([]byte(`steps: [{action: wait, frames: 3}]`))
	if err != nil {
		t.Fatal(err)
	}
	// One frame sets the wait, two more drain it, one more finishes.
	if frames := runScript(t, s, runner, 10); frames != 4 {
		t.Errorf("finished after %d frames, want 4", frames)
	}
}

func TestRunnerExpect(t *testing.T) {
	s := NewScene()
	panel := NewBox("panel", 100, 100)
	panel.PointerEvents = PointerEventsBoxNone
	panel.AddChild(NewBox("button", 20, 20))
	s.Root().AddChild(panel)

	runner, err := LoadTestScript([]byte(`
steps:
  - {action: expect, x: 5, y: 5, chain: [button, root]}
  - {action: expect, x: 50, y: 50, chain: [panel, root]}
`))
	if err != nil {
		t.Fatal(err)
	}
	runScript(t, s, runner, 10)

	failures := runner.Failures()
	if len(failures) != 1 {
		t.Fatalf("failures = %v, want exactly one", failures)
	}
	f := failures[0]
	if f.Step != 1 || !slices.Equal(f.Got, []string{"root"}) {
		t.Errorf("failure = %+v", f)
	}
	if !strings.Contains(f.String(), "step 1") {
		t.Errorf("String() = %q", f.String())
	}
}

func TestRunnerWaitsForInjectQueue(t *testing.T) {
	s := NewScene()
	runner, err := LoadTestScript([]byte(`
steps:
  - {action: press, x: 1, y: 1}
  - {action: move, x: 2, y: 2}
  - {action: release, x: 2, y: 2}
`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)

	runner.step(s)
	if s.PendingInjections() != 1 {
		t.Fatalf("expected 1 pending injection, got %d", s.PendingInjections())
	}
	// The queue is not drained yet, so the runner must not advance.
	runner.step(s)
	if runner.cursor != 1 {
		t.Errorf("cursor = %d, want 1 while queue is pending", runner.cursor)
	}
	s.processInput()
	runner.step(s)
	if runner.cursor != 2 {
		t.Errorf("cursor = %d, want 2 after queue drained", runner.cursor)
	}
}

func TestRunnerIgnoresRealInput(t *testing.T) {
	s := NewScene()
	runner, err := LoadTestScript([]byte(`steps: [{action: wait, frames: 1}]`))
	if err != nil {
		t.Fatal(err)
	}
	var events int
	s.OnPointerMove(func(ctx PointerContext) { events++ })
	s.OnPointerEnter(func(ctx PointerContext) { events++ })

	runScript(t, s, runner, 5)
	if events != 0 {
		t.Errorf("real pointer produced %d events while scripted", events)
	}
}
