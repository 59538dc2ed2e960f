package strand

import (
	"strings"
	"testing"
)

// runFrames steps the runner and consumes injected input without polling
// real devices.
func runFrames(d *Diagram, n int) {
	for i := 0; i < n; i++ {
		if d.testRunner != nil {
			d.testRunner.step(d)
		}
		d.viewport.update(1.0 / 60)
		d.processInjectedInput()
	}
}

func TestLoadTestScriptErrors(t *testing.T) {
	tests := []struct {
		name, script, want string
	}{
		{"invalid json", `{`, "parse test script"},
		{"no steps", `{"steps":[]}`, "no steps"},
		{"unknown action", `{"steps":[{"action":"teleport"}]}`, "unknown action"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTestScript([]byte(tt.script))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestTestRunnerDragZoomScreenshot(t *testing.T) {
	d := newTestDiagram(t)
	mustLoad(t, d, pairGraph())

	r, err := LoadTestScript([]byte(`{"steps":[
		{"action":"drag","fromX":150,"fromY":100,"toX":170,"toY":100,"frames":3},
		{"action":"wait","frames":2},
		{"action":"zoom","scale":2},
		{"action":"screenshot","label":"after zoom"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	d.SetTestRunner(r)

	runFrames(d, 10)
	if !r.Done() {
		t.Fatal("runner not done")
	}
	if p := nodePos(t, d, "a"); !vecApprox(p, Vec2{120, 100}) {
		t.Errorf("position = %v, want (120,100)", p)
	}
	if d.Settings().ZoomLevel != 2 || d.ViewTransform().Scale != 2 {
		t.Errorf("zoom = %v / %v, want 2", d.Settings().ZoomLevel, d.ViewTransform().Scale)
	}
	if len(d.screenshotQueue) != 1 || d.screenshotQueue[0] != "after zoom" {
		t.Errorf("screenshot queue = %v", d.screenshotQueue)
	}
}

func TestTestRunnerPointerSteps(t *testing.T) {
	d := newTestDiagram(t)
	mustLoad(t, d, pairGraph())
	r, err := LoadTestScript([]byte(`{"steps":[
		{"action":"press","x":150,"y":100},
		{"action":"move","x":150,"y":130},
		{"action":"cancel"},
		{"action":"release","x":150,"y":130},
		{"action":"wheel","x":0,"y":0,"notches":1}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	log := recordDrags(d)
	d.SetTestRunner(r)
	runFrames(d, 12)

	if !r.Done() {
		t.Fatal("runner not done")
	}
	if len(log.end) != 1 || !log.end[0].Cancelled {
		t.Errorf("end events = %+v", log.end)
	}
	if p := nodePos(t, d, "a"); p != (Vec2{100, 130}) {
		t.Errorf("position = %v, want (100,130)", p)
	}
	if !approxEqual(d.ViewTransform().Scale, wheelZoomStep, 1e-9) {
		t.Errorf("Scale = %v", d.ViewTransform().Scale)
	}
}
