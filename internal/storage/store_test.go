package storage

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/flysim/internal/dynamo"
	"github.com/san-kum/flysim/internal/quat"
	"github.com/san-kum/flysim/internal/sim"
)

func testResult() *sim.Result {
	q := quat.FromEuler(0.1, 0.2, 0.3)
	return &sim.Result{
		Vehicles: []string{"plane", "drone"},
		Times:    []float64{0, 0.1},
		Samples: [][]dynamo.Sample{
			{
				{Time: 0, Vehicle: 0, Orientation: quat.Identity()},
				{Time: 0.1, Vehicle: 0, Position: mgl64.Vec3{0, 0, 1.5}, Orientation: q,
					Euler: q.ToEuler(true), Nu: dynamo.Vec6{0, 0, 15}, Tau: dynamo.Vec6{0, 0, 297}},
			},
			{
				{Time: 0, Vehicle: 1, Orientation: quat.Identity()},
				{Time: 0.1, Vehicle: 1, Position: mgl64.Vec3{0, 0.25, 0}, Orientation: quat.Identity(),
					Tau: dynamo.Vec6{0, 0.495}},
			},
		},
		StepsTaken: 1,
		Metrics:    map[string]float64{"control_effort": 1.5},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(RunMetadata{Dt: 0.1, Duration: 0.1, Script: "takeoff"}, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "plane-drone_") {
		t.Errorf("run id = %q", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Script != "takeoff" || meta.Steps != 1 || len(meta.Vehicles) != 2 {
		t.Errorf("meta = %+v", meta)
	}
	if meta.Metrics["control_effort"] != 1.5 {
		t.Errorf("expected control_effort 1.5, got %f", meta.Metrics["control_effort"])
	}

	plane, err := st.LoadStates(runID, 0)
	if err != nil {
		t.Fatalf("load states failed: %v", err)
	}
	if len(plane) != 2 {
		t.Fatalf("expected 2 plane samples, got %d", len(plane))
	}
	want := testResult().Samples[0][1]
	got := plane[1]
	if got.Position != want.Position || got.Tau != want.Tau || got.Nu != want.Nu {
		t.Errorf("sample = %+v, want %+v", got, want)
	}
	if !got.Orientation.ApproxEqual(want.Orientation, 1e-6) {
		t.Errorf("orientation = %v, want %v", got.Orientation, want.Orientation)
	}

	drone, err := st.LoadStates(runID, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(drone) != 2 || drone[1].Position[1] != 0.25 {
		t.Errorf("drone samples = %+v", drone)
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	for i := 0; i < 2; i++ {
		if _, err := st.Save(RunMetadata{Dt: 0.1, Duration: 0.1}, testResult()); err != nil {
			t.Fatal(err)
		}
	}

	runs, err = st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestListMissingDir(t *testing.T) {
	runs, err := New(t.TempDir() + "/nope").List()
	if err != nil || len(runs) != 0 {
		t.Errorf("runs = %v, err = %v", runs, err)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, testResult()); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected header plus 4 rows, got %d", len(lines))
	}
	if lines[0] != strings.Join(Columns, ",") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[3], "0.100000,0,") || !strings.HasPrefix(lines[4], "0.100000,1,") {
		t.Errorf("rows not ordered by step then vehicle: %q %q", lines[3], lines[4])
	}
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportJSON(&buf, 0.1, 0.1, testResult()); err != nil {
		t.Fatal(err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(data.Tracks) != 2 || data.Tracks[1].Name != "drone" {
		t.Fatalf("tracks = %+v", data.Tracks)
	}
	if data.Tracks[0].Position[1][2] != 1.5 {
		t.Errorf("plane position = %v", data.Tracks[0].Position)
	}
	if w := data.Tracks[1].Orientation[0][3]; math.Abs(w-1) > 1e-12 {
		t.Errorf("identity w = %v", w)
	}
}
