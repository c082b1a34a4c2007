package testdef

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/uipilot-dev/uipilot/pkg/core"
	"github.com/uipilot-dev/uipilot/pkg/step"
)

func makeStep(t *testing.T, id string, values map[string]interface{}) step.Definition {
	t.Helper()
	def, err := step.DefaultRegistry().Create(step.Record{ID: id, Values: values})
	if err != nil {
		t.Fatalf("Create(%s) failed: %v", id, err)
	}
	return def
}

func threeStepTest(t *testing.T) *Test {
	t.Helper()
	tst := New("login flow", "smoke", "1")
	tst.Append(makeStep(t, step.IDTap, map[string]interface{}{"testableId": "a"}))
	tst.Append(makeStep(t, step.IDTap, map[string]interface{}{"testableId": "b"}))
	tst.Append(makeStep(t, step.IDTap, map[string]interface{}{"testableId": "c"}))
	return tst
}

func targets(tst *Test) []string {
	ids := make([]string, 0, tst.Len())
	for _, rec := range tst.Records() {
		ids = append(ids, rec.Values["testableId"].(string))
	}
	return ids
}

func assertOrder(t *testing.T, tst *Test, want ...string) {
	t.Helper()
	got := targets(tst)
	if len(got) != len(want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestAuthoringOperations(t *testing.T) {
	tst := threeStepTest(t)
	assertOrder(t, tst, "a", "b", "c")

	if err := tst.Move(0, 2); err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	assertOrder(t, tst, "b", "c", "a")

	if err := tst.Move(2, 0); err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	assertOrder(t, tst, "a", "b", "c")

	if err := tst.RemoveAt(1); err != nil {
		t.Fatalf("RemoveAt failed: %v", err)
	}
	assertOrder(t, tst, "a", "c")

	if err := tst.RemoveAt(5); err == nil {
		t.Error("RemoveAt out of range did not fail")
	}
	if err := tst.Move(0, 9); err == nil {
		t.Error("Move out of range did not fail")
	}
	if err := tst.Move(1, 1); err != nil {
		t.Errorf("Move onto itself failed: %v", err)
	}
}

func TestLoadYAML(t *testing.T) {
	src := `
name: checkout
suite: regression
version: "2"
steps:
  - id: tap
    values:
      testableId: cart_button
  - id: assert_value
    values:
      testableId: total
      value: "10.00"
      caseSensitive: false
  - id: sleep
    values:
      duration: 2
`
	tst, err := Load(strings.NewReader(src), step.DefaultRegistry())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if tst.Name != "checkout" || tst.Suite != "regression" || tst.Version != "2" {
		t.Errorf("metadata = %q/%q/%q", tst.Name, tst.Suite, tst.Version)
	}
	if tst.Len() != 3 {
		t.Fatalf("loaded %d steps, want 3", tst.Len())
	}
	if recs := tst.Records(); recs[0].ID != step.IDTap || recs[2].ID != step.IDSleep {
		t.Errorf("step order lost: %v, %v", recs[0].ID, recs[2].ID)
	}
}

func TestLoadJSON(t *testing.T) {
	src := `{"name": "quick", "steps": [{"id": "comment", "values": {"text": "hi"}}]}`
	tst, err := Load(strings.NewReader(src), step.DefaultRegistry())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if tst.Len() != 1 {
		t.Fatalf("loaded %d steps, want 1", tst.Len())
	}
}

func TestLoadFailsFast(t *testing.T) {
	t.Run("unknown step type", func(t *testing.T) {
		src := "name: bad\nsteps:\n  - id: teleport\n    values: {}\n"
		_, err := Load(strings.NewReader(src), step.DefaultRegistry())
		if !errors.Is(err, core.ErrUnknownStepType) {
			t.Errorf("err = %v, want ErrUnknownStepType", err)
		}
	})

	t.Run("malformed step", func(t *testing.T) {
		src := "name: bad\nsteps:\n  - id: tap\n    values: {}\n"
		_, err := Load(strings.NewReader(src), step.DefaultRegistry())
		if !errors.Is(err, core.ErrMalformedStep) {
			t.Errorf("err = %v, want ErrMalformedStep", err)
		}
	})

	t.Run("missing name", func(t *testing.T) {
		src := "steps: []\n"
		if _, err := Load(strings.NewReader(src), step.DefaultRegistry()); err == nil {
			t.Error("nameless document loaded")
		}
	})

	t.Run("not yaml", func(t *testing.T) {
		if _, err := Load(strings.NewReader("{{{"), step.DefaultRegistry()); err == nil {
			t.Error("garbage document loaded")
		}
	})
}

func TestWriteRoundTrip(t *testing.T) {
	tst := threeStepTest(t)

	var buf bytes.Buffer
	if err := tst.Write(&buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	loaded, err := Load(&buf, step.DefaultRegistry())
	if err != nil {
		t.Fatalf("reloading written test failed: %v", err)
	}
	if loaded.Name != tst.Name || loaded.Len() != tst.Len() {
		t.Errorf("round trip lost shape: %q/%d vs %q/%d",
			loaded.Name, loaded.Len(), tst.Name, tst.Len())
	}
	assertOrder(t, loaded, "a", "b", "c")
}
