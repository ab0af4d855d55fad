package fileio

import (
	"context"
	"errors"
	"io/fs"
	"testing"
	"time"

	"github.com/kestrel-editor/kestrel/internal/vfs"
)

// stubPicker returns canned answers, optionally blocking until
// released so tests can control resolution order.
type stubPicker struct {
	openPath string
	openErr  error
	savePath string
	saveErr  error
	gate     chan struct{}
}

func (p *stubPicker) wait() {
	if p.gate != nil {
		<-p.gate
	}
}

func (p *stubPicker) PickOpen(string) (string, error) {
	p.wait()
	return p.openPath, p.openErr
}

func (p *stubPicker) PickSave(string) (string, error) {
	p.wait()
	return p.savePath, p.saveErr
}

func receiveOutcome(t *testing.T, results <-chan Outcome) Outcome {
	t.Helper()
	select {
	case out := <-results:
		return out
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for an outcome")
		return nil
	}
}

func TestOpenSuccess(t *testing.T) {
	mem := vfs.NewMemFS()
	_ = mem.WriteFile("/a.txt", []byte("hello"))
	results := make(chan Outcome, 1)
	orch := New(mem, &stubPicker{openPath: "/a.txt"}, results)

	if err := orch.Open(context.Background(), 7); err != nil {
		t.Fatalf("open failed to start: %v", err)
	}

	out := receiveOutcome(t, results)
	opened, ok := out.(Opened)
	if !ok {
		t.Fatalf("expected Opened, got %T", out)
	}
	if opened.Path != "/a.txt" || opened.Text != "hello" {
		t.Errorf("unexpected outcome %v", opened)
	}
	if opened.OutcomeToken() != 7 {
		t.Errorf("token not echoed, got %d", opened.OutcomeToken())
	}

	orch.Settle(out)
	if orch.State(OpOpen) != StateApplied {
		t.Errorf("expected applied state, got %s", orch.State(OpOpen))
	}
}

func TestOpenDialogClosed(t *testing.T) {
	results := make(chan Outcome, 1)
	orch := New(vfs.NewMemFS(), &stubPicker{openErr: ErrDialogClosed}, results)

	_ = orch.Open(context.Background(), 0)

	out := receiveOutcome(t, results)
	failed, ok := out.(Failed)
	if !ok {
		t.Fatalf("expected Failed, got %T", out)
	}
	if !errors.Is(failed.Err, ErrDialogClosed) {
		t.Errorf("expected ErrDialogClosed, got %v", failed.Err)
	}

	orch.Settle(out)
	if orch.State(OpOpen) != StateFailed {
		t.Errorf("expected failed state, got %s", orch.State(OpOpen))
	}
}

func TestOpenMissingFileClassified(t *testing.T) {
	results := make(chan Outcome, 1)
	orch := New(vfs.NewMemFS(), &stubPicker{openPath: "/missing"}, results)

	_ = orch.Open(context.Background(), 0)

	failed := receiveOutcome(t, results).(Failed)
	var ioErr *IOError
	if !errors.As(failed.Err, &ioErr) {
		t.Fatalf("expected *IOError, got %v", failed.Err)
	}
	if ioErr.Kind != KindNotFound {
		t.Errorf("expected not-found kind, got %s", ioErr.Kind)
	}
}

func TestSaveWithKnownPathSkipsPicker(t *testing.T) {
	mem := vfs.NewMemFS()
	results := make(chan Outcome, 1)
	// A picker that would fail if consulted.
	orch := New(mem, &stubPicker{saveErr: errors.New("picker should not run")}, results)

	_ = orch.Save(context.Background(), "/known.txt", "content", 3)

	out := receiveOutcome(t, results)
	saved, ok := out.(Saved)
	if !ok {
		t.Fatalf("expected Saved, got %T", out)
	}
	if saved.Path != "/known.txt" {
		t.Errorf("unexpected path %q", saved.Path)
	}
	data, err := mem.ReadFile("/known.txt")
	if err != nil || string(data) != "content" {
		t.Errorf("file not written: %v %q", err, data)
	}
}

func TestSaveWithoutPathUsesPicker(t *testing.T) {
	mem := vfs.NewMemFS()
	results := make(chan Outcome, 1)
	orch := New(mem, &stubPicker{savePath: "/picked.txt"}, results)

	_ = orch.Save(context.Background(), "", "body", 0)

	saved := receiveOutcome(t, results).(Saved)
	if saved.Path != "/picked.txt" {
		t.Errorf("expected picked path, got %q", saved.Path)
	}
	if !mem.Exists("/picked.txt") {
		t.Error("picked file should exist after save")
	}
}

func TestSaveCancelledPicker(t *testing.T) {
	mem := vfs.NewMemFS()
	results := make(chan Outcome, 1)
	orch := New(mem, &stubPicker{saveErr: ErrDialogClosed}, results)

	_ = orch.Save(context.Background(), "", "body", 0)

	failed := receiveOutcome(t, results).(Failed)
	if failed.Operation != OpSave {
		t.Errorf("expected save failure, got %s", failed.Operation)
	}
	if !errors.Is(failed.Err, ErrDialogClosed) {
		t.Errorf("expected ErrDialogClosed, got %v", failed.Err)
	}
	if mem.Exists("/picked.txt") {
		t.Error("nothing should be written after cancellation")
	}
}

func TestSavePermissionDenied(t *testing.T) {
	mem := vfs.NewMemFS()
	mem.FailWrites("/ro.txt", fs.ErrPermission)
	results := make(chan Outcome, 1)
	orch := New(mem, &stubPicker{}, results)

	_ = orch.Save(context.Background(), "/ro.txt", "body", 0)

	failed := receiveOutcome(t, results).(Failed)
	var ioErr *IOError
	if !errors.As(failed.Err, &ioErr) {
		t.Fatalf("expected *IOError, got %v", failed.Err)
	}
	if ioErr.Kind != KindPermission {
		t.Errorf("expected permission kind, got %s", ioErr.Kind)
	}
}

func TestSecondOpenRejectedWhileRunning(t *testing.T) {
	gate := make(chan struct{})
	picker := &stubPicker{openPath: "/a", gate: gate}
	mem := vfs.NewMemFS()
	_ = mem.WriteFile("/a", []byte("x"))
	results := make(chan Outcome, 2)
	orch := New(mem, picker, results)

	if err := orch.Open(context.Background(), 0); err != nil {
		t.Fatalf("first open should start: %v", err)
	}
	if err := orch.Open(context.Background(), 0); !errors.Is(err, ErrOpInFlight) {
		t.Errorf("second open should be rejected, got %v", err)
	}

	// Open and Save may be in flight concurrently.
	if err := orch.Save(context.Background(), "/b", "y", 0); err != nil {
		t.Errorf("save should start while open is in flight: %v", err)
	}

	close(gate)
	receiveOutcome(t, results)
	receiveOutcome(t, results)
}

func TestOpStateLifecycle(t *testing.T) {
	mem := vfs.NewMemFS()
	_ = mem.WriteFile("/a", []byte("x"))
	gate := make(chan struct{})
	results := make(chan Outcome, 1)
	orch := New(mem, &stubPicker{openPath: "/a", gate: gate}, results)

	if orch.State(OpOpen) != StateIdle {
		t.Errorf("expected idle before issue, got %s", orch.State(OpOpen))
	}

	_ = orch.Open(context.Background(), 0)
	if orch.State(OpOpen) != StateRunning {
		t.Errorf("expected running after issue, got %s", orch.State(OpOpen))
	}

	close(gate)
	out := receiveOutcome(t, results)
	orch.Settle(out)
	if orch.State(OpOpen) != StateApplied {
		t.Errorf("expected applied after settle, got %s", orch.State(OpOpen))
	}
}

func TestKindOfClassification(t *testing.T) {
	tests := []struct {
		err  error
		want ErrorKind
	}{
		{fs.ErrNotExist, KindNotFound},
		{fs.ErrPermission, KindPermission},
		{fs.ErrExist, KindExists},
		{errors.New("anything"), KindOther},
	}

	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.want {
			t.Errorf("KindOf(%v) = %s, want %s", tt.err, got, tt.want)
		}
	}
}
