package errors

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestKitErrorString(t *testing.T) {
	err := &KitError{
		Op:   "chart.ChartController.Attach",
		Kind: KindEngine,
		Err:  fmt.Errorf("engine refused init"),
	}
	got := err.Error()
	if got == "" {
		t.Error("expected non-empty error string")
	}
	if !strings.Contains(got, "[engine]") {
		t.Errorf("error string %q should contain kind tag", got)
	}
}

func TestKitErrorUnwrap(t *testing.T) {
	inner := fmt.Errorf("boom")
	err := &KitError{Op: "timing.ChunkScheduler", Kind: KindTransform, Err: inner}
	if err.Unwrap() != inner {
		t.Error("Unwrap should return the underlying error")
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindEngine, "engine"},
		{KindTheme, "theme"},
		{KindTransform, "transform"},
		{KindConfig, "config"},
		{KindPanic, "panic"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{
		Value:     "test panic",
		Timestamp: time.Now(),
	}
	got := err.Error()
	want := "panic: test panic"
	if got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestPanicErrorStringWithOp(t *testing.T) {
	err := &PanicError{
		Op:        "timing.ChunkScheduler",
		Value:     "test panic",
		Timestamp: time.Now(),
	}
	got := err.Error()
	want := "panic in timing.ChunkScheduler: test panic"
	if got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

// captureHandler records everything it receives.
type captureHandler struct {
	errors []*KitError
	panics []*PanicError
}

func (h *captureHandler) HandleError(err *KitError)   { h.errors = append(h.errors, err) }
func (h *captureHandler) HandlePanic(err *PanicError) { h.panics = append(h.panics, err) }

func TestReportSetsTimestamp(t *testing.T) {
	h := &captureHandler{}
	SetHandler(h)
	defer SetHandler(nil)

	Report(&KitError{Op: "test.op", Kind: KindConfig, Err: fmt.Errorf("bad")})

	if len(h.errors) != 1 {
		t.Fatalf("expected 1 reported error, got %d", len(h.errors))
	}
	if h.errors[0].Timestamp.IsZero() {
		t.Error("Report should stamp a zero Timestamp")
	}
}

func TestReportNilIsNoop(t *testing.T) {
	h := &captureHandler{}
	SetHandler(h)
	defer SetHandler(nil)

	Report(nil)
	ReportPanic(nil)

	if len(h.errors) != 0 || len(h.panics) != 0 {
		t.Error("nil reports should not reach the handler")
	}
}

func TestRecoverReportsPanic(t *testing.T) {
	h := &captureHandler{}
	SetHandler(h)
	defer SetHandler(nil)

	func() {
		defer Recover("test.recover")
		panic("kaboom")
	}()

	if len(h.panics) != 1 {
		t.Fatalf("expected 1 reported panic, got %d", len(h.panics))
	}
	if h.panics[0].Op != "test.recover" {
		t.Errorf("Op = %q, want %q", h.panics[0].Op, "test.recover")
	}
	if h.panics[0].StackTrace == "" {
		t.Error("expected a captured stack trace")
	}
}

func TestRecoverWithCallback(t *testing.T) {
	h := &captureHandler{}
	SetHandler(h)
	defer SetHandler(nil)

	var got any
	func() {
		defer RecoverWithCallback("test.recover", func(r any) { got = r })
		panic("kaboom")
	}()

	if got != "kaboom" {
		t.Errorf("callback value = %v, want %q", got, "kaboom")
	}
}
