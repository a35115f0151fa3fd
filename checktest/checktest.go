package checktest

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/kr/pretty"

	"github.com/simhayoz/dotty"
	"github.com/simhayoz/dotty/object"
	"github.com/simhayoz/dotty/semantics"
)

// Result holds the outcome of one checker run.
type Result struct {
	Checker     *dotty.Checker
	Diagnostics []*object.Error
}

// Check runs the checker over the given classes and returns every
// surfaced diagnostic.
func Check(t *testing.T, classes ...*semantics.Class) *Result {
	t.Helper()
	return CheckWith(t, nil, classes...)
}

// CheckWith runs the checker with extra options, on top of a quiet
// test logger and a collecting reporter.
func CheckWith(t *testing.T, options []dotty.Option, classes ...*semantics.Class) *Result {
	t.Helper()

	var collected []*object.Error
	opts := []dotty.Option{
		dotty.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		dotty.WithReporter(dotty.ReporterFunc(func(err *object.Error) {
			collected = append(collected, err)
		})),
	}
	opts = append(opts, options...)

	c := dotty.NewChecker(opts...)
	for _, cls := range classes {
		c.AddTask(cls)
	}
	diags, err := c.Check(context.Background())
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(diags) != len(collected) {
		t.Fatalf("reporter saw %d diagnostics, Check returned %d", len(collected), len(diags))
	}
	return &Result{Checker: c, Diagnostics: diags}
}

// Kinds returns the diagnostic kinds in surfacing order.
func (r *Result) Kinds() []object.ErrorKind {
	out := make([]object.ErrorKind, len(r.Diagnostics))
	for i, d := range r.Diagnostics {
		out[i] = d.Kind
	}
	return out
}

// ExpectKinds fails the test unless the surfaced kinds match exactly.
func (r *Result) ExpectKinds(t *testing.T, want ...object.ErrorKind) {
	t.Helper()
	if diff := cmp.Diff(want, r.Kinds(), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("diagnostic kinds mismatch (-want +got):\n%s\ndiagnostics:\n%s", diff, r.dump())
	}
}

// ExpectClean fails the test if anything was surfaced.
func (r *Result) ExpectClean(t *testing.T) {
	t.Helper()
	if len(r.Diagnostics) != 0 {
		t.Errorf("expected no diagnostics, got %d:\n%s", len(r.Diagnostics), r.dump())
	}
}

func (r *Result) dump() string {
	out := ""
	for _, d := range r.Diagnostics {
		out += pretty.Sprintf("- %v\n  trace: %s\n", d.Error(), d.CallPath())
	}
	return out
}
