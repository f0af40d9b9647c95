package container_test

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/km-arc/go-ioc/container"
)

// ── Queued configuration ──────────────────────────────────────────────────────

func TestConfigure_AppliedInOrderWithReplacement(t *testing.T) {
	c := container.New()
	c.Register("n", func() int { return 1 }, nil)

	// A then B: (1+1)*10 = 20 proves ordering and replacement threading.
	c.Configure("n", func(n int) int { return n + 1 }, nil)
	c.Configure("n", func(n int) int { return n * 10 }, nil)

	got, err := c.Get("n")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != 20 {
		t.Errorf("got %v, want 20", got)
	}
}

func TestConfigure_AppliedExactlyOnce(t *testing.T) {
	c := container.New()
	c.Register("n", func() int { return 1 }, nil)

	applied := 0
	c.Configure("n", func(n int) int { applied++; return n + 1 }, nil)

	c.Get("n")
	c.Get("n")
	got, _ := c.Get("n")

	if applied != 1 {
		t.Errorf("configuration applied %d times, want 1", applied)
	}
	if got != 2 {
		t.Errorf("got %v, want 2", got)
	}
}

func TestConfigure_MutateInPlace_NoReturn(t *testing.T) {
	c := container.New()
	type box struct{ n int }
	c.Register("b", func() *box { return &box{n: 1} }, nil)

	c.Configure("b", func(b *box) { b.n = 99 }, nil)

	got := container.MustResolve[*box](c, "b")
	if got.n != 99 {
		t.Errorf("n: got %d, want mutation to 99", got.n)
	}
}

func TestConfigure_ExtraParamsResolved(t *testing.T) {
	c := container.New()
	c.Register("msg", func() string { return "hey" }, nil)

	// Slot 0 is force-bound to the component value; positional keys in the
	// entry's map keep their declared positions.
	c.Configure("msg", func(msg, sep, suffix string) string {
		return msg + sep + suffix
	}, container.Params{1: "-", 2: container.Deferred(func() (any, error) { return "done", nil })})

	got, err := c.Get("msg")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "hey-done" {
		t.Errorf("got %v, want 'hey-done'", got)
	}
}

// ── Active components ─────────────────────────────────────────────────────────

func TestConfigure_ActiveComponent_AppliesImmediately(t *testing.T) {
	c := container.New()
	c.Set("x", 10)

	ran := false
	err := c.Configure("x", func(n int) { ran = true }, nil)
	if err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if !ran {
		t.Error("configuring an active component must apply before Configure returns")
	}
}

func TestConfigure_ActiveComponent_ReplacementStored(t *testing.T) {
	c := container.New()
	c.Set("x", 10)

	c.Configure("x", func(n int) int { return n * 2 }, nil)

	if got, _ := c.Get("x"); got != 20 {
		t.Errorf("got %v, want replacement 20", got)
	}
}

// ── Errors ────────────────────────────────────────────────────────────────────

func TestConfigure_UnknownName_NotFound(t *testing.T) {
	c := container.New()
	err := c.Configure("ghost", func(v any) {}, nil)
	if !errors.Is(err, container.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestConfigure_NoParameters_InvalidArgument(t *testing.T) {
	c := container.New()
	c.Set("x", 1)
	err := c.Configure("x", func() {}, nil)
	if !errors.Is(err, container.ErrInvalidArgument) {
		t.Errorf("got %v, want ErrInvalidArgument", err)
	}
}
