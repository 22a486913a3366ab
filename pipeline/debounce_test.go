package pipeline

import (
	"testing"
	"time"

	"github.com/kbukum/reactive/cell"
	apperrors "github.com/kbukum/reactive/errors"
	"github.com/kbukum/reactive/scheduler"
)

func TestDebounce_InitialValuePassthrough(t *testing.T) {
	sched := scheduler.NewManual()
	src := cell.New("initial")

	deb, err := Debounce[string](src, 300*time.Millisecond, WithScheduler(sched))
	if err != nil {
		t.Fatal(err)
	}
	defer deb.Dispose()

	if got := deb.Read(); got != "initial" {
		t.Errorf("Read() = %q immediately after create, want %q", got, "initial")
	}
	if sched.Pending() != 0 {
		t.Errorf("pending timers = %d after create, want 0", sched.Pending())
	}
}

func TestDebounce_SingleSettleUnderBurst(t *testing.T) {
	sched := scheduler.NewManual()
	src := cell.New(0)

	deb, err := Debounce[int](src, 100*time.Millisecond, WithScheduler(sched))
	if err != nil {
		t.Fatal(err)
	}
	defer deb.Dispose()

	mutations := 0
	if _, err := deb.Subscribe(func(int) { mutations++ }); err != nil {
		t.Fatal(err)
	}

	// Burst: all gaps shorter than the delay.
	for i := 1; i <= 5; i++ {
		src.Write(i)
		sched.Advance(50 * time.Millisecond)
	}
	if mutations != 0 {
		t.Fatalf("settled mid-burst, mutations = %d", mutations)
	}

	sched.Advance(100 * time.Millisecond)

	if mutations != 1 {
		t.Errorf("mutations = %d, want exactly 1", mutations)
	}
	if got := deb.Read(); got != 5 {
		t.Errorf("Read() = %d, want last burst value 5", got)
	}
}

func TestDebounce_LivenessAfterQuiescence(t *testing.T) {
	sched := scheduler.NewManual()
	src := cell.New("")

	deb, err := Debounce[string](src, 200*time.Millisecond, WithScheduler(sched))
	if err != nil {
		t.Fatal(err)
	}
	defer deb.Dispose()

	src.Write("settled-value")
	sched.Advance(200 * time.Millisecond)

	if got := deb.Read(); got != "settled-value" {
		t.Errorf("Read() = %q after quiet period, want %q", got, "settled-value")
	}
}

func TestDebounce_ConcreteScenario(t *testing.T) {
	// delay = 300ms. t=0: source "a", pipeline created. t=50: "ab".
	// t=120: "abc". At t=500 the output must read "abc" and must never
	// have read "ab" in between.
	sched := scheduler.NewManual()
	src := cell.New("a")

	deb, err := Debounce[string](src, 300*time.Millisecond, WithScheduler(sched))
	if err != nil {
		t.Fatal(err)
	}
	defer deb.Dispose()

	if got := deb.Read(); got != "a" {
		t.Fatalf("at t=0 Read() = %q, want %q", got, "a")
	}

	var settles []string
	if _, err := deb.Subscribe(func(v string) { settles = append(settles, v) }); err != nil {
		t.Fatal(err)
	}

	sched.Advance(50 * time.Millisecond) // t=50
	src.Write("ab")
	sched.Advance(70 * time.Millisecond) // t=120
	src.Write("abc")
	sched.Advance(380 * time.Millisecond) // t=500

	if got := deb.Read(); got != "abc" {
		t.Errorf("at t=500 Read() = %q, want %q", got, "abc")
	}
	if len(settles) != 1 || settles[0] != "abc" {
		t.Errorf("settles = %v, want exactly [abc] (never ab)", settles)
	}
	if sched.Now() != 500*time.Millisecond {
		t.Fatalf("virtual time = %v, want 500ms", sched.Now())
	}
}

func TestDebounce_ZeroDelaySettlesOnNextTick(t *testing.T) {
	sched := scheduler.NewManual()
	src := cell.New("")

	deb, err := Debounce[string](src, 0, WithScheduler(sched))
	if err != nil {
		t.Fatal(err)
	}
	defer deb.Dispose()

	src.Write("x")
	if got := deb.Read(); got == "x" {
		t.Fatal("zero-delay pipeline settled synchronously")
	}

	sched.Tick()
	if got := deb.Read(); got != "x" {
		t.Errorf("Read() = %q after one tick, want %q", got, "x")
	}
}

func TestDebounce_EqualValueStillResetsTimer(t *testing.T) {
	sched := scheduler.NewManual()
	src := cell.New("same")

	deb, err := Debounce[string](src, 100*time.Millisecond, WithScheduler(sched))
	if err != nil {
		t.Fatal(err)
	}
	defer deb.Dispose()

	settles := 0
	deb.Subscribe(func(string) { settles++ })

	src.Write("same")
	sched.Advance(60 * time.Millisecond)
	// Writing the settled value again must reset the timer, not be
	// special-cased away.
	src.Write("same")
	sched.Advance(60 * time.Millisecond)
	if settles != 0 {
		t.Fatalf("settled %d times before full quiet period", settles)
	}
	sched.Advance(40 * time.Millisecond)
	if settles != 1 {
		t.Errorf("settles = %d, want 1", settles)
	}
}

func TestDebounce_AtMostOnePendingTimer(t *testing.T) {
	sched := scheduler.NewManual()
	src := cell.New(0)

	deb, err := Debounce[int](src, 100*time.Millisecond, WithScheduler(sched))
	if err != nil {
		t.Fatal(err)
	}
	defer deb.Dispose()

	for i := 1; i <= 10; i++ {
		src.Write(i)
		if got := sched.Pending(); got != 1 {
			t.Fatalf("pending timers = %d after write %d, want 1", got, i)
		}
	}
}

func TestDebounce_NoMutationAfterDispose(t *testing.T) {
	sched := scheduler.NewManual()
	src := cell.New("before")

	deb, err := Debounce[string](src, 100*time.Millisecond, WithScheduler(sched))
	if err != nil {
		t.Fatal(err)
	}

	src.Write("pending")
	deb.Dispose()

	sched.Advance(time.Hour)
	src.Write("after")
	sched.Advance(time.Hour)

	if got := deb.Read(); got != "before" {
		t.Errorf("Read() = %q after dispose, want value at dispose time %q", got, "before")
	}
	if src.Observers() != 0 {
		t.Errorf("source observers = %d after dispose, want 0", src.Observers())
	}
}

func TestDebounce_DisposeIsIdempotent(t *testing.T) {
	sched := scheduler.NewManual()
	src := cell.New(0)

	deb, err := Debounce[int](src, 100*time.Millisecond, WithScheduler(sched))
	if err != nil {
		t.Fatal(err)
	}

	src.Write(1)
	deb.Dispose()
	deb.Dispose()
	sched.Advance(time.Second)
}

func TestDebounce_OutputReadableAfterDispose(t *testing.T) {
	sched := scheduler.NewManual()
	src := cell.New(7)

	deb, err := Debounce[int](src, 50*time.Millisecond, WithScheduler(sched))
	if err != nil {
		t.Fatal(err)
	}

	src.Write(8)
	sched.Advance(50 * time.Millisecond)
	deb.Dispose()

	if got := deb.Read(); got != 8 {
		t.Errorf("Read() = %d after dispose, want 8", got)
	}
}

func TestDebounce_NegativeDelayRejected(t *testing.T) {
	src := cell.New(0)
	_, err := Debounce[int](src, -time.Millisecond)
	if err == nil {
		t.Fatal("expected error for negative delay")
	}
	if !apperrors.HasCode(err, apperrors.ErrCodeInvalidDelay) {
		t.Errorf("error = %v, want code %s", err, apperrors.ErrCodeInvalidDelay)
	}
}

func TestDebounce_DisposedSourceRejected(t *testing.T) {
	src := cell.New(0)
	src.Dispose()

	_, err := Debounce[int](src, time.Millisecond)
	if err == nil {
		t.Fatal("expected error for disposed source")
	}
	if !apperrors.HasCode(err, apperrors.ErrCodeInvalidSource) {
		t.Errorf("error = %v, want code %s", err, apperrors.ErrCodeInvalidSource)
	}
}

func TestDebounce_OverDerivedSource(t *testing.T) {
	sched := scheduler.NewManual()
	src := cell.New(1)
	squared, err := cell.Derive(src, func(n int) int { return n * n })
	if err != nil {
		t.Fatal(err)
	}

	deb, err := Debounce[int](squared, 100*time.Millisecond, WithScheduler(sched))
	if err != nil {
		t.Fatal(err)
	}
	defer deb.Dispose()

	src.Write(4)
	sched.Advance(100 * time.Millisecond)

	if got := deb.Read(); got != 16 {
		t.Errorf("Read() = %d, want 16", got)
	}
}

func TestDebounce_RealScheduler(t *testing.T) {
	src := cell.New("")
	deb, err := Debounce[string](src, 30*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	defer deb.Dispose()

	settled := make(chan string, 1)
	if _, err := deb.Subscribe(func(v string) { settled <- v }); err != nil {
		t.Fatal(err)
	}

	src.Write("a")
	src.Write("ab")
	src.Write("abc")

	select {
	case got := <-settled:
		if got != "abc" {
			t.Errorf("settled %q, want %q", got, "abc")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("pipeline never settled")
	}
}
