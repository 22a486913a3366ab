package cell

import (
	"testing"

	apperrors "github.com/kbukum/reactive/errors"
)

func TestReadInitial(t *testing.T) {
	c := New("hello")
	if got := c.Read(); got != "hello" {
		t.Errorf("Read() = %q, want %q", got, "hello")
	}
}

func TestWriteNotifiesSynchronously(t *testing.T) {
	c := New(0)
	var seen []int
	if _, err := c.Subscribe(func(v int) { seen = append(seen, v) }); err != nil {
		t.Fatal(err)
	}

	c.Write(1)
	c.Write(2)

	if len(seen) != 2 || seen[0] != 1 || seen[1] != 2 {
		t.Errorf("seen = %v, want [1 2]", seen)
	}
}

func TestWriteEqualValueStillNotifies(t *testing.T) {
	c := New("a")
	count := 0
	if _, err := c.Subscribe(func(string) { count++ }); err != nil {
		t.Fatal(err)
	}

	c.Write("a")
	c.Write("a")

	if count != 2 {
		t.Errorf("notification count = %d, want 2 (change events, not value identity)", count)
	}
}

func TestSubscriptionOrder(t *testing.T) {
	c := New(0)
	var order []string
	c.Subscribe(func(int) { order = append(order, "first") })
	c.Subscribe(func(int) { order = append(order, "second") })
	c.Subscribe(func(int) { order = append(order, "third") })

	c.Write(1)

	want := []string{"first", "second", "third"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestUnsubscribeRemovesOneObserver(t *testing.T) {
	c := New(0)
	first, second := 0, 0
	unsub, _ := c.Subscribe(func(int) { first++ })
	c.Subscribe(func(int) { second++ })

	c.Write(1)
	unsub()
	c.Write(2)

	if first != 1 {
		t.Errorf("first = %d, want 1", first)
	}
	if second != 2 {
		t.Errorf("second = %d, want 2", second)
	}
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	c := New(0)
	c.Subscribe(func(int) {})
	unsub, _ := c.Subscribe(func(int) {})

	unsub()
	unsub()

	if got := c.Observers(); got != 1 {
		t.Errorf("observers = %d, want 1", got)
	}
}

func TestObserverCanUnsubscribeDuringNotify(t *testing.T) {
	c := New(0)
	var unsub Unsubscribe
	count := 0
	unsub, _ = c.Subscribe(func(int) {
		count++
		unsub()
	})

	c.Write(1)
	c.Write(2)

	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestObserverCanReadDuringNotify(t *testing.T) {
	c := New(0)
	var observed int
	c.Subscribe(func(int) { observed = c.Read() })

	c.Write(7)
	if observed != 7 {
		t.Errorf("observed = %d, want 7", observed)
	}
}

func TestDisposeDropsObserversAndWrites(t *testing.T) {
	c := New(1)
	count := 0
	c.Subscribe(func(int) { count++ })

	c.Dispose()
	c.Write(2)

	if count != 0 {
		t.Errorf("observer fired after dispose, count = %d", count)
	}
	if got := c.Read(); got != 1 {
		t.Errorf("Read() = %d, want last pre-dispose value 1", got)
	}
	if c.Observers() != 0 {
		t.Errorf("observers = %d, want 0", c.Observers())
	}
}

func TestDisposeIsIdempotent(t *testing.T) {
	c := New(0)
	c.Dispose()
	c.Dispose()
	if !c.Disposed() {
		t.Error("Disposed() = false after Dispose")
	}
}

func TestSubscribeAfterDisposeFails(t *testing.T) {
	c := New(0)
	c.Dispose()

	_, err := c.Subscribe(func(int) {})
	if err == nil {
		t.Fatal("expected error subscribing to disposed cell")
	}
	if !apperrors.HasCode(err, apperrors.ErrCodeSourceDisposed) {
		t.Errorf("error = %v, want code %s", err, apperrors.ErrCodeSourceDisposed)
	}
}
