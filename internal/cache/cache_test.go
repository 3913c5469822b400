package cache

import (
	"fmt"
	"testing"
	"time"
)

func TestPutGetRoundTrip(t *testing.T) {
	t.Parallel()

	c := New[string](Options{})
	key := Key("hello world", "zh")

	if _, ok := c.Get(key); ok {
		t.Fatalf("did not expect a hit before insert")
	}

	c.Put(key, "你好，世界")
	got, ok := c.Get(key)
	if !ok || got != "你好，世界" {
		t.Fatalf("unexpected value: %q ok=%t", got, ok)
	}
	if c.Stats().Size != 1 {
		t.Fatalf("unexpected size: %d", c.Stats().Size)
	}
}

func TestKeyIsStableAndDistinct(t *testing.T) {
	t.Parallel()

	if Key("text", "zh") != Key("text", "zh") {
		t.Fatalf("expected identical keys for identical parts")
	}
	if Key("text", "zh") == Key("text", "ja") {
		t.Fatalf("expected distinct keys for distinct targets")
	}
	if Key("a", "bc") == Key("ab", "c") {
		t.Fatalf("expected part boundaries to affect the key")
	}
}

func TestTTLExpiry(t *testing.T) {
	t.Parallel()

	current := time.Unix(1_700_000_000, 0)
	c := New[int](Options{
		TTL: time.Hour,
		Now: func() time.Time { return current },
	})

	c.Put("k", 42)
	if _, ok := c.Get("k"); !ok {
		t.Fatalf("expected hit before expiry")
	}

	current = current.Add(time.Hour + time.Second)
	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected miss after expiry")
	}
	if c.Stats().Size != 0 {
		t.Fatalf("expected expired entry to be dropped, size=%d", c.Stats().Size)
	}
}

func TestEvictExpired(t *testing.T) {
	t.Parallel()

	current := time.Unix(1_700_000_000, 0)
	c := New[int](Options{
		TTL: time.Minute,
		Now: func() time.Time { return current },
	})

	c.Put("old", 1)
	current = current.Add(2 * time.Minute)
	c.Put("fresh", 2)

	if evicted := c.EvictExpired(); evicted != 1 {
		t.Fatalf("unexpected eviction count: %d", evicted)
	}
	if _, ok := c.Get("fresh"); !ok {
		t.Fatalf("expected fresh entry to survive")
	}
}

func TestCapacityEvictsOldestFirst(t *testing.T) {
	t.Parallel()

	c := New[int](Options{Capacity: 3})
	for i := 0; i < 3; i++ {
		c.Put(fmt.Sprintf("k%d", i), i)
	}
	c.Put("k3", 3)

	if _, ok := c.Get("k0"); ok {
		t.Fatalf("expected oldest entry to be evicted")
	}
	for i := 1; i <= 3; i++ {
		if _, ok := c.Get(fmt.Sprintf("k%d", i)); !ok {
			t.Fatalf("expected k%d to survive", i)
		}
	}
	if c.Stats().Size != 3 {
		t.Fatalf("unexpected size: %d", c.Stats().Size)
	}
}

func TestConcurrentAccess(t *testing.T) {
	t.Parallel()

	c := New[int](Options{Capacity: 128})
	done := make(chan struct{})
	for g := 0; g < 8; g++ {
		go func(g int) {
			defer func() { done <- struct{}{} }()
			for i := 0; i < 200; i++ {
				key := Key(fmt.Sprintf("item-%d", i%32))
				c.Put(key, g*1000+i)
				c.Get(key)
			}
		}(g)
	}
	for g := 0; g < 8; g++ {
		<-done
	}
	if size := c.Stats().Size; size > 128 {
		t.Fatalf("capacity exceeded: %d", size)
	}
}
