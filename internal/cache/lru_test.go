package cache

import (
	"sync"
	"testing"
	"time"
)

func TestNewLRUCache(t *testing.T) {
	cache := NewLRUCache[string](10)

	if cache == nil {
		t.Fatal("expected cache to be created")
	}
	if cache.capacity != 10 {
		t.Errorf("expected capacity 10, got %d", cache.capacity)
	}
	if cache.Len() != 0 {
		t.Errorf("expected empty cache, got length %d", cache.Len())
	}
}

func TestLRUCache_SetAndGet(t *testing.T) {
	cache := NewLRUCache[string](10)

	cache.Set("key1", "value1")

	value, found := cache.Get("key1")
	if !found {
		t.Error("expected to find key1")
	}
	if value != "value1" {
		t.Errorf("expected 'value1', got '%v'", value)
	}
}

func TestLRUCache_GetNotFound(t *testing.T) {
	cache := NewLRUCache[string](10)

	value, found := cache.Get("nonexistent")
	if found {
		t.Error("expected not to find nonexistent key")
	}
	if value != "" {
		t.Errorf("expected zero value, got '%v'", value)
	}
}

func TestLRUCache_UpdateExisting(t *testing.T) {
	cache := NewLRUCache[string](10)

	cache.Set("key1", "value1")
	cache.Set("key1", "value2")

	value, found := cache.Get("key1")
	if !found {
		t.Error("expected to find key1")
	}
	if value != "value2" {
		t.Errorf("expected 'value2', got '%v'", value)
	}
	if cache.Len() != 1 {
		t.Errorf("expected length 1, got %d", cache.Len())
	}
}

func TestLRUCache_Eviction(t *testing.T) {
	cache := NewLRUCache[string](3)

	cache.Set("key1", "value1")
	cache.Set("key2", "value2")
	cache.Set("key3", "value3")
	cache.Set("key4", "value4")

	if cache.Len() != 3 {
		t.Errorf("expected length 3 after eviction, got %d", cache.Len())
	}

	if _, found := cache.Get("key1"); found {
		t.Error("expected key1 to be evicted (LRU)")
	}
	if _, found := cache.Get("key4"); !found {
		t.Error("expected key4 to be present")
	}
}

func TestLRUCache_LRUOrder(t *testing.T) {
	cache := NewLRUCache[string](3)

	cache.Set("key1", "value1")
	cache.Set("key2", "value2")
	cache.Set("key3", "value3")

	cache.Get("key1")

	cache.Set("key4", "value4")

	if _, found := cache.Get("key1"); !found {
		t.Error("expected key1 to still be present (recently accessed)")
	}
	if _, found := cache.Get("key2"); found {
		t.Error("expected key2 to be evicted (LRU)")
	}
}

func TestLRUCache_Expiry(t *testing.T) {
	cache := NewLRUCache[int](10)
	now := time.Unix(1000, 0)
	cache.now = func() time.Time { return now }

	cache.SetWithTTL("short", 1, time.Minute)
	cache.Set("forever", 2)

	now = now.Add(2 * time.Minute)

	if _, found := cache.Get("short"); found {
		t.Error("expected expired entry to be dropped")
	}
	if cache.Len() != 1 {
		t.Errorf("expected expired entry to be removed, got length %d", cache.Len())
	}
	if v, found := cache.Get("forever"); !found || v != 2 {
		t.Errorf("expected non-expiring entry, got %v %v", v, found)
	}
}

func TestLRUCache_Delete(t *testing.T) {
	cache := NewLRUCache[string](10)

	cache.Set("key1", "value1")
	cache.Set("key2", "value2")

	cache.Delete("key1")
	cache.Delete("nonexistent")

	if _, found := cache.Get("key1"); found {
		t.Error("expected key1 to be deleted")
	}
	if _, found := cache.Get("key2"); !found {
		t.Error("expected key2 to still be present")
	}
	if cache.Len() != 1 {
		t.Errorf("expected length 1, got %d", cache.Len())
	}
}

func TestLRUCache_Clear(t *testing.T) {
	cache := NewLRUCache[string](10)

	cache.Set("key1", "value1")
	cache.Set("key2", "value2")

	cache.Clear()

	if cache.Len() != 0 {
		t.Errorf("expected length 0 after clear, got %d", cache.Len())
	}
}

func TestLRUCache_StructValues(t *testing.T) {
	type repo struct{ Name string }
	cache := NewLRUCache[[]repo](10)

	cache.Set("ann", []repo{{"dotfiles"}, {"blog"}})

	v, found := cache.Get("ann")
	if !found || len(v) != 2 || v[0].Name != "dotfiles" {
		t.Errorf("unexpected value: %v", v)
	}
}

func TestLRUCache_Concurrent(t *testing.T) {
	cache := NewLRUCache[int](100)

	var wg sync.WaitGroup
	numGoroutines := 100
	numOperations := 100

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < numOperations; j++ {
				key := string(rune('a' + (id+j)%26))
				cache.Set(key, id*numOperations+j)
				cache.Get(key)
			}
		}(i)
	}

	wg.Wait()
}

func TestLRUCache_ZeroCapacityHoldsOne(t *testing.T) {
	cache := NewLRUCache[string](0)

	cache.Set("key1", "value1")
	cache.Set("key2", "value2")

	if cache.Len() != 1 {
		t.Errorf("expected length 1 for clamped capacity, got %d", cache.Len())
	}
}
