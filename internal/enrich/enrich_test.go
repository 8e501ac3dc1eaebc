package enrich

import (
	"context"
	"net"
	"testing"
	"time"
)

func TestCache(t *testing.T) {
	cache := NewCache(3, time.Minute)

	// Test basic set/get
	cache.Set("key1", "value1")
	val, ok := cache.Get("key1")
	if !ok || val != "value1" {
		t.Errorf("Get(key1) = %v, %v; want value1, true", val, ok)
	}

	// Test missing key
	_, ok = cache.Get("missing")
	if ok {
		t.Error("Get(missing) should return false")
	}

	// Test eviction
	cache.Set("key2", "value2")
	cache.Set("key3", "value3")
	cache.Set("key4", "value4") // Should evict key1

	if cache.Size() != 3 {
		t.Errorf("Size() = %d, want 3", cache.Size())
	}

	// Test clear
	cache.Clear()
	if cache.Size() != 0 {
		t.Errorf("Size() after Clear() = %d, want 0", cache.Size())
	}
}

func TestCacheExpiration(t *testing.T) {
	cache := NewCache(10, 50*time.Millisecond)

	cache.Set("key", "value")

	// Should exist immediately
	_, ok := cache.Get("key")
	if !ok {
		t.Error("Key should exist immediately after set")
	}

	// Wait for expiration
	time.Sleep(100 * time.Millisecond)

	// Should be expired
	_, ok = cache.Get("key")
	if ok {
		t.Error("Key should be expired")
	}
}

func TestRDNSResolver(t *testing.T) {
	config := DefaultRDNSConfig()
	config.Timeout = 5 * time.Second
	resolver := NewRDNSResolver(config)
	defer resolver.Close()

	ctx := context.Background()

	// Test localhost (should resolve)
	hostname, err := resolver.Lookup(ctx, net.ParseIP("127.0.0.1"))
	if err != nil {
		t.Logf("Localhost rDNS lookup returned error: %v", err)
	}
	t.Logf("127.0.0.1 -> %q", hostname)

	// Test nil IP
	hostname, err = resolver.Lookup(ctx, nil)
	if err != nil {
		t.Errorf("nil IP lookup should not error: %v", err)
	}
	if hostname != "" {
		t.Errorf("nil IP should return empty hostname, got %q", hostname)
	}

	// Test caching
	resolver.Lookup(ctx, net.ParseIP("127.0.0.1"))
	if resolver.cache.Size() == 0 {
		t.Error("Cache should have entries after lookup")
	}
}

func TestRDNSBatchLookup(t *testing.T) {
	config := DefaultRDNSConfig()
	resolver := NewRDNSResolver(config)
	defer resolver.Close()

	ctx := context.Background()
	ips := []net.IP{
		net.ParseIP("127.0.0.1"),
		net.ParseIP("127.0.0.1"), // Duplicate
		nil,                      // Nil should be skipped
	}

	results := resolver.LookupBatch(ctx, ips)

	if len(results) != 1 { // Only unique non-nil IPs
		t.Errorf("LookupBatch returned %d results, expected 1", len(results))
	}
}

func TestResolver(t *testing.T) {
	resolver := NewResolver(DefaultResolverConfig())
	defer resolver.Close()

	ctx := context.Background()

	if got := resolver.Lookup(ctx, nil); got != "" {
		t.Errorf("Lookup(nil) = %q, want empty", got)
	}

	hostname := resolver.Lookup(ctx, net.ParseIP("127.0.0.1"))
	t.Logf("127.0.0.1 -> %q", hostname)
}

func TestResolverDisabled(t *testing.T) {
	resolver := NewResolver(ResolverConfig{Enabled: false})
	defer resolver.Close()

	ctx := context.Background()
	if got := resolver.Lookup(ctx, net.ParseIP("8.8.8.8")); got != "" {
		t.Errorf("disabled resolver returned %q, want empty", got)
	}
}

func TestResolverLookupIPs(t *testing.T) {
	resolver := NewResolver(DefaultResolverConfig())
	defer resolver.Close()

	ctx := context.Background()
	results := resolver.LookupIPs(ctx, []string{"127.0.0.1", "127.0.0.1", "not-an-ip"})

	if len(results) != 1 {
		t.Errorf("LookupIPs returned %d results, want 1", len(results))
	}
}
