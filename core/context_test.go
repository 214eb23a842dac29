package core

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunIDContext(t *testing.T) {
	ctx := context.Background()
	assert.Zero(t, getRunID(ctx), "missing run id reads as zero")

	ctx = withRunID(ctx, 42)
	assert.Equal(t, int64(42), getRunID(ctx))

	// Derived contexts keep the value.
	child, cancel := context.WithCancel(ctx)
	defer cancel()
	assert.Equal(t, int64(42), getRunID(child))
}

// TestContextConcurrentAccess tests that context values can be safely accessed concurrently.
func TestContextConcurrentAccess(t *testing.T) {
	ctx := withRunID(context.Background(), 12345)

	const numGoroutines = 50
	var wg sync.WaitGroup
	for range numGoroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, int64(12345), getRunID(ctx))
		}()
	}
	wg.Wait()
}
