package media

import (
	"context"
	"sync"
	"testing"
	"time"
)

type recordingDeleter struct {
	mu   sync.Mutex
	keys []string
}

func (d *recordingDeleter) Delete(_ context.Context, key string) error {
	d.mu.Lock()
	d.keys = append(d.keys, key)
	d.mu.Unlock()
	return nil
}

func (d *recordingDeleter) deleted() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.keys...)
}

func TestCleanerDeletesEnqueuedKeys(t *testing.T) {
	deleter := &recordingDeleter{}
	cleaner := NewCleaner(deleter, CleanerConfig{QueueSize: 8, Workers: 2}, nil)

	ctx := context.Background()
	for _, key := range []string{"avatars/a", "videos/b", "thumbnails/c"} {
		if err := cleaner.Enqueue(ctx, key); err != nil {
			t.Fatalf("enqueue %s: %v", key, err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := cleaner.Shutdown(shutdownCtx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	if got := deleter.deleted(); len(got) != 3 {
		t.Fatalf("expected 3 deletions, got %v", got)
	}
}

func TestCleanerIgnoresBlankKeys(t *testing.T) {
	deleter := &recordingDeleter{}
	cleaner := NewCleaner(deleter, CleanerConfig{}, nil)

	if err := cleaner.Enqueue(context.Background(), ""); err != nil {
		t.Fatalf("enqueue blank key: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := cleaner.Shutdown(shutdownCtx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	if got := deleter.deleted(); len(got) != 0 {
		t.Fatalf("expected no deletions, got %v", got)
	}
}

func TestCleanerRejectsEnqueueAfterShutdown(t *testing.T) {
	cleaner := NewCleaner(&recordingDeleter{}, CleanerConfig{}, nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := cleaner.Shutdown(shutdownCtx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	if err := cleaner.Enqueue(context.Background(), "late/key"); err == nil {
		t.Fatal("expected enqueue after shutdown to fail")
	}
}
