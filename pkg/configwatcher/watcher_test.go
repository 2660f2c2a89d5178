package configwatcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"edutech_backend/internal/config"

	"github.com/stretchr/testify/require"
)

func TestWatchConfig_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("quiz:\n  max_per_track: 50\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan int, 4)
	done := make(chan error, 1)
	go func() {
		done <- WatchConfig(ctx, file, func(cfg *config.Config) {
			reloaded <- cfg.Quiz.MaxPerTrack
		})
	}()

	// 等待 watcher 就绪后再写入
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(file, []byte("quiz:\n  max_per_track: 20\n"), 0o644))

	select {
	case v := <-reloaded:
		require.Equal(t, 20, v)
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded")
	}

	cancel()
	require.NoError(t, <-done)
}
