package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/mbrevik/gigwire/internal/logger"
)

// heartbeatEvery refreshes the lock file's mtime so a healthy long run is
// never mistaken for a stale one.
const heartbeatEvery = 30 * time.Second

// Lock is a cross-process run lock. The engine's window-query-then-write
// sequence can double-insert if two runs interleave, so overlapping runs
// are refused rather than serialized.
type Lock struct {
	path string
	stop chan struct{}
}

// AcquireLock takes the run lock at path. A lock file younger than ttl
// means another run is active and acquisition fails; an older one is
// presumed left behind by a crashed run and is broken.
func AcquireLock(path string, ttl time.Duration) (*Lock, error) {
	for {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
		if err == nil {
			fmt.Fprintf(f, `{"pid":%d,"time":%d}`+"\n", os.Getpid(), time.Now().Unix())
			f.Close()

			l := &Lock{path: path, stop: make(chan struct{})}
			go l.heartbeat()
			return l, nil
		}
		// Anything but "already exists" (missing directory, permissions)
		// will fail the same way on every retry.
		if !errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("creating lock file: %w", err)
		}

		fi, statErr := os.Stat(path)
		if statErr != nil {
			// Lost a race with a release; try again.
			continue
		}
		if time.Since(fi.ModTime()) < ttl {
			return nil, fmt.Errorf("another run holds the lock at %s", path)
		}
		logger.Warn("breaking stale run lock", logger.Fields{"path": path, "age": time.Since(fi.ModTime()).String()})
		os.Remove(path)
	}
}

// Release removes the lock file and stops the heartbeat.
func (l *Lock) Release() {
	close(l.stop)
	os.Remove(l.path)
}

func (l *Lock) heartbeat() {
	t := time.NewTicker(heartbeatEvery)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			now := time.Now()
			os.Chtimes(l.path, now, now)
		case <-l.stop:
			return
		}
	}
}
