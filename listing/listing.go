// Package listing defines the directory-entry callback contract used to
// report working-copy entries during a listing, along with a concurrent
// reference walker that drives it.
package listing

import (
	"context"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

// EntryKind classifies a listed entry.
type EntryKind int

const (
	EntryFile EntryKind = iota
	EntryDir
	EntrySymlink
)

// Entry describes one directory entry reported to a Callback. Fields
// beyond Path/AbsPath/Kind/Size carry revision metadata that a real
// working-copy backend would populate; the reference walker in this
// package leaves them zero since it only reads the local filesystem.
type Entry struct {
	Path            string
	AbsPath         string
	Kind            EntryKind
	Size            int64
	HasProps        bool
	LastChangedRev  int64
	LastChangedTime time.Time
	LastAuthor      string
	Lock            *string
}

// Callback receives one Entry per listed path. The walker does not
// retain reported records; an error from a callback is returned by Walk.
type Callback interface {
	OnEntry(Entry) error
}

// CallbackFunc adapts a function to the Callback interface.
type CallbackFunc func(Entry) error

func (f CallbackFunc) OnEntry(e Entry) error { return f(e) }

// Options configures Walk.
type Options struct {
	// SkipPatterns are glob patterns (matched against the relative path)
	// for directories to exclude from the walk entirely.
	SkipPatterns []string
}

// Walk lists every entry under root, invoking cb.OnEntry for each one.
// Subdirectories are traversed concurrently, bounded by a
// runtime.NumCPU() semaphore, and symbolic links are reported but never
// followed. ctx is checked before each directory is read, and a cancelled
// walk reads no further directories. A callback error does not stop the
// walk: the remaining entries are still reported, except that a directory
// whose own entry the callback rejected is not descended into. The first
// error recorded (cancellation or callback) is returned to the caller.
func Walk(ctx context.Context, root string, opts Options, cb Callback) error {
	sem := make(chan struct{}, runtime.NumCPU())
	return walkRec(ctx, root, root, opts, cb, sem)
}

func walkRec(ctx context.Context, root, dir string, opts Options, cb Callback, sem chan struct{}) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	sem <- struct{}{}
	entries, err := readDir(dir)
	<-sem
	if err != nil {
		log.Printf("listing: error reading %q: %s\n", dir, err)
		return nil
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		firstFn error
	)

	recordErr := func(err error) {
		mu.Lock()
		if firstFn == nil {
			firstFn = err
		}
		mu.Unlock()
	}

	for _, d := range entries {
		path := filepath.Join(dir, d.Name())
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}

		if d.IsDir() {
			if shouldSkip(rel, opts.SkipPatterns) {
				continue
			}
			if err := reportEntry(cb, rel, path, EntryDir, 0); err != nil {
				recordErr(err)
				continue
			}

			wg.Add(1)
			go func(path string) {
				defer wg.Done()
				if err := walkRec(ctx, root, path, opts, cb, sem); err != nil {
					recordErr(err)
				}
			}(path)
			continue
		}

		kind := EntryFile
		var size int64
		if d.Type()&os.ModeSymlink != 0 {
			kind = EntrySymlink
		} else if info, err := d.Info(); err == nil {
			size = info.Size()
		} else {
			log.Printf("listing: error stating %q: %s\n", path, err)
			continue
		}

		if err := reportEntry(cb, rel, path, kind, size); err != nil {
			recordErr(err)
		}
	}
	wg.Wait()

	return firstFn
}

func reportEntry(cb Callback, rel, abs string, kind EntryKind, size int64) error {
	return cb.OnEntry(Entry{
		Path:    rel,
		AbsPath: abs,
		Kind:    kind,
		Size:    size,
	})
}

func readDir(path string) ([]fs.DirEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.ReadDir(-1)
}

func shouldSkip(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := filepath.Match(pattern, relPath); ok {
			return true
		}
	}
	return false
}
