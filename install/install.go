// Package install implements the atomic file installer: every
// file-to-file translation writes its output to a temporary sibling of
// the destination and renames it into place, so a crash never leaves a
// half-translated artifact at the destination path.
package install

import (
	"io"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"github.com/pkg/errors"
)

// DefaultPermissions is used for newly created destination files when
// Options.Permissions is zero and the destination does not already exist.
const DefaultPermissions = os.FileMode(0644)

// Options configures one staged installation.
type Options struct {
	// Permissions is the mode for a newly created destination file. If
	// zero, DefaultPermissions is used. If the destination already
	// exists, its permissions are preserved regardless of this field.
	Permissions os.FileMode

	// MakeParents creates any missing destination parent directories
	// before staging the temporary file. Opt-in: by default a missing
	// parent directory is an error.
	MakeParents bool
}

// Staged is a file staged for atomic installation: its bytes are written
// to a temporary sibling of the destination and become visible at the
// destination path only once Commit succeeds.
type Staged struct {
	pf        *renameio.PendingFile
	committed bool
}

// Begin opens a staged temporary file that will be installed at dst on
// Commit. The caller must eventually call Commit or Cancel; calling
// neither leaks the temporary file (mirroring PendingFile's own Cleanup
// contract).
func Begin(dst string, opts Options) (*Staged, error) {
	if opts.MakeParents {
		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return nil, errors.Wrap(err, "os.MkdirAll")
		}
	}

	renameOpts := []renameio.Option{renameio.WithExistingPermissions()}
	perm := opts.Permissions
	if perm == 0 {
		perm = DefaultPermissions
	}
	renameOpts = append(renameOpts, renameio.WithPermissions(perm))

	pf, err := renameio.NewPendingFile(dst, renameOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "renameio.NewPendingFile")
	}
	return &Staged{pf: pf}, nil
}

// Write appends to the staged file.
func (s *Staged) Write(p []byte) (int, error) {
	n, err := s.pf.Write(p)
	if err != nil {
		return n, errors.Wrap(err, "Staged.Write")
	}
	return n, nil
}

// Path returns the path of the staged temporary file, for Stat.
func (s *Staged) Path() string {
	return s.pf.Name()
}

// Commit makes the staged bytes visible at the destination path via an
// atomic rename.
func (s *Staged) Commit() error {
	if err := s.pf.CloseAtomicallyReplace(); err != nil {
		return errors.Wrap(err, "renameio.CloseAtomicallyReplace")
	}
	s.committed = true
	return nil
}

// Cancel removes the staged temporary file without installing it. This is
// the install_delete operation in the installer contract. It is safe to call
// after Commit (a no-op) or multiple times.
func (s *Staged) Cancel() error {
	return s.pf.Cleanup()
}

// Stat returns stat-like metadata for a staged artifact without opening
// it for translation, the install_get_info operation.
func Stat(stagedPath string) (os.FileInfo, error) {
	info, err := os.Stat(stagedPath)
	if err != nil {
		return nil, errors.Wrap(err, "os.Stat")
	}
	return info, nil
}

// Delete removes a staged temporary file by path without installing it.
// Most callers drive staging through Begin/Staged.Cancel instead; Delete
// exists for the external contract where only the staged path is known.
func Delete(staged string) error {
	if err := os.Remove(staged); err != nil {
		return errors.Wrap(err, "os.Remove")
	}
	return nil
}

// Install stages r's entire contents at dst, committing on success and
// cancelling on any failure prior to commit. This is the common case:
// callers that only need a one-shot file-to-file install should use this
// instead of driving Staged directly.
func Install(r io.Reader, dst string, opts Options) (err error) {
	staged, err := Begin(dst, opts)
	if err != nil {
		return err
	}
	defer func() {
		if cancelErr := staged.Cancel(); cancelErr != nil && err == nil {
			err = errors.Wrap(cancelErr, "Staged.Cancel")
		}
	}()

	if _, err = io.Copy(staged, r); err != nil {
		return errors.Wrap(err, "io.Copy")
	}

	if err = staged.Commit(); err != nil {
		return err
	}
	return nil
}
