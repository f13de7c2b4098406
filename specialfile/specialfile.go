// Package specialfile translates between symbolic links and their
// one-line "special file" descriptor representation, the form working
// copies use to store a symlink's content as ordinary versioned bytes.
package specialfile

import (
	"os"
	"strings"
	"syscall"

	"github.com/pkg/errors"

	"github.com/aretext/wcxlate/install"
)

// ErrUnsupportedFeature is returned for an unrecognized descriptor
// identifier, or when the platform cannot create the requested special
// file type.
var ErrUnsupportedFeature = errors.New("unsupported-feature")

const linkIdentifier = "link"

// Detranslate inspects srcPath's file type and writes dstPath: a regular
// file is copied unchanged, a symbolic link is written as the single line
// "link <target>". Any other file type fails with ErrUnsupportedFeature.
func Detranslate(srcPath, dstPath string) error {
	info, err := os.Lstat(srcPath)
	if err != nil {
		return errors.Wrap(err, "os.Lstat")
	}

	switch {
	case info.Mode()&os.ModeSymlink != 0:
		target, err := os.Readlink(srcPath)
		if err != nil {
			return errors.Wrap(err, "os.Readlink")
		}
		descriptor := strings.NewReader(linkIdentifier + " " + target)
		return install.Install(descriptor, dstPath, install.Options{})

	case info.Mode().IsRegular():
		src, err := os.Open(srcPath)
		if err != nil {
			return errors.Wrap(err, "os.Open")
		}
		defer src.Close()
		return install.Install(src, dstPath, install.Options{})

	default:
		return errors.Wrapf(ErrUnsupportedFeature, "detranslate %s: unsupported file type", srcPath)
	}
}

// Create is the inverse of Detranslate: if srcPath is itself a special
// file, it is first detranslated into a temporary regular file; its
// contents are then split at the first space into an identifier and a
// remainder. Only the "link" identifier is recognized, producing a
// symbolic link at dstPath whose target is the remainder. Any other
// identifier fails with ErrUnsupportedFeature. If link creation fails
// with ErrUnsupportedFeature on this platform, Create falls back to
// copying the raw descriptor file to dstPath.
func Create(srcPath, dstPath string) error {
	info, err := os.Lstat(srcPath)
	if err != nil {
		return errors.Wrap(err, "os.Lstat")
	}

	descriptorPath := srcPath
	if info.Mode()&os.ModeSymlink != 0 {
		tmp, err := os.CreateTemp("", "wcxlate-special-*")
		if err != nil {
			return errors.Wrap(err, "os.CreateTemp")
		}
		tmp.Close()
		defer os.Remove(tmp.Name())
		if err := Detranslate(srcPath, tmp.Name()); err != nil {
			return err
		}
		descriptorPath = tmp.Name()
	}

	contents, err := os.ReadFile(descriptorPath)
	if err != nil {
		return errors.Wrap(err, "os.ReadFile")
	}

	identifier, remainder, ok := cutFirstSpace(string(contents))
	if !ok {
		return errors.Wrapf(ErrUnsupportedFeature, "create %s: missing descriptor identifier", srcPath)
	}
	if identifier != linkIdentifier {
		return errors.Wrapf(ErrUnsupportedFeature, "create %s: unrecognized identifier %q", srcPath, identifier)
	}

	if err := os.Symlink(remainder, dstPath); err != nil {
		if symlinkUnsupported(err) {
			return copyDescriptor(descriptorPath, dstPath)
		}
		return errors.Wrap(err, "os.Symlink")
	}
	return nil
}

func cutFirstSpace(s string) (before, after string, found bool) {
	idx := strings.IndexByte(s, ' ')
	if idx < 0 {
		return "", "", false
	}
	return s[:idx], s[idx+1:], true
}

// symlinkUnsupported reports whether err indicates the platform or target
// filesystem lacks symlink support (as opposed to some other failure, e.g.
// a missing parent directory), in which case Create falls back to copying
// the raw descriptor instead of failing outright.
func symlinkUnsupported(err error) bool {
	var linkErr *os.LinkError
	if !errors.As(err, &linkErr) {
		return false
	}
	return errors.Is(linkErr.Err, syscall.EPERM) ||
		errors.Is(linkErr.Err, syscall.ENOTSUP) ||
		errors.Is(linkErr.Err, syscall.ENOSYS)
}

func copyDescriptor(descriptorPath, dstPath string) error {
	src, err := os.Open(descriptorPath)
	if err != nil {
		return errors.Wrap(err, "os.Open")
	}
	defer src.Close()
	if err := install.Install(src, dstPath, install.Options{}); err != nil {
		return errors.Wrap(err, "install.Install")
	}
	return nil
}
