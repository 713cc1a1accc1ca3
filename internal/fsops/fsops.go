package fsops

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// ErrMissingArtifact is returned when the file to delete, copy or read does not exist.
var ErrMissingArtifact = errors.New("missing artifact")

// ErrSameFile is returned by Copy when src and dst name the same file.
var ErrSameFile = errors.New("source and destination are the same file")

// IsMissing reports whether err was caused by a missing file.
func IsMissing(err error) bool {
	return errors.Is(err, ErrMissingArtifact)
}

// OS performs file operations against the real filesystem.
type OS struct{}

// Remove deletes path.
func (OS) Remove(path string) error {
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(ErrMissingArtifact, "remove %s", path)
		}
		return errors.Wrapf(err, "remove %s", path)
	}
	return nil
}

// Copy overwrites dst with the contents of src.
// dst is created if needed and truncated otherwise. Copying a file onto
// itself fails with ErrSameFile and leaves it untouched.
func (OS) Copy(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(ErrMissingArtifact, "copy %s", src)
		}
		return errors.Wrapf(err, "copy %s", src)
	}
	defer in.Close()

	srcInfo, err := in.Stat()
	if err != nil {
		return errors.Wrapf(err, "stat %s", src)
	}
	if dstInfo, err := os.Stat(dst); err == nil && os.SameFile(srcInfo, dstInfo) {
		return errors.Wrapf(ErrSameFile, "copy %s to %s", src, dst)
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return errors.Wrapf(err, "copy to %s", dst)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "close %s", dst)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return errors.Wrapf(err, "copy %s to %s", src, dst)
	}
	return nil
}

// ReadFile returns the contents of path.
func (OS) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrMissingArtifact, "read %s", path)
		}
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return data, nil
}
