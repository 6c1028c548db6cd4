package gen

import (
	"os"
	"path/filepath"

	werror "github.com/palantir/witchcraft-go-error"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFile atomically replaces path with content. The directory is created
// when missing.
func WriteFile(path string, content []byte) error {
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return werror.Wrap(err, "failed to create output directory", werror.SafeParam("dir", dir))
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return werror.Wrap(err, "failed to create temporary file", werror.SafeParam("dir", dir))
	}

	// removing after a successful rename fails harmlessly
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return werror.Wrap(err, "failed to write output", werror.SafeParam("path", path))
	}

	if err := tmp.Chmod(filePerm); err != nil {
		_ = tmp.Close()
		return werror.Wrap(err, "failed to set output permissions", werror.SafeParam("path", path))
	}

	if err := tmp.Close(); err != nil {
		return werror.Wrap(err, "failed to write output", werror.SafeParam("path", path))
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return werror.Wrap(err, "failed to replace output", werror.SafeParam("path", path))
	}

	return nil
}
