package io

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/matzehuels/minidraw/pkg/errors"
)

// WriteFileAtomic writes data to path on fs, replacing any existing file in
// a single rename. Missing parent directories are created.
func WriteFileAtomic(fs afero.Fs, path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create directory %s", dir)
	}

	tmp, err := afero.TempFile(fs, dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create temporary file in %s", dir)
	}
	name := tmp.Name()

	if err := writeAndClose(tmp, data); err != nil {
		_ = fs.Remove(name)
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	if err := fs.Chmod(name, perm); err != nil {
		_ = fs.Remove(name)
		return errors.Wrap(errors.ErrCodeIO, err, "chmod %s", path)
	}
	if err := fs.Rename(name, path); err != nil {
		_ = fs.Remove(name)
		return errors.Wrap(errors.ErrCodeIO, err, "rename into %s", path)
	}
	return nil
}

func writeAndClose(f afero.File, data []byte) error {
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadFile reads the whole file at path on fs.
func ReadFile(fs afero.Fs, path string) ([]byte, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read %s", path)
	}
	return data, nil
}
