package output

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Stdout is the destination meaning the process's standard output.
const Stdout = "-"

const filePerm = 0o644

type Sink struct {
	fs     afero.Fs
	stdout io.Writer
}

func New(fs afero.Fs, stdout io.Writer) *Sink {
	return &Sink{fs: fs, stdout: stdout}
}

func (s *Sink) ID(dest string) string {
	if dest == Stdout {
		return "stdout"
	}
	return "file:" + dest
}

// Write emits data to dest. Standard output is written as is and never
// closed. A missing or regular file is written to a sibling temp file and
// renamed into place, so dest either keeps its old contents or holds all of
// data. Anything else at dest (symlink, device, fifo) is opened and truncated
// in place.
func (s *Sink) Write(dest string, data []byte) error {
	if dest == Stdout {
		if _, err := s.stdout.Write(data); err != nil {
			return errors.Wrap(err, "write standard output")
		}
		return nil
	}
	if dest == "" {
		return errors.Wrap(os.ErrNotExist, "open empty path")
	}
	if s.replaceable(dest) {
		return s.writeFile(dest, data)
	}
	return s.writeInPlace(dest, data)
}

func (s *Sink) replaceable(dest string) bool {
	var info os.FileInfo
	var err error
	if lstater, ok := s.fs.(afero.Lstater); ok {
		info, _, err = lstater.LstatIfPossible(dest)
	} else {
		info, err = s.fs.Stat(dest)
	}
	if err != nil {
		return errors.Is(err, os.ErrNotExist)
	}
	return info.Mode().IsRegular()
}

func (s *Sink) writeInPlace(dest string, data []byte) error {
	file, err := s.fs.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o666)
	if err != nil {
		return errors.Wrapf(err, "open %s", dest)
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		return errors.Wrapf(err, "write %s", dest)
	}
	if err := file.Close(); err != nil {
		return errors.Wrapf(err, "close %s", dest)
	}
	return nil
}

func (s *Sink) writeFile(dest string, data []byte) (err error) {
	dir, base := filepath.Split(dest)
	if dir == "" {
		dir = "."
	}
	tmp, err := afero.TempFile(s.fs, dir, "."+base+".tmp")
	if err != nil {
		return errors.Wrapf(err, "create %s", dest)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = s.fs.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "write %s", dest)
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "sync %s", dest)
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrapf(err, "close %s", dest)
	}
	if err = s.fs.Chmod(tmpName, filePerm); err != nil {
		return errors.Wrapf(err, "chmod %s", dest)
	}
	if err = s.fs.Rename(tmpName, dest); err != nil {
		return errors.Wrapf(err, "rename %s", dest)
	}
	return nil
}
