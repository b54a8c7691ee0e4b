package app

import (
	"io"

	"github.com/spf13/afero"
)

// Saver writes buffer contents to a file, replacing what was there.
type Saver struct {
	fs afero.Fs
}

// NewSaver creates a saver on the given file system.
func NewSaver(fs afero.Fs) *Saver {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Saver{fs: fs}
}

// Save writes every line of src, newline terminated, to path.
func (s *Saver) Save(src io.WriterTo, path string) (err error) {
	f, err := s.fs.Create(path)
	if err != nil {
		return NewOpError("save", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = NewOpError("save", path, cerr)
		}
	}()

	if _, err := src.WriteTo(f); err != nil {
		return NewOpError("save", path, err).At("write")
	}
	return nil
}
