package multipart

import (
	"io"
	"os"
	"path/filepath"

	"github.com/dchest/uniuri"
	json "github.com/json-iterator/go"
	"github.com/spf13/afero"
)

// Entries is the aggregate result of Collect: inline values and saved file
// paths, keyed by field name. A repeated field name silently replaces the
// earlier entry (last-write-wins); callers interested in every occurrence
// should walk the parts via ForEach instead.
type Entries struct {
	// Fields maps a field name to its inline text value.
	Fields map[string]string `json:"fields"`
	// Files maps a field name to the path its payload was saved under.
	Files map[string]string `json:"files"`
	// Dir is the directory holding the saved files.
	Dir string `json:"dir"`
}

// JSON renders the entries through the shared json-iterator configuration,
// handy for handlers echoing the decoded form back.
func (e Entries) JSON() ([]byte, error) {
	stream := json.ConfigDefault.BorrowStream(nil)
	defer json.ConfigDefault.ReturnStream(stream)

	stream.WriteVal(e)
	if stream.Error != nil {
		return nil, stream.Error
	}

	return append([]byte(nil), stream.Buffer()...), nil
}

// Collect decodes all the remaining parts at once, keeping text values in
// memory and saving file payloads under dir. Passing an empty dir picks a
// fresh randomly-named directory under the system temporary root. A failed
// save aborts the run but leaves the entries collected so far intact.
func (r *Reader) Collect(fs afero.Fs, dir string) (Entries, error) {
	if len(dir) == 0 {
		dir = filepath.Join(os.TempDir(), "multipart-"+uniuri.NewLen(r.cfg.Save.NameLength))
	}

	if err := fs.MkdirAll(dir, r.cfg.Save.DirMode); err != nil {
		return Entries{}, &StorageError{Path: dir, Err: err}
	}

	entries := Entries{
		Fields: make(map[string]string),
		Files:  make(map[string]string),
		Dir:    dir,
	}

	err := r.ForEach(func(part Part) error {
		if !part.IsFile() {
			entries.Fields[part.Name] = part.Value
			return nil
		}

		path, err := r.save(fs, dir, part)
		if err != nil {
			return err
		}

		entries.Files[part.Name] = path
		return nil
	})

	return entries, err
}

func (r *Reader) save(fs afero.Fs, dir string, part Part) (path string, err error) {
	name := part.Filename
	if len(name) == 0 {
		name = uniuri.NewLen(r.cfg.Save.NameLength)
	}

	// the declared filename is client-supplied, keep just its base
	path = filepath.Join(dir, filepath.Base(name))

	file, err := fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, r.cfg.Save.FileMode)
	if err != nil {
		return "", &StorageError{Path: path, Err: err}
	}
	defer file.Close()

	if _, err = io.Copy(file, part.Body()); err != nil {
		return "", &StorageError{Path: path, Err: err}
	}

	return path, nil
}
