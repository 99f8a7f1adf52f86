package session

import (
	"os"
	"path/filepath"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// FileStorage persists keys as a single JSON object on disk. Writes go
// through a temp file and rename so a crash mid-write cannot corrupt the
// stored credential.
type FileStorage struct {
	path string
}

// NewFileStorage creates a FileStorage at path, creating parent directories
// as needed. The file itself is created lazily on first Set.
func NewFileStorage(path string) (*FileStorage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, errors.Wrap(err, "create state dir")
	}
	return &FileStorage{path: path}, nil
}

func (f *FileStorage) Get(key string) (string, error) {
	doc, err := f.load()
	if err != nil {
		return "", err
	}
	v, ok := doc[key]
	if !ok {
		return "", ErrNoValue
	}
	return v, nil
}

func (f *FileStorage) Set(key, value string) error {
	doc, err := f.load()
	if err != nil {
		return err
	}
	doc[key] = value
	return f.save(doc)
}

func (f *FileStorage) Delete(key string) error {
	doc, err := f.load()
	if err != nil {
		return err
	}
	if _, ok := doc[key]; !ok {
		return nil
	}
	delete(doc, key)
	return f.save(doc)
}

// load reads the state document. A missing file is an empty document.
func (f *FileStorage) load() (map[string]string, error) {
	doc := make(map[string]string)

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return doc, nil
		}
		return nil, errors.Wrap(err, "read state file")
	}
	if len(data) == 0 {
		return doc, nil
	}

	d := jx.DecodeBytes(data)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		v, err := d.Str()
		if err != nil {
			return errors.Wrapf(err, "key %q", key)
		}
		doc[key] = v
		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "decode state file")
	}
	return doc, nil
}

func (f *FileStorage) save(doc map[string]string) error {
	var e jx.Encoder
	e.ObjStart()
	for k, v := range doc {
		e.FieldStart(k)
		e.Str(v)
	}
	e.ObjEnd()

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, e.Bytes(), 0o600); err != nil {
		return errors.Wrap(err, "write state file")
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return errors.Wrap(err, "replace state file")
	}
	return nil
}
