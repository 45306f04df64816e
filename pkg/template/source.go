package template

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed templates/*.xml
var builtin embed.FS

// Source loads a request template by name. The name set is fixed per
// operation; asking for an unknown name is an error.
type Source interface {
	Load(name string) (string, error)
}

type fsSource struct {
	fsys fs.FS
	dir  string
}

// Builtin returns the compiled-in template set.
func Builtin() Source {
	return &fsSource{fsys: builtin, dir: "templates"}
}

// NewFSSource wraps a filesystem as a template source. Templates are
// looked up by bare file name at the root of fsys.
func NewFSSource(fsys fs.FS) Source {
	return &fsSource{fsys: fsys}
}

func (s *fsSource) Load(name string) (string, error) {
	path := name
	if s.dir != "" {
		path = s.dir + "/" + name
	}
	data, err := fs.ReadFile(s.fsys, path)
	if err != nil {
		return "", fmt.Errorf("template: unknown template %q: %w", name, err)
	}
	return string(data), nil
}
