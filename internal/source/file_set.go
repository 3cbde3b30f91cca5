package source

import (
	"fmt"
	"os"
)

// FileSet owns every source file loaded during one toolchain invocation.
// File IDs are 1-based; 0 is never handed out.
type FileSet struct {
	files  []*File
	byPath map[string]FileID
}

// NewFileSet creates an empty file set.
func NewFileSet() *FileSet {
	return &FileSet{
		byPath: make(map[string]FileID),
	}
}

// Load reads a file from disk and registers it. Loading the same path twice
// returns the already registered file.
func (fs *FileSet) Load(path string) (*File, error) {
	if id, ok := fs.byPath[path]; ok {
		return fs.Get(id), nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}
	return fs.add(path, content, 0), nil
}

// AddVirtual registers an in-memory file (tests, stdin).
func (fs *FileSet) AddVirtual(name string, content []byte) *File {
	return fs.add(name, content, FileVirtual)
}

func (fs *FileSet) add(path string, content []byte, flags FileFlags) *File {
	f := &File{
		ID:      FileID(len(fs.files) + 1),
		Path:    path,
		Content: content,
		Flags:   flags,
	}
	fs.files = append(fs.files, f)
	fs.byPath[path] = f.ID
	return f
}

// Get returns the file with the given ID, or nil for an unknown ID.
func (fs *FileSet) Get(id FileID) *File {
	if id == 0 || int(id) > len(fs.files) {
		return nil
	}
	return fs.files[id-1]
}

// Len returns the number of registered files.
func (fs *FileSet) Len() int {
	return len(fs.files)
}
