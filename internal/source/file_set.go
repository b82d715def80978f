package source

import (
	"bytes"
	"crypto/sha256"
	"os"

	"fortio.org/safecast"
	"github.com/pkg/errors"
)

// FileSet owns the files of one run and resolves spans to positions.
// Mutation is not goroutine-safe: the driver loads every file before
// parsing in parallel, and reads are safe after that.
type FileSet struct {
	files   []File
	baseDir string
}

func NewFileSet() *FileSet {
	return &FileSet{}
}

// NewFileSetWithBase sets the directory relative paths are shown against.
func NewFileSetWithBase(baseDir string) *FileSet {
	return &FileSet{baseDir: baseDir}
}

// BaseDir returns the base directory, or the working directory when unset.
func (fs *FileSet) BaseDir() string {
	if fs.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return fs.baseDir
}

// Add stores content under path and returns its id. Adding the same path
// twice yields two files; spans always refer to the bytes they were made from.
// Content must fit in uint32 offsets.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	id, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(errors.Wrap(err, "too many files"))
	}
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		panic(errors.Wrapf(err, "%s is too large", path))
	}
	fs.files = append(fs.files, File{
		ID:      FileID(id),
		Path:    normalizePath(path),
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	return FileID(id)
}

// Load reads path, strips a leading UTF-8 BOM and adds the rest verbatim.
// Files that do not fit in uint32 offsets are rejected.
func (fs *FileSet) Load(path string) (FileID, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- путь от пользователя
	if err != nil {
		return 0, err
	}
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		return 0, errors.Errorf("%s: file too large (%d bytes)", path, len(content))
	}
	var flags FileFlags
	if bytes.HasPrefix(content, []byte(BOM)) {
		content = content[len(BOM):]
		flags |= FileHadBOM
	}
	return fs.Add(path, content, flags), nil
}

// AddVirtual adds in-memory content (tests, repl input, placeholders).
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.Add(name, content, FileVirtual)
}

// Get returns the file for id, or nil when id is unknown.
func (fs *FileSet) Get(id FileID) *File {
	if int(id) >= len(fs.files) {
		return nil
	}
	return &fs.files[id]
}

func (fs *FileSet) Len() int {
	return len(fs.files)
}

// Resolve converts span ends to positions; zero values for an unknown file.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fs.Get(span.File)
	if f == nil {
		return LineCol{}, LineCol{}
	}
	return position(f.LineIdx, span.Start), position(f.LineIdx, span.End)
}
