package source

// FileID is an index into a FileSet, starting at 0.
type FileID uint32

type FileFlags uint8

const (
	FileVirtual FileFlags = 1 << iota // из памяти: тесты, repl, заглушки для нечитаемых путей
	FileHadBOM                        // UTF-8 BOM снят при загрузке
)

// BOM is the UTF-8 byte order mark Load strips from Content.
const BOM = "\xEF\xBB\xBF"

// File is one source text. Content is never rewritten apart from a leading
// BOM: line endings stay as they were, so a printed tree reproduces it.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offset of the terminating byte of every line break
	Hash    [32]byte // sha256 of Content
	Flags   FileFlags
}

func (f *File) Virtual() bool { return f.Flags&FileVirtual != 0 }

func (f *File) HadBOM() bool { return f.Flags&FileHadBOM != 0 }

// LineCol is a 1-based position; Col counts bytes.
type LineCol struct {
	Line uint32
	Col  uint32
}
