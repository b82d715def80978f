package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"pycst/internal/cst"
	"pycst/internal/diag"
	"pycst/internal/metrics"
	"pycst/internal/project"
	"pycst/internal/source"
	"pycst/internal/trace"
)

// FileResult содержит результат разбора одного файла
type FileResult struct {
	Path    string        // путь файла, как он был передан
	FileID  source.FileID // ID файла в FileSet
	Module  *cst.Module   // только при Options.KeepTrees и успешном разборе
	Err     error         // ошибка загрузки или свежего разбора; для попаданий в кэш nil
	Bag     *diag.Bag     // диагностики
	Result  string        // metrics.Result*
	Tokens  int
	Cached  bool
	Elapsed time.Duration
}

// Failed reports whether the file did not parse.
func (r *FileResult) Failed() bool { return r.Result != metrics.ResultOK }

// ListFiles expands paths into a sorted, duplicate-free list of files.
// Files named explicitly are always kept; directories are walked and filtered
// through check.
func ListFiles(paths []string, check project.CheckConfig) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, errors.Wrapf(err, "stat %s", root)
		}
		if !info.IsDir() {
			add(filepath.Clean(root))
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil || rel == "." {
				return nil
			}
			if d.IsDir() {
				if check.SkipsDir(rel) {
					return filepath.SkipDir
				}
				return nil
			}
			if check.Selects(rel) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "walk %s", root)
		}
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// ParseDir parses every selected file under dir.
func ParseDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []FileResult, error) {
	files, err := ListFiles([]string{dir}, opts.Check)
	if err != nil {
		return nil, nil, err
	}
	return ParseFiles(ctx, files, dir, opts)
}

// ParseFiles parses files concurrently, one independent parser per file, at most
// opts.Jobs at a time. Results are in the order of files. The error is non-nil
// only when ctx was cancelled.
func ParseFiles(ctx context.Context, files []string, baseDir string, opts Options) (*source.FileSet, []FileResult, error) {
	fileSet := source.NewFileSetWithBase(baseDir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// FileSet не потокобезопасен на запись: загружаем всё заранее
	fileIDs := make([]source.FileID, len(files))
	loadErrors := make([]error, len(files))
	for i, path := range files {
		fileIDs[i], loadErrors[i] = fileSet.Load(path)
		if loadErrors[i] != nil {
			// пустой файл-заглушка, чтобы диагностика указывала на путь
			fileIDs[i] = fileSet.AddVirtual(path, nil)
		}
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	ctx, span := trace.StartSpan(ctx, trace.ScopeDriver, "parse-files")
	defer span.End("")

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			opts.notify(FileEvent{Name: path, Kind: FileStarted, Index: i, Total: len(files)})
			if loadErrors[i] != nil {
				results[i] = loadFailure(path, fileIDs[i], loadErrors[i], &opts)
			} else {
				results[i] = parseOne(gctx, fileSet, fileSet.Get(fileIDs[i]), path, &opts)
			}
			r := &results[i]
			opts.notify(FileEvent{
				Name: path, Kind: FileDone, Index: i, Total: len(files),
				Result: r.Result, Cached: r.Cached, Elapsed: r.Elapsed,
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

func (o *Options) notify(ev FileEvent) {
	if o.Observer != nil {
		o.Observer(ev)
	}
}

func loadFailure(path string, id source.FileID, err error, opts *Options) FileResult {
	bag := diag.NewBag(opts.maxDiagnostics())
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: id}, "failed to load file: "+err.Error()))
	opts.Metrics.ObserveFile(metrics.ResultIOError, 0, 0, 0)
	return FileResult{Path: path, FileID: id, Bag: bag, Result: metrics.ResultIOError, Err: err}
}

func parseOne(ctx context.Context, fileSet *source.FileSet, file *source.File, path string, opts *Options) FileResult {
	ctx, span := trace.StartSpan(ctx, trace.ScopeFile, "file:"+path)
	res := FileResult{Path: path, FileID: file.ID}

	var (
		key      project.Digest
		cacheErr error
	)
	useCache := opts.Cache != nil && !opts.KeepTrees
	if useCache {
		key = cacheKey(file, opts.Parse)
		start := time.Now()
		entry, hit, err := opts.Cache.Get(key)
		opts.Metrics.ObserveCache(hit)
		if hit {
			res.Bag = diag.NewBag(opts.maxDiagnostics())
			entry.restore(res.Bag, file.ID)
			res.Result, res.Tokens, res.Cached = entry.Result, entry.Tokens, true
			res.Elapsed = time.Since(start)
			opts.Metrics.ObserveFile(res.Result, len(file.Content), res.Tokens, res.Elapsed)
			span.End("cached")
			return res
		}
		cacheErr = err
	}

	pr := ParseFile(ctx, fileSet, file, *opts)
	res.Bag, res.Err, res.Tokens, res.Elapsed = pr.Bag, pr.Err, pr.Tokens, pr.Elapsed
	res.Result = outcome(pr.Err)
	if opts.KeepTrees {
		res.Module = pr.Module
	}
	opts.Metrics.ObserveFile(res.Result, len(file.Content), res.Tokens, res.Elapsed)
	if opts.Timer != nil {
		opts.Timer.Add("lex+parse", res.Elapsed)
	}

	if cacheErr != nil {
		res.Bag.Add(diag.New(diag.SevWarning, diag.IOCacheError, source.Span{File: file.ID}, cacheErr.Error()))
	}
	if useCache {
		if err := opts.Cache.Put(key, entryFromBag(path, res.Result, res.Tokens, res.Bag)); err != nil {
			res.Bag.Add(diag.New(diag.SevWarning, diag.IOCacheError, source.Span{File: file.ID}, err.Error()))
		}
	}
	span.End(res.Result)
	return res
}
