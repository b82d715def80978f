package driver

import (
	"pycst/internal/project"
	"pycst/internal/source"
)

// cacheKey: H(content || parse settings). Одинаковое содержимое под разными
// max_depth/tab_size разбирается по-разному, поэтому настройки входят в ключ.
func cacheKey(file *source.File, p project.ParseConfig) project.Digest {
	return project.Combine(project.Digest(file.Hash), p.Digest())
}
