package fuzztests

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

const (
	testdataDir  = "../../testdata"
	maxSeedBytes = 64 << 10
)

// inlineSeeds покрывают то, что лексеру и парсеру труднее всего: отступы,
// продолжения строк, строки с префиксами, soft keywords.
var inlineSeeds = []string{
	"",
	"x = 1\n",
	"def f(a, /, b=2, *args, c, **kw) -> int:\n    return a\n",
	"class C(B, metaclass=M):\n\t'''doc'''\n\tx: int = 0\n",
	"if a:\n  pass\nelif b:\n        pass\nelse:\n pass\n",
	"x = [\n  1,  # one\n]\n",
	"s = rb'\\x00' f\"{a!r:>{w}}\" '''multi\nline'''\n",
	"a = 1 + \\\n    2\n",
	"match p:\n    case Point(x=0) | [1, *_] as q if q: pass\n    case {'k': v, **kw}: pass\n",
	"match(x)\ntype = 1\ntype T[K] = dict[K, int]\n",
	"try:\n    pass\nexcept* E as e:\n    raise X from e\nfinally:\n    pass\n",
	"with (open(a) as f, b):\n    pass\n",
	"async def g():\n    async for i in y: await i\n",
	"lambda x=1, *a, **k: (yield)\n",
	"\f\nx\r\n  \n# end",
	"((((((((((((((((((((x))))))))))))))))))))",
	"if x:\n    y\n  z\n",
	"s = 'unterminated\n",
	"x = (1,\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
	for _, src := range testdataSeeds() {
		f.Add(src)
	}
}

// testdataSeeds читает testdata/*.py и testdata/*/*.py; отсутствие каталога не ошибка.
func testdataSeeds() [][]byte {
	var seeds [][]byte
	for _, pattern := range []string{"*.py", filepath.Join("*", "*.py")} {
		paths, _ := filepath.Glob(filepath.Join(testdataDir, pattern))
		for _, path := range paths {
			// #nosec G304 -- пути из testdata репозитория
			src, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			seeds = append(seeds, bytes.Clone(src[:min(len(src), maxSeedBytes)]))
		}
	}
	return seeds
}
