package project

import (
	"crypto/sha256"
	"encoding/binary"

	"fortio.org/safecast"
)

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash)
type Digest [32]byte

// Combine строит составной хеш: H( content || part1 || part2 ... ).
// Порядок parts должен быть детерминированным.
func Combine(content Digest, parts ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range parts {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// Digest хеширует настройки, влияющие на результат разбора.
// Файл с тем же содержимым, но другим max_depth, даёт другой ключ кэша.
func (p ParseConfig) Digest() Digest {
	depth, err := safecast.Conv[uint32](max(p.MaxDepth, 0))
	if err != nil {
		depth = 0
	}
	var buf [8]byte
	binary.LittleEndian.PutUint32(buf[:4], depth)
	binary.LittleEndian.PutUint32(buf[4:], p.TabSize)
	return sha256.Sum256(buf[:])
}
