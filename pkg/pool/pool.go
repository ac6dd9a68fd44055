// Package pool keeps reusable hashers and buffers for hot paths like cache key computation.
package pool

import (
	"bytes"
	"sync"

	"github.com/cespare/xxhash/v2"
)

var (
	Hash64 = hash64Pool{
		pool: sync.Pool{
			New: func() interface{} {
				return xxhash.New()
			},
		},
	}
	Bytes = bytesPool{
		pool: sync.Pool{
			New: func() interface{} {
				return &bytes.Buffer{}
			},
		},
	}
)

type hash64Pool struct {
	pool sync.Pool
}

// Get returns a reset digest
func (h *hash64Pool) Get() *xxhash.Digest {
	xxh := h.pool.Get().(*xxhash.Digest)
	xxh.Reset()
	return xxh
}

func (h *hash64Pool) Put(xxh *xxhash.Digest) {
	h.pool.Put(xxh)
}

type bytesPool struct {
	pool sync.Pool
}

// Get returns an empty buffer
func (b *bytesPool) Get() *bytes.Buffer {
	buf := b.pool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func (b *bytesPool) Put(buf *bytes.Buffer) {
	b.pool.Put(buf)
}
