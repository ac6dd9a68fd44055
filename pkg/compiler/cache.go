package compiler

import (
	"strconv"

	lru "github.com/hashicorp/golang-lru"
	"github.com/jensneuse/abstractlogger"
	"go.uber.org/atomic"

	"github.com/wundergraph/cqir/pkg/artifact"
	"github.com/wundergraph/cqir/pkg/document"
	"github.com/wundergraph/cqir/pkg/normalization"
	"github.com/wundergraph/cqir/pkg/pool"
	"github.com/wundergraph/cqir/pkg/resolver"
)

// Cache memoizes the artifacts of a Compiler.
// The key covers the canonical text of the definition, the validation flag and
// the bindings of every fragment module and property the definition refers to.
// Cached artifacts are shared and must not be modified.
type Cache struct {
	compiler *Compiler
	cache    *lru.Cache
	hits     *atomic.Int64
	misses   *atomic.Int64
}

func NewCache(compiler *Compiler) (*Cache, error) {
	cache, err := lru.New(compiler.config.CacheSize)
	if err != nil {
		return nil, err
	}
	return &Cache{
		compiler: compiler,
		cache:    cache,
		hits:     atomic.NewInt64(0),
		misses:   atomic.NewInt64(0),
	}, nil
}

func (c *Cache) Compile(definition *document.Definition, scope resolver.Scope, enableValidation bool) (*artifact.Artifact, error) {
	normalized, err := normalization.Normalize(definition)
	if err != nil {
		return nil, c.compiler.failed(definition, err)
	}

	key, err := c.key(definition, normalized, scope, enableValidation)
	if err != nil {
		return nil, err
	}
	if cached, ok := c.cache.Get(key); ok {
		if out, ok := cached.(*artifact.Artifact); ok {
			c.hits.Inc()
			c.compiler.log.Debug("compiler.Cache.Compile",
				abstractlogger.String("name", definition.Name),
				abstractlogger.String("result", "hit"),
			)
			return out, nil
		}
	}
	c.misses.Inc()

	out, err := c.compiler.compileNormalized(definition, normalized, scope, enableValidation)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, out)
	return out, nil
}

// CompileSource is Compiler.CompileSource going through the cache
func (c *Cache) CompileSource(name, source string, scope resolver.Scope, enableValidation bool) ([]*artifact.Artifact, error) {
	return compileSource(c, name, source, scope, enableValidation)
}

func (c *Cache) key(definition *document.Definition, normalized *normalization.Result, scope resolver.Scope, enableValidation bool) (uint64, error) {
	buf := pool.Bytes.Get()
	defer pool.Bytes.Put(buf)

	if err := document.Print(definition, buf); err != nil {
		return 0, err
	}
	buf.WriteString("\x00" + strconv.FormatBool(enableValidation))
	for _, slot := range normalized.Slots {
		module, property, err := resolver.FragmentNameParts(slot.FragmentName)
		if err != nil {
			// the compilation fails the same way for any scope
			continue
		}
		for _, name := range []string{module, property} {
			kind, ok := scope.LookupBinding(name)
			buf.WriteString("\x00" + name + "=" + strconv.FormatBool(ok) + ":" + kind.String())
		}
	}

	hash := pool.Hash64.Get()
	defer pool.Hash64.Put(hash)
	_, _ = hash.Write(buf.Bytes())
	return hash.Sum64(), nil
}

func (c *Cache) Hits() int64 {
	return c.hits.Load()
}

func (c *Cache) Misses() int64 {
	return c.misses.Load()
}

func (c *Cache) Len() int {
	return c.cache.Len()
}

func (c *Cache) Purge() {
	c.cache.Purge()
}
