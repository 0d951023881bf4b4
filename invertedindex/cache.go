package invertedindex

import (
	"encoding/binary"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/singleflight"
)

var (
	cacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cosdata",
		Subsystem: "invertedindex_cache",
		Name:      "hits_total",
		Help:      "Node lookups served from the in-memory cache.",
	})
	cacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cosdata",
		Subsystem: "invertedindex_cache",
		Name:      "misses_total",
		Help:      "Node lookups that required deserializing from disk.",
	})
	cacheWriteBacks = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cosdata",
		Subsystem: "invertedindex_cache",
		Name:      "writebacks_total",
		Help:      "Dirty nodes serialized back to disk on eviction.",
	})
)

func init() {
	prometheus.MustRegister(cacheHits, cacheMisses, cacheWriteBacks)
}

// cacheKey names a node's dim-file record by its file offset; the cache is
// partitioned by file offset into shards below, so a partition identifier
// is not part of the key itself (dim files are single, one per index).
type cacheKey FileOffset

const shardCount = 16

// InvertedIndexIDFCache is a sharded, capacity-bounded LRU from file offset
// to an already-deserialized *Node, with at-most-once concurrent loading
// per key and write-back eviction of dirty entries.
type InvertedIndexIDFCache struct {
	shards [shardCount]*cacheShard

	dimBufman     *BufferManager
	dataBufmans   *BufferManagerFactory[uint8]
	allocator     *OffsetAllocator
	dataFileParts uint8
}

type cacheShard struct {
	mu    sync.Mutex
	lru   *lru.Cache[cacheKey, *Node]
	group singleflight.Group
	owner *InvertedIndexIDFCache
}

// NewInvertedIndexIDFCache builds a cache with capacity entries spread
// across shardCount shards.
func NewInvertedIndexIDFCache(capacity int, dimBufman *BufferManager, dataBufmans *BufferManagerFactory[uint8], allocator *OffsetAllocator, dataFileParts uint8) (*InvertedIndexIDFCache, error) {
	c := &InvertedIndexIDFCache{
		dimBufman:     dimBufman,
		dataBufmans:   dataBufmans,
		allocator:     allocator,
		dataFileParts: dataFileParts,
	}
	perShard := capacity / shardCount
	if perShard < 1 {
		perShard = 1
	}
	for i := range c.shards {
		s := &cacheShard{owner: c}
		evictCb := func(key cacheKey, node *Node) {
			s.writeBack(node)
		}
		l, err := lru.NewWithEvict(perShard, evictCb)
		if err != nil {
			return nil, err
		}
		s.lru = l
		c.shards[i] = s
	}
	return c, nil
}

// shardFor hashes the file offset with xxhash rather than a plain modulo,
// so that offsets landing on round page-sized boundaries (a common case,
// since new pages and chunks are allocated in fixed strides) still spread
// evenly across shards.
func (c *InvertedIndexIDFCache) shardFor(key cacheKey) *cacheShard {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(key))
	h := xxhash.Sum64(buf[:])
	return c.shards[h%shardCount]
}

func (s *cacheShard) writeBack(node *Node) {
	if node.state.Load() != stateDirty {
		return
	}
	cacheWriteBacks.Inc()
	cursor := s.owner.dimBufman.OpenCursor()
	_, _ = node.Serialize(s.owner.dimBufman, s.owner.dataBufmans, s.owner.allocator, s.owner.dataFileParts, cursor)
}

// GetOrLoad returns the node at offset, deserializing it at most once even
// under concurrent callers; a second concurrent request for the same key
// parks until the first finishes and both see the same *Node.
func (c *InvertedIndexIDFCache) GetOrLoad(offset FileOffset) (*Node, error) {
	key := cacheKey(offset)
	shard := c.shardFor(key)

	shard.mu.Lock()
	if n, ok := shard.lru.Get(key); ok {
		shard.mu.Unlock()
		cacheHits.Inc()
		return n, nil
	}
	shard.mu.Unlock()

	v, err, _ := shard.group.Do(strconv.FormatUint(uint64(offset), 10), func() (any, error) {
		shard.mu.Lock()
		if n, ok := shard.lru.Get(key); ok {
			shard.mu.Unlock()
			return n, nil
		}
		shard.mu.Unlock()

		cacheMisses.Inc()
		n, err := DeserializeNode(c.dimBufman, c.dataBufmans, offset, c.dataFileParts)
		if err != nil {
			return nil, err
		}
		shard.mu.Lock()
		shard.lru.Add(key, n)
		shard.mu.Unlock()
		return n, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Node), nil
}

// Put installs an already-constructed node (e.g. one just created by an
// insert path) into the cache, so subsequent lookups avoid a round trip
// through disk.
func (c *InvertedIndexIDFCache) Put(offset FileOffset, node *Node) {
	shard := c.shardFor(cacheKey(offset))
	shard.mu.Lock()
	shard.lru.Add(cacheKey(offset), node)
	shard.mu.Unlock()
}
