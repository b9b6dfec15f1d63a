package strava

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/coocood/freecache"
)

const (
	// responses are kept for 15 minutes, in seconds
	responseCacheExpire = 15 * 60
	megabyte            = 1024 * 1024
	DefaultCacheSize    = 100 * megabyte

	// freecache refuses entries over 1/1024 of its size, keys included
	cacheEntryDivisor  = 1024
	maxCacheKeyLen     = 1024
	cacheEntryOverhead = 24 + maxCacheKeyLen
	minCacheChunkSize  = 1024

	// version (8 bytes) + chunk count (4 bytes) + total length (4 bytes)
	cacheHeaderLen = 16
)

var ErrCacheKeyTooLong = errors.New("response cache key too long")

// ResponseCache keeps response bodies in freecache. Bodies larger than a single
// freecache entry are stored as chunks behind a header entry; a body with any
// chunk missing is a miss.
type ResponseCache struct {
	cache     *freecache.Cache
	chunkSize int
	version   atomic.Uint64
}

// NewResponseCache creates the response cache shared by all clients.
func NewResponseCache(sizeBytes int) *ResponseCache {
	if sizeBytes <= 0 {
		sizeBytes = DefaultCacheSize
	}
	rc := &ResponseCache{
		cache:     freecache.NewCache(sizeBytes),
		chunkSize: max(sizeBytes/cacheEntryDivisor-cacheEntryOverhead, minCacheChunkSize),
	}
	rc.version.Store(uint64(time.Now().UnixNano()))
	return rc
}

func chunkKey(key []byte, version uint64, i int) []byte {
	chunk := make([]byte, 0, len(key)+48)
	chunk = append(chunk, key...)
	chunk = append(chunk, '#')
	chunk = strconv.AppendUint(chunk, version, 16)
	chunk = append(chunk, '#')
	return strconv.AppendInt(chunk, int64(i), 10)
}

// Set stores value under key for expireSeconds. Chunks are written before the header,
// so readers never see a header pointing at chunks of another write.
func (rc *ResponseCache) Set(key, value []byte, expireSeconds int) error {
	if len(key) > maxCacheKeyLen-48 {
		return ErrCacheKeyTooLong
	}

	version := rc.version.Add(1)
	chunks := 0
	for start := 0; start < len(value); start += rc.chunkSize {
		end := min(start+rc.chunkSize, len(value))
		if err := rc.cache.Set(chunkKey(key, version, chunks), value[start:end], expireSeconds); err != nil {
			return fmt.Errorf("set chunk %d: %w", chunks, err)
		}
		chunks++
	}

	header := make([]byte, cacheHeaderLen)
	binary.BigEndian.PutUint64(header[0:8], version)
	binary.BigEndian.PutUint32(header[8:12], uint32(chunks))
	binary.BigEndian.PutUint32(header[12:16], uint32(len(value)))
	if err := rc.cache.Set(key, header, expireSeconds); err != nil {
		return fmt.Errorf("set header: %w", err)
	}
	return nil
}

// Get returns the value stored under key. A missing header or chunk is freecache.ErrNotFound.
func (rc *ResponseCache) Get(key []byte) ([]byte, error) {
	header, err := rc.cache.Get(key)
	if err != nil {
		return nil, err
	}
	if len(header) != cacheHeaderLen {
		return nil, freecache.ErrNotFound
	}

	version := binary.BigEndian.Uint64(header[0:8])
	chunks := int(binary.BigEndian.Uint32(header[8:12]))
	total := int(binary.BigEndian.Uint32(header[12:16]))

	value := make([]byte, 0, total)
	for i := 0; i < chunks; i++ {
		chunk, err := rc.cache.Get(chunkKey(key, version, i))
		if err != nil {
			return nil, err
		}
		value = append(value, chunk...)
	}
	if len(value) != total {
		return nil, freecache.ErrNotFound
	}
	return value, nil
}
