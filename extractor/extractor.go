package extractor

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/copyforge/backend/stats"
)

// Buffer pool for response bodies
var bufferPool = sync.Pool{
	New: func() interface{} {
		return new(bytes.Buffer)
	},
}

// Cache entry with expiration
type cacheEntry struct {
	text      string
	timestamp time.Time
}

// CacheStats provides statistics about the extractor's cache
type CacheStats struct {
	Entries  int           `json:"entries"`
	Hits     int           `json:"hits"`
	Misses   int           `json:"misses"`
	CacheTTL time.Duration `json:"cacheTTL"`
}

// Extractor fetches web pages and converts them into the plain-text form the
// analyzer consumes: markdown-style headings followed by paragraph blocks
// separated by blank lines.
type Extractor struct {
	client          *http.Client
	cache           map[string]cacheEntry
	cacheMutex      sync.RWMutex
	cacheTTL        time.Duration
	maxCacheSize    int
	lastCleanup     time.Time
	cleanupInterval time.Duration
	stats           *stats.Storage
}

// New creates a new Extractor that records cache hit/miss counters in the
// given statistics storage.
func New(storage *stats.Storage) *Extractor {
	// Optimized HTTP client: pooled keep-alive connections, compression on.
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		DisableCompression:  false,
	}

	e := &Extractor{
		client: &http.Client{
			Timeout:   15 * time.Second,
			Transport: transport,
		},
		cache:           make(map[string]cacheEntry),
		cacheTTL:        30 * time.Minute,
		maxCacheSize:    1000,
		cleanupInterval: 5 * time.Minute,
		lastCleanup:     time.Now(),
		stats:           storage,
	}

	go e.periodicCleanup()

	return e
}

// periodicCleanup removes expired cache entries on a fixed interval
func (e *Extractor) periodicCleanup() {
	ticker := time.NewTicker(e.cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		e.cleanup()
	}
}

// cleanup removes expired entries and enforces the cache size limit
func (e *Extractor) cleanup() {
	now := time.Now()

	e.cacheMutex.Lock()
	defer e.cacheMutex.Unlock()

	for key, entry := range e.cache {
		if now.Sub(entry.timestamp) > e.cacheTTL {
			delete(e.cache, key)
		}
	}

	// If still over the size limit, evict oldest entries
	if len(e.cache) > e.maxCacheSize {
		entries := make([]struct {
			key       string
			timestamp time.Time
		}, 0, len(e.cache))

		for key, entry := range e.cache {
			entries = append(entries, struct {
				key       string
				timestamp time.Time
			}{key, entry.timestamp})
		}

		sort.Slice(entries, func(i, j int) bool {
			return entries[i].timestamp.Before(entries[j].timestamp)
		})

		for i := 0; i < len(entries)-e.maxCacheSize; i++ {
			delete(e.cache, entries[i].key)
		}
	}

	e.lastCleanup = now
}

// SetCacheTTL sets the cache TTL
func (e *Extractor) SetCacheTTL(ttl time.Duration) {
	e.cacheMutex.Lock()
	defer e.cacheMutex.Unlock()
	e.cacheTTL = ttl
}

// SetMaxCacheSize sets the maximum number of cached extractions
func (e *Extractor) SetMaxCacheSize(size int) {
	e.cacheMutex.Lock()
	e.maxCacheSize = size
	e.cacheMutex.Unlock()
	e.cleanup()
}

// ClearCache clears the extraction cache
func (e *Extractor) ClearCache() {
	e.cacheMutex.Lock()
	defer e.cacheMutex.Unlock()
	e.cache = make(map[string]cacheEntry)
}

// cacheKey creates a unique key for the URL
func cacheKey(url string) string {
	hash := md5.Sum([]byte(url))
	return hex.EncodeToString(hash[:])
}

// IsCached checks if a URL is in the cache and not expired
func (e *Extractor) IsCached(url string) bool {
	key := cacheKey(url)
	e.cacheMutex.RLock()
	defer e.cacheMutex.RUnlock()

	entry, found := e.cache[key]
	return found && time.Since(entry.timestamp) < e.cacheTTL
}

// GetCacheStats returns statistics about the cache
func (e *Extractor) GetCacheStats() CacheStats {
	current := e.stats.GetCurrentStats()

	e.cacheMutex.RLock()
	entries := len(e.cache)
	ttl := e.cacheTTL
	e.cacheMutex.RUnlock()

	return CacheStats{
		Entries:  entries,
		Hits:     current.FetchCacheHits,
		Misses:   current.FetchCacheMisses,
		CacheTTL: ttl,
	}
}

// Stats returns the statistics storage instance
func (e *Extractor) Stats() *stats.Storage {
	return e.stats
}

// Extract fetches the page at url and returns its analyzable text. Results
// are cached by URL for the configured TTL.
func (e *Extractor) Extract(ctx context.Context, url string) (string, error) {
	if time.Since(e.lastCleanup) > e.cleanupInterval {
		go e.cleanup()
	}

	key := cacheKey(url)
	e.cacheMutex.RLock()
	if entry, found := e.cache[key]; found && time.Since(entry.timestamp) < e.cacheTTL {
		e.cacheMutex.RUnlock()
		e.stats.IncrementFetch(1, 0)
		return entry.text, nil
	}
	e.cacheMutex.RUnlock()

	e.stats.IncrementFetch(0, 1)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	// Set user agent to avoid being blocked by some websites
	req.Header.Set("User-Agent", "CopyForge/1.0")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return "", fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufferPool.Put(buf)

	if _, err := io.Copy(buf, resp.Body); err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return "", err
	}

	text := documentText(doc)

	e.cacheMutex.Lock()
	e.cache[key] = cacheEntry{
		text:      text,
		timestamp: time.Now(),
	}
	e.cacheMutex.Unlock()

	return text, nil
}

// documentText converts an HTML document into markdown-ish plain text:
// h1-h6 become '#'-prefixed heading lines, paragraphs and list items become
// text blocks. When the page has no h1, the document title stands in for it.
func documentText(doc *goquery.Document) string {
	blocks := []string{}
	hasH1 := false

	doc.Find("h1, h2, h3, h4, h5, h6, p, li").Each(func(_ int, s *goquery.Selection) {
		text := strings.Join(strings.Fields(s.Text()), " ")
		if text == "" {
			return
		}
		name := goquery.NodeName(s)
		if len(name) == 2 && name[0] == 'h' && name[1] >= '1' && name[1] <= '6' {
			level := int(name[1] - '0')
			if level == 1 {
				hasH1 = true
			}
			blocks = append(blocks, strings.Repeat("#", level)+" "+text)
			return
		}
		blocks = append(blocks, text)
	})

	if !hasH1 {
		if title := strings.Join(strings.Fields(doc.Find("title").First().Text()), " "); title != "" {
			blocks = append([]string{"# " + title}, blocks...)
		}
	}

	if len(blocks) == 0 {
		return strings.Join(strings.Fields(doc.Find("body").Text()), " ")
	}

	return strings.Join(blocks, "\n\n")
}

// Shutdown flushes statistics and drops the cache.
func (e *Extractor) Shutdown() error {
	if e == nil {
		return nil
	}

	if e.stats != nil {
		if err := e.stats.Shutdown(); err != nil {
			return fmt.Errorf("failed to shutdown stats storage: %w", err)
		}
	}

	e.cacheMutex.Lock()
	e.cache = nil
	e.cacheMutex.Unlock()

	return nil
}
