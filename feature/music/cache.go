package music

import (
	"math/rand/v2"
	"sync"

	"stage-alts/core/hash40"
)

// FallbackSong is used when a stage has no category or the category is empty.
var FallbackSong = hash40.New("ui_bgm_crs2_02_senjyou")

// Cache answers song questions for the stage select hook.
type Cache struct {
	allowed    map[hash40.Hash40]struct{}
	categories map[hash40.Hash40][]hash40.Hash40
	records    map[hash40.Hash40]hash40.Hash40

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures a Cache.
type Option func(*Cache)

// WithRand replaces the random source, mainly for tests.
func WithRand(r *rand.Rand) Option {
	return func(c *Cache) {
		c.rng = r
	}
}

// Build creates a cache from category song lists and the record to category
// map. Every song in any category is allowed.
func Build(categories map[hash40.Hash40][]hash40.Hash40, records map[hash40.Hash40]hash40.Hash40, opts ...Option) *Cache {
	c := &Cache{
		allowed:    make(map[hash40.Hash40]struct{}),
		categories: make(map[hash40.Hash40][]hash40.Hash40, len(categories)),
		records:    make(map[hash40.Hash40]hash40.Hash40, len(records)),
		rng:        rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for id, songs := range categories {
		list := make([]hash40.Hash40, len(songs))
		copy(list, songs)
		c.categories[id] = list
		for _, s := range songs {
			c.allowed[s] = struct{}{}
		}
	}
	for record, category := range records {
		c.records[record] = category
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsAllowed reports whether song belongs to any category.
func (c *Cache) IsAllowed(song hash40.Hash40) bool {
	_, ok := c.allowed[song]
	return ok
}

// PickRandom returns a uniformly chosen song from record's category, or
// FallbackSong when there is nothing to choose from.
func (c *Cache) PickRandom(record hash40.Hash40) hash40.Hash40 {
	category, ok := c.records[record]
	if !ok {
		return FallbackSong
	}
	songs := c.categories[category]
	if len(songs) == 0 {
		return FallbackSong
	}

	c.mu.Lock()
	i := c.rng.IntN(len(songs))
	c.mu.Unlock()
	return songs[i]
}

// Stats summarizes the cache contents.
type Stats struct {
	Allowed    int `json:"allowed"`
	Categories int `json:"categories"`
	Records    int `json:"records"`
}

// Stats returns the number of allowed songs, categories and mapped records.
func (c *Cache) Stats() Stats {
	return Stats{
		Allowed:    len(c.allowed),
		Categories: len(c.categories),
		Records:    len(c.records),
	}
}
