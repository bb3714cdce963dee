package cache

import (
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/quantmind-br/onboarddocs-go/internal/domain"
)

// Options contains cache configuration options
type Options struct {
	Directory string
	InMemory  bool
	TTL       time.Duration
	Logger    bool
}

// DefaultOptions returns default cache options
func DefaultOptions() Options {
	return Options{
		Directory: "",
		InMemory:  false,
		TTL:       24 * time.Hour,
		Logger:    false,
	}
}

// BadgerCache stores finished analyses in BadgerDB, keyed by reference.
type BadgerCache struct {
	db  *badger.DB
	ttl time.Duration
}

// NewBadgerCache creates a new BadgerDB-backed analysis cache
func NewBadgerCache(opts Options) (*BadgerCache, error) {
	var badgerOpts badger.Options

	if opts.InMemory {
		badgerOpts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		badgerOpts = badger.DefaultOptions(opts.Directory)
	}

	// Disable logging unless explicitly enabled
	if !opts.Logger {
		badgerOpts = badgerOpts.WithLogger(nil)
	}

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, err
	}

	return &BadgerCache{db: db, ttl: opts.TTL}, nil
}

// Get retrieves a cached analysis. Returns domain.ErrCacheMiss when absent.
func (c *BadgerCache) Get(reference string) (*domain.RepositoryAnalysis, error) {
	key := AnalysisKey(reference)

	var value []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return domain.ErrCacheMiss
			}
			return err
		}

		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}

	var analysis domain.RepositoryAnalysis
	if err := json.Unmarshal(value, &analysis); err != nil {
		// A corrupt entry behaves like a miss.
		_ = c.Delete(reference)
		return nil, domain.ErrCacheMiss
	}

	return &analysis, nil
}

// Set stores an analysis with the configured TTL.
func (c *BadgerCache) Set(reference string, analysis *domain.RepositoryAnalysis) error {
	value, err := json.Marshal(analysis)
	if err != nil {
		return err
	}

	key := AnalysisKey(reference)
	return c.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(key), value)
		if c.ttl > 0 {
			e = e.WithTTL(c.ttl)
		}
		return txn.SetEntry(e)
	})
}

// Has checks if an analysis is cached for the reference
func (c *BadgerCache) Has(reference string) bool {
	key := AnalysisKey(reference)

	err := c.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(key))
		return err
	})

	return err == nil
}

// Delete removes a cached analysis
func (c *BadgerCache) Delete(reference string) error {
	key := AnalysisKey(reference)

	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

// Clear removes all entries from the cache
func (c *BadgerCache) Clear() error {
	return c.db.DropAll()
}

// Close releases cache resources
func (c *BadgerCache) Close() error {
	return c.db.Close()
}
