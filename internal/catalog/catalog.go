// Package catalog owns the immutable product reference set and the filter
// pipeline that derives the listing shown to customers.
//
// The product set is loaded once from a YAML or JSON file and normalized in a
// single pass; every consumer afterwards observes the same canonical shape.
// Reloading (manual or via file watch) atomically replaces the whole set.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/yourusername/docemila/configs"
	"github.com/yourusername/docemila/internal/model"
	"github.com/yourusername/docemila/pkg/errors"
)

// productFile is the on-disk shape of the reference data.
type productFile struct {
	Products []model.Product `json:"products" yaml:"products"`
}

// Catalog holds the normalized product set. Reads vastly outnumber the rare
// reloads, so access is guarded by a RWMutex.
type Catalog struct {
	cfg    configs.CatalogConfig
	logger *zap.Logger

	mu       sync.RWMutex
	products []model.Product
	byID     map[int]model.Product
}

// New loads and normalizes the product file referenced by cfg.
func New(cfg configs.CatalogConfig, logger *zap.Logger) (*Catalog, error) {
	c := &Catalog{cfg: cfg, logger: logger}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload re-reads the product file. On any error the previous set stays
// active; a successful read replaces the whole normalized set atomically.
func (c *Catalog) Reload() error {
	products, err := loadFile(c.cfg.ProductsFile)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		return errors.ErrCatalogEmpty
	}

	normalized := Normalize(products, c.cfg)

	byID := make(map[int]model.Product, len(normalized))
	for _, p := range normalized {
		if _, dup := byID[p.ID]; dup {
			return fmt.Errorf("%w: %d", errors.ErrDuplicateProductID, p.ID)
		}
		byID[p.ID] = p
	}

	c.mu.Lock()
	c.products = normalized
	c.byID = byID
	c.mu.Unlock()

	c.logger.Info("catalog loaded",
		zap.String("file", c.cfg.ProductsFile),
		zap.Int("products", len(normalized)))
	return nil
}

// Products returns the normalized set in file order (relevance order).
// The returned slice is a copy; callers may not mutate catalog state.
func (c *Catalog) Products() []model.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Get returns the product with the given id, or ErrProductNotFound.
func (c *Catalog) Get(id int) (model.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.byID[id]
	if !ok {
		return model.Product{}, errors.ErrProductNotFound
	}
	return p, nil
}

// Len returns the number of products in the set.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.products)
}

// Meta returns the auxiliary listing data derived from the current set.
func (c *Catalog) Meta() model.CatalogMeta {
	products := c.Products()
	return model.CatalogMeta{
		Categories: CategoryCounts(products),
		PriceRange: model.PriceRange{Min: 0, Max: MaxPrice(products, c.cfg.PriceFloor)},
	}
}

// Apply runs the filter pipeline over the current set.
func (c *Catalog) Apply(criteria model.FilterCriteria) []model.Product {
	return Apply(c.Products(), criteria)
}

// Watch reloads the catalog whenever the product file changes on disk.
// It blocks until ctx is cancelled; run it in its own goroutine. Editors
// often replace files via rename, so the parent directory is watched and
// events are matched against the file name.
func (c *Catalog) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(c.cfg.ProductsFile)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	target := filepath.Clean(c.cfg.ProductsFile)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			if err := c.Reload(); err != nil {
				c.logger.Warn("catalog reload failed, keeping previous set",
					zap.Error(err))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.logger.Warn("catalog watcher error", zap.Error(err))
		}
	}
}

// Normalize returns a copy of products with missing fields filled in:
// category, rating, review count, and image fall back to the configured
// defaults, and an empty gallery becomes the single image. The defaulted
// review count is derived from the product id, so it is stable across
// filter runs and restarts rather than flickering on every recompute.
func Normalize(products []model.Product, cfg configs.CatalogConfig) []model.Product {
	out := make([]model.Product, len(products))
	for i, p := range products {
		if p.Category == "" {
			p.Category = cfg.DefaultCategory
		}
		if p.Rating == 0 {
			p.Rating = cfg.DefaultRating
		}
		if p.ReviewCount == 0 {
			p.ReviewCount = defaultReviewCount(p.ID, cfg.ReviewCountMin, cfg.ReviewCountMax)
		}
		if p.Image == "" {
			p.Image = cfg.DefaultImage
		}
		if len(p.Gallery) == 0 {
			p.Gallery = []string{p.Image}
		}
		out[i] = p
	}
	return out
}

// defaultReviewCount picks a value in [min, max] seeded by the product id.
func defaultReviewCount(id, min, max int) int {
	if max <= min {
		return min
	}
	rng := rand.New(rand.NewSource(int64(id)))
	return min + rng.Intn(max-min+1)
}

// loadFile reads the product file, detecting the format by extension.
func loadFile(filename string) ([]model.Product, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read product file: %w", err)
	}

	var pf productFile
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &pf)
	case ".json":
		err = json.Unmarshal(data, &pf)
	default:
		return nil, fmt.Errorf("unsupported product file format: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode product file: %w", err)
	}

	return pf.Products, nil
}
