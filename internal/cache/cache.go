// Package cache stores compile results in a sqlite database, keyed by a hash
// of the source and the compiler version.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/thp-lang/thp/internal/compiler"
	"github.com/thp-lang/thp/internal/compiler/errors"
)

// Compilation is one cached compile: either PHP output or the diagnostic
// that stopped it, stored as JSON.
type Compilation struct {
	ID         uint   `gorm:"primaryKey"`
	Hash       string `gorm:"uniqueIndex;size:64"`
	Output     string
	Diagnostic string
	CreatedAt  time.Time
}

// Entry is a cache hit.
type Entry struct {
	Output     string
	Diagnostic *errors.Diagnostic
}

// Err returns the cached diagnostic as an error, or nil for a successful
// compile.
func (e *Entry) Err() error {
	if e.Diagnostic == nil {
		return nil
	}
	return e.Diagnostic
}

type Cache struct {
	db *gorm.DB
}

// Open opens (or creates) the cache database at path.
func Open(path string) (*Cache, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening cache %s: %w", path, err)
	}
	if err := db.AutoMigrate(&Compilation{}); err != nil {
		return nil, fmt.Errorf("migrating cache: %w", err)
	}
	return &Cache{db: db}, nil
}

// Key is the cache key of source for the running compiler version.
func Key(source string) string {
	sum := sha256.Sum256([]byte(compiler.Version + "\x00" + source))
	return hex.EncodeToString(sum[:])
}

// Get looks source up. A miss returns a nil entry and a nil error.
func (c *Cache) Get(ctx context.Context, source string) (*Entry, error) {
	var row Compilation
	err := c.db.WithContext(ctx).First(&row, "hash = ?", Key(source)).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading cache: %w", err)
	}

	entry := &Entry{Output: row.Output}
	if row.Diagnostic != "" {
		entry.Diagnostic = &errors.Diagnostic{}
		if err := json.Unmarshal([]byte(row.Diagnostic), entry.Diagnostic); err != nil {
			return nil, fmt.Errorf("decoding cached diagnostic: %w", err)
		}
	}
	return entry, nil
}

// Put stores the result of compiling source. d is nil for a successful
// compile. An existing row for the same source is replaced.
func (c *Cache) Put(ctx context.Context, source, output string, d *errors.Diagnostic) error {
	row := Compilation{Hash: Key(source), Output: output}
	if d != nil {
		data, err := json.Marshal(d)
		if err != nil {
			return fmt.Errorf("encoding diagnostic: %w", err)
		}
		row.Diagnostic = string(data)
	}

	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("hash = ?", row.Hash).Delete(&Compilation{}).Error; err != nil {
			return err
		}
		return tx.Create(&row).Error
	})
}

// Compile returns the cached result for source, compiling and storing it on
// a miss. hit reports whether the cache answered.
func (c *Cache) Compile(ctx context.Context, source string) (output string, hit bool, err error) {
	entry, err := c.Get(ctx, source)
	if err != nil {
		return "", false, err
	}
	if entry != nil {
		return entry.Output, true, entry.Err()
	}

	output, compileErr := compiler.Compile(source)
	var d *errors.Diagnostic
	if compileErr != nil && !stderrors.As(compileErr, &d) {
		return "", false, compileErr
	}
	if err := c.Put(ctx, source, output, d); err != nil {
		return "", false, err
	}
	return output, false, compileErr
}

// Len returns the number of cached compilations.
func (c *Cache) Len(ctx context.Context) (int64, error) {
	var n int64
	err := c.db.WithContext(ctx).Model(&Compilation{}).Count(&n).Error
	return n, err
}

func (c *Cache) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
