package backend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"complaints/internal/cache"
	"complaints/internal/core"
	"complaints/internal/log"
	"complaints/internal/store"
	"complaints/internal/store/memory"
	"complaints/internal/store/mongo"
	"complaints/internal/store/sheets"
	"complaints/internal/store/sqlite"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.Default()
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		res *BackendResult
		err error
	)
	switch config.Type {
	case MemoryBackend:
		res, err = f.createMemoryBackend(config)
	case MongoBackend:
		res, err = f.createMongoBackend(ctx, config)
	case SQLiteBackend:
		res, err = f.createSQLiteBackend(config)
	case SheetsBackend:
		res, err = f.createSheetsBackend(ctx, config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
	if err != nil {
		return nil, err
	}
	if config.CacheTTL <= 0 {
		return res, nil
	}
	return f.withCache(ctx, config, res)
}

func (f *DefaultFactory) createMemoryBackend(config Config) (*BackendResult, error) {
	dataDir := config.DataDirectory
	if dataDir == "" {
		dataDir = "data"
	}
	st := memory.NewFromFiles(dataDir)

	f.logger.Info("Initialized memory backend", "data_directory", dataDir)
	return &BackendResult{Gateway: st}, nil
}

func (f *DefaultFactory) createMongoBackend(ctx context.Context, config Config) (*BackendResult, error) {
	dbName := config.MongoDatabase
	if dbName == "" {
		dbName = "complaints"
	}
	db, err := mongo.Connect(ctx, config.MongoURI, dbName)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	st := mongo.NewStore(db)
	if err := st.EnsureIndexes(ctx); err != nil {
		f.logger.Warn("Failed to ensure MongoDB indexes", log.FieldError, err)
	}

	f.logger.Info("Initialized MongoDB backend", "database", dbName)
	return &BackendResult{
		Gateway: st,
		Cleanup: func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return db.Client().Disconnect(ctx)
		},
	}, nil
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*BackendResult, error) {
	repo, err := sqlite.NewRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)
	return &BackendResult{Gateway: repo, Cleanup: repo.Close}, nil
}

func (f *DefaultFactory) createSheetsBackend(ctx context.Context, config Config) (*BackendResult, error) {
	cli, err := sheets.New(ctx, config.Sheets)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
	}

	f.logger.Info("Initialized Google Sheets backend",
		"complaints_sheet", config.Sheets.ComplaintsSheet,
		"categories_sheet", config.Sheets.CategoriesSheet)
	return &BackendResult{Gateway: cli}, nil
}

// withCache wraps the gateway in a read-through cache: Redis when a URL is
// configured, otherwise in-process LRU caches swept by a cache.Manager.
func (f *DefaultFactory) withCache(ctx context.Context, config Config, res *BackendResult) (*BackendResult, error) {
	cleanups := []CleanupFunc{res.Cleanup}

	var (
		subs cache.Cache[[]core.Submission]
		cats cache.Cache[[]string]
	)
	if config.RedisURL != "" {
		client, err := cache.NewRedisClient(ctx, config.RedisURL)
		if err != nil {
			_ = res.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		subs = cache.NewRedisCache[[]core.Submission](client, "complaints:", config.CacheTTL)
		cats = cache.NewRedisCache[[]string](client, "complaints:", config.CacheTTL)
		cleanups = append(cleanups, client.Close)
		f.logger.Info("Store cache enabled", "kind", "redis", "ttl", config.CacheTTL.String())
	} else {
		size := config.CacheSize
		if size <= 0 {
			size = 8
		}
		lruSubs := cache.NewLRUCache[[]core.Submission](size, config.CacheTTL)
		lruCats := cache.NewLRUCache[[]string](size, config.CacheTTL)
		manager := cache.NewManager()
		manager.Register(lruSubs)
		manager.Register(lruCats)
		manager.StartCleanup(config.CacheTTL)
		subs, cats = lruSubs, lruCats
		cleanups = append(cleanups, func() error { manager.Stop(); return nil })
		f.logger.Info("Store cache enabled", "kind", "lru", "ttl", config.CacheTTL.String())
	}

	return &BackendResult{
		Gateway: store.NewCached(res.Gateway, subs, cats),
		Cleanup: func() error {
			var errs []error
			for i := len(cleanups) - 1; i >= 0; i-- {
				if cleanups[i] != nil {
					errs = append(errs, cleanups[i]())
				}
			}
			return errors.Join(errs...)
		},
	}, nil
}
