package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/altproje-dev/altproje/db"
	"github.com/altproje-dev/altproje/internal/models"
	"github.com/altproje-dev/altproje/internal/storage"
)

// Reaper periodically deletes blobs that no SharedFile row references
// anymore. File deletion tolerates a failed blob removal (the row goes away
// regardless), so leaked blobs are expected and this is where they die.
type Reaper struct {
	store    storage.BlobStore
	interval time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewReaper(store storage.BlobStore, interval time.Duration) *Reaper {
	ctx, cancel := context.WithCancel(context.Background())
	return &Reaper{
		store:    store,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (r *Reaper) Start() {
	log.Printf("Starting blob reaper (interval %s)", r.interval)

	go func() {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-r.ctx.Done():
				return
			case <-ticker.C:
				if err := r.Sweep(r.ctx); err != nil {
					log.Printf("Blob reaper sweep failed: %v", err)
				}
			}
		}
	}()
}

func (r *Reaper) Stop() {
	log.Println("Stopping blob reaper")
	r.cancel()
}

// Sweep removes every blob without a matching shared_files row. Soft-deleted
// rows do not count as references; their blobs are fair game.
func (r *Reaper) Sweep(ctx context.Context) error {
	keys, err := r.store.List(ctx)
	if err != nil {
		return err
	}

	reaped := 0

	for _, key := range keys {
		var count int64

		err := db.DB.Model(&models.SharedFile{}).Where("file_name = ?", key).Count(&count).Error
		if err != nil {
			return err
		}

		if count > 0 {
			continue
		}

		if err := r.store.Delete(ctx, key); err != nil {
			log.Printf("Failed to reap orphan blob %s: %v", key, err)
			continue
		}

		reaped++
	}

	if reaped > 0 {
		log.Printf("Blob reaper removed %d orphan blob(s)", reaped)
	}

	return nil
}
