package services

import (
	"log"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/akashthakur2701/GitWrite/internal/models"
)

// Reconciler is the repair path for the denormalized counters. The toggles
// keep them exact under normal operation; this worker resets any post's
// counters to COUNT(*) of the underlying relation rows, correcting drift left
// by failures outside the transactional path (manual row surgery, partial
// restores). It never runs inside a request.
type Reconciler struct {
	db      *gorm.DB
	queue   chan string
	pending map[string]bool
	mu      sync.Mutex
	stop    chan struct{}
}

func NewReconciler(db *gorm.DB) *Reconciler {
	return &Reconciler{
		db:      db,
		queue:   make(chan string, 1000),
		pending: make(map[string]bool),
		stop:    make(chan struct{}),
	}
}

// Start launches the background worker. sweepInterval <= 0 disables the
// periodic full sweep; scheduled posts are still processed.
func (r *Reconciler) Start(sweepInterval time.Duration) {
	go r.worker(sweepInterval)
}

// Stop terminates the background worker.
func (r *Reconciler) Stop() {
	close(r.stop)
}

// Schedule queues a post for reconciliation, deduplicating posts already
// waiting. Non-blocking: if the queue is full the post is skipped and will be
// picked up by the next sweep.
func (r *Reconciler) Schedule(postID string) {
	r.mu.Lock()
	if r.pending[postID] {
		r.mu.Unlock()
		return
	}
	r.pending[postID] = true
	r.mu.Unlock()

	select {
	case r.queue <- postID:
	default:
		r.mu.Lock()
		delete(r.pending, postID)
		r.mu.Unlock()
		log.Printf("reconciler queue full, skipping post %s", postID)
	}
}

// Pending reports how many posts are queued for reconciliation.
func (r *Reconciler) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

func (r *Reconciler) worker(sweepInterval time.Duration) {
	var sweep <-chan time.Time
	if sweepInterval > 0 {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		sweep = ticker.C
	}

	for {
		select {
		case postID := <-r.queue:
			r.reconcileOne(postID)
		case <-sweep:
			if err := r.SweepAll(); err != nil {
				log.Printf("reconciliation sweep failed: %v", err)
			}
		case <-r.stop:
			return
		}
	}
}

func (r *Reconciler) reconcileOne(postID string) {
	if err := r.ReconcilePost(postID); err != nil {
		log.Printf("failed to reconcile post %s: %v", postID, err)
	}
	r.mu.Lock()
	delete(r.pending, postID)
	r.mu.Unlock()
}

// ReconcilePost sets the post's counters to the row counts in one statement,
// so a toggle committing concurrently is never half-applied into the result.
func (r *Reconciler) ReconcilePost(postID string) error {
	return r.db.Model(&models.Post{}).Where("id = ?", postID).
		UpdateColumns(map[string]interface{}{
			"likes_count":     gorm.Expr("(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id)"),
			"bookmarks_count": gorm.Expr("(SELECT COUNT(*) FROM bookmarks WHERE bookmarks.post_id = posts.id)"),
			"comments_count":  gorm.Expr("(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id)"),
		}).Error
}

// SweepAll reconciles every post. Intended for the periodic audit, not the
// request path.
func (r *Reconciler) SweepAll() error {
	start := time.Now()
	err := r.db.Model(&models.Post{}).Where("1 = 1").
		UpdateColumns(map[string]interface{}{
			"likes_count":     gorm.Expr("(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id)"),
			"bookmarks_count": gorm.Expr("(SELECT COUNT(*) FROM bookmarks WHERE bookmarks.post_id = posts.id)"),
			"comments_count":  gorm.Expr("(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id)"),
		}).Error
	if err == nil {
		log.Printf("counter reconciliation sweep completed in %s", time.Since(start))
	}
	return err
}
