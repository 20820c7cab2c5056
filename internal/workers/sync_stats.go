package workers

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/RealTimeMap/RealTimeMap-backend/domain"
)

const (
	statsChannelSize = 1024
	statsBatchSize   = 100
	flushInterval    = 1 * time.Second
)

// statsSyncer batches comment IDs whose denormalized counters went stale and
// recomputes them in the background. This is the only writer of CommentStat
// counters after creation.
type statsSyncer struct {
	commentRepo domain.CommentRepository
	ch          chan int64
}

var _ domain.StatSyncer = (*statsSyncer)(nil)

func NewStatsSyncer(commentRepo domain.CommentRepository) *statsSyncer {
	return &statsSyncer{
		commentRepo: commentRepo,
		ch:          make(chan int64, statsChannelSize),
	}
}

// Send never blocks; under pressure the task is dropped and the counters
// catch up on the next touch of the same comment.
func (s *statsSyncer) Send(commentID int64) {
	select {
	case s.ch <- commentID:
	default:
		logrus.Info("statsSyncer's channel is full, task dropped")
	}
}

func (s *statsSyncer) Start(ctx context.Context) {
	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	batch := make([]int64, 0, statsBatchSize)
	for {
		select {
		case id := <-s.ch:
			batch = append(batch, id)
			if len(batch) == statsBatchSize {
				s.flush(ctx, batch)
				batch = make([]int64, 0, statsBatchSize)
			}
		case <-ticker.C:
			s.flush(ctx, batch)
			batch = make([]int64, 0, statsBatchSize)
		case <-ctx.Done():
			logrus.Info("shutting down statsSyncer, flushing remaining tasks...")
			s.flush(context.Background(), batch)
			return
		}
	}
}

func (s *statsSyncer) flush(ctx context.Context, batch []int64) {
	if len(batch) == 0 {
		return
	}

	seen := make(map[int64]bool, len(batch))
	ids := make([]int64, 0, len(batch))
	for _, id := range batch {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	if err := s.commentRepo.RecomputeStats(ctx, ids); err != nil {
		logrus.Errorf("failed to recompute comment stats: %v", err)
	}
}
