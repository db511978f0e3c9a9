package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"vibely/pkg/logger"
)

const (
	watchMaxAttempts = 5
	watchBaseDelay   = 250 * time.Millisecond
	watchMaxDelay    = 4 * time.Second
)

// firestoreStream adapts a Firestore snapshot listener to the domain stream
// contract: every snapshot re-delivers the full ordered result set, Stop
// cancels the listener, and listener errors trigger a bounded exponential
// backoff resubscribe before the stream gives up and closes.
type firestoreStream[T any] struct {
	updates chan []*T
	cancel  context.CancelFunc
}

func (s *firestoreStream[T]) Updates() <-chan []*T {
	return s.updates
}

func (s *firestoreStream[T]) Stop() {
	s.cancel()
}

func watchQuery[T any](ctx context.Context, query firestore.Query, label string, decode func(*firestore.DocumentSnapshot) (*T, error)) *firestoreStream[T] {
	ctx, cancel := context.WithCancel(ctx)
	s := &firestoreStream[T]{
		updates: make(chan []*T, 1),
		cancel:  cancel,
	}

	go s.run(ctx, query, label, decode)

	return s
}

func (s *firestoreStream[T]) run(ctx context.Context, query firestore.Query, label string, decode func(*firestore.DocumentSnapshot) (*T, error)) {
	defer close(s.updates)

	attempts := 0

	for {
		snapIter := query.Snapshots(ctx)
		err := s.pump(ctx, snapIter, label, decode, &attempts)
		snapIter.Stop()

		if ctx.Err() != nil || status.Code(err) == codes.Canceled {
			return
		}

		attempts++
		if attempts > watchMaxAttempts {
			logger.Error("Watcher %s: giving up after %d resubscribe attempts: %v", label, watchMaxAttempts, err)
			return
		}

		delay := watchBaseDelay << (attempts - 1)
		if delay > watchMaxDelay {
			delay = watchMaxDelay
		}
		logger.Warn("Watcher %s: listener failed, resubscribing in %v (attempt %d): %v", label, delay, attempts, err)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return
		}
	}
}

func (s *firestoreStream[T]) pump(ctx context.Context, snapIter *firestore.QuerySnapshotIterator, label string, decode func(*firestore.DocumentSnapshot) (*T, error), attempts *int) error {
	for {
		snap, err := snapIter.Next()
		if err != nil {
			return err
		}

		// A delivered snapshot proves the subscription is healthy again.
		*attempts = 0

		var items []*T
		docs := snap.Documents
		for {
			doc, err := docs.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				return err
			}
			item, err := decode(doc)
			if err != nil {
				logger.Warn("Watcher %s: skipping undecodable document %s: %v", label, doc.Ref.ID, err)
				continue
			}
			items = append(items, item)
		}

		// Replace a stale pending delivery rather than blocking the
		// listener; the consumer only ever needs the latest full set.
		select {
		case s.updates <- items:
		case <-ctx.Done():
			return ctx.Err()
		default:
			select {
			case <-s.updates:
			default:
			}
			select {
			case s.updates <- items:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}
