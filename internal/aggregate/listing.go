package aggregate

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// Page is an optional listing window over ledger indices. A zero Limit
// means no window: every index from Start to the end of the ledger.
type Page struct {
	Start uint64
	Limit uint64
}

type window struct {
	start   uint64
	end     uint64 // exclusive
	hasMore bool
}

func pageWindow(total uint64, page Page) window {
	w := window{start: page.Start, end: total}
	if w.start > total {
		w.start = total
	}
	if page.Limit > 0 && page.Start+page.Limit < total {
		w.end = page.Start + page.Limit
		w.hasMore = true
	}
	return w
}

// collect builds one view record per index in the window. A failing index
// is logged and skipped; a single bad entity never aborts the listing.
// Builds run under a bounded concurrency window but the result keeps
// ledger order, and each invocation redoes all reads from scratch.
func collect[T any](ctx context.Context, logger *zap.Logger, kind string, workers int, w window, build func(context.Context, uint64) (T, error)) []T {
	if w.end <= w.start {
		return []T{}
	}
	n := w.end - w.start
	slots := make([]*T, n)

	if workers <= 1 {
		for i := w.start; i < w.end; i++ {
			if ctx.Err() != nil {
				break
			}
			record, err := build(ctx, i)
			if err != nil {
				logSkip(logger, kind, i, err)
				continue
			}
			slots[i-w.start] = &record
		}
	} else {
		sem := make(chan struct{}, workers)
		var wg sync.WaitGroup
		for i := w.start; i < w.end; i++ {
			if ctx.Err() != nil {
				break
			}
			sem <- struct{}{}
			wg.Add(1)
			go func(index uint64) {
				defer wg.Done()
				defer func() { <-sem }()
				record, err := build(ctx, index)
				if err != nil {
					logSkip(logger, kind, index, err)
					return
				}
				slots[index-w.start] = &record
			}(i)
		}
		wg.Wait()
	}

	records := make([]T, 0, n)
	for _, slot := range slots {
		if slot != nil {
			records = append(records, *slot)
		}
	}
	return records
}

func logSkip(logger *zap.Logger, kind string, index uint64, err error) {
	if errors.Is(err, errSkipped) {
		logger.Debug("skip entity", zap.String("kind", kind), zap.Uint64("index", index), zap.Error(err))
		return
	}
	logger.Warn("skip entity", zap.String("kind", kind), zap.Uint64("index", index), zap.Error(err))
}
