package aggregate

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"
)

func TestPageWindow(t *testing.T) {
	cases := []struct {
		total uint64
		page  Page
		want  window
	}{
		{total: 10, page: Page{}, want: window{start: 0, end: 10}},
		{total: 10, page: Page{Start: 3}, want: window{start: 3, end: 10}},
		{total: 10, page: Page{Start: 2, Limit: 5}, want: window{start: 2, end: 7, hasMore: true}},
		{total: 10, page: Page{Start: 5, Limit: 5}, want: window{start: 5, end: 10}},
		{total: 10, page: Page{Start: 8, Limit: 5}, want: window{start: 8, end: 10}},
		{total: 10, page: Page{Start: 20}, want: window{start: 10, end: 10}},
		{total: 0, page: Page{Limit: 5}, want: window{start: 0, end: 0}},
	}
	for i, c := range cases {
		if got := pageWindow(c.total, c.page); got != c.want {
			t.Fatalf("case %d: got %+v want %+v", i, got, c.want)
		}
	}
}

func TestCollectKeepsOrder(t *testing.T) {
	build := func(ctx context.Context, i uint64) (uint64, error) {
		return i * 10, nil
	}
	for _, workers := range []int{1, 4} {
		got := collect(context.Background(), zap.NewNop(), "record", workers, window{start: 2, end: 7}, build)
		want := []uint64{20, 30, 40, 50, 60}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("workers=%d: got %v", workers, got)
		}
	}
}

func TestCollectSkipsFailures(t *testing.T) {
	build := func(ctx context.Context, i uint64) (uint64, error) {
		if i == 3 {
			return 0, errors.New("boom")
		}
		return i, nil
	}
	for _, workers := range []int{1, 4} {
		got := collect(context.Background(), zap.NewNop(), "record", workers, window{start: 0, end: 6}, build)
		want := []uint64{0, 1, 2, 4, 5}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("workers=%d: got %v", workers, got)
		}
	}
}

func TestCollectEmptyWindow(t *testing.T) {
	got := collect(context.Background(), zap.NewNop(), "record", 4, window{start: 5, end: 5}, func(ctx context.Context, i uint64) (uint64, error) {
		t.Error("build called on empty window")
		return 0, nil
	})
	if len(got) != 0 {
		t.Fatalf("got %v", got)
	}
}
