package sqlite_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/h2wp"
	"github.com/fwojciec/h2wp/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkWALMode compares write performance between WAL and rollback journal
// modes for the import workload: one post plus its source meta per file.
func BenchmarkWALMode(b *testing.B) {
	b.Run("rollback_journal", func(b *testing.B) {
		benchmarkPostInserts(b, false)
	})

	b.Run("wal_mode", func(b *testing.B) {
		benchmarkPostInserts(b, true)
	})
}

func benchmarkPostInserts(b *testing.B, useWAL bool) {
	b.Helper()

	dbPath := filepath.Join(b.TempDir(), "bench.db")

	db := sqlite.NewDB(dbPath)
	require.NoError(b, db.Open())

	ctx := context.Background()
	if !useWAL {
		_, err := db.ExecContext(ctx, "PRAGMA journal_mode = DELETE")
		require.NoError(b, err)
	}

	defer func() {
		db.Close()
		os.Remove(dbPath + "-wal")
		os.Remove(dbPath + "-shm")
	}()

	svc := sqlite.NewPostService(db)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		post := &h2wp.Post{
			Type:    h2wp.DefaultPostType,
			Status:  h2wp.DefaultStatus,
			Title:   fmt.Sprintf("Page %d", i),
			Content: fmt.Sprintf("<h1>Page %d</h1><p>This is the content of page %d with some additional text to make it more realistic.</p>", i, i),
		}
		if err := svc.CreatePost(ctx, post); err != nil {
			b.Fatal(err)
		}
		if err := svc.SetPostMeta(ctx, post.ID, h2wp.MetaSource, fmt.Sprintf("pages/page%d.html", i)); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkJobStep measures the cost of persisting job state, which happens
// once per batch step.
func BenchmarkJobStep(b *testing.B) {
	ctx := context.Background()

	db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, db.Open())
	defer db.Close()

	files := make([]string, 1000)
	for i := range files {
		files[i] = fmt.Sprintf("/site/pages/page%d.html", i)
	}

	store := sqlite.NewJobStore(db)
	opts := h2wp.DefaultImportOptions()
	opts.BasePath = "/site"
	job := &h2wp.Job{Options: opts, State: h2wp.NewJobState(files)}
	require.NoError(b, store.CreateJob(ctx, job))

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if err := store.SaveJobState(ctx, job.ID, job.State); err != nil {
			b.Fatal(err)
		}
	}
}
