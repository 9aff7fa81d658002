package sqlite_test

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/linkex"
	"github.com/fwojciec/linkex/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkWALMode compares write performance between WAL and rollback journal modes.
// This simulates a batch scrape: upserting many records.
func BenchmarkWALMode(b *testing.B) {
	b.Run("rollback_journal", func(b *testing.B) {
		benchmarkRecordUpserts(b, false)
	})

	b.Run("wal_mode", func(b *testing.B) {
		benchmarkRecordUpserts(b, true)
	})
}

func benchmarkRecordUpserts(b *testing.B, useWAL bool) {
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

	svc := sqlite.NewRecordService(db)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		rec := &linkex.Record{
			Kind:      linkex.KindPost,
			SourceURL: fmt.Sprintf("https://www.linkedin.com/posts/bench-%d", i),
			Post: &linkex.Post{
				Author:  fmt.Sprintf("Author %d", i),
				Content: "Lorem ipsum dolor sit amet, consectetur adipiscing elit.",
			},
		}
		if _, err := svc.UpsertRecord(ctx, rec); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSearchVectors measures brute-force search over a realistic corpus.
func BenchmarkSearchVectors(b *testing.B) {
	const (
		dims   = 384
		chunks = 500
	)

	db := sqlite.NewDB(":memory:")
	require.NoError(b, db.Open())
	defer db.Close()

	ctx := context.Background()
	rec := &linkex.Record{
		Kind:      linkex.KindArticle,
		SourceURL: "https://www.linkedin.com/pulse/bench",
		Article:   &linkex.Article{Title: "Bench", Content: "x"},
	}
	require.NoError(b, sqlite.NewRecordService(db).CreateRecord(ctx, rec))

	rng := rand.New(rand.NewPCG(1, 2))
	randomVector := func() []float32 {
		v := make([]float32, dims)
		for i := range v {
			v[i] = rng.Float32()
		}
		return v
	}

	batch := make([]*linkex.Chunk, chunks)
	for i := range batch {
		batch[i] = &linkex.Chunk{RecordID: rec.ID, Position: i, Content: "chunk", Embedding: randomVector()}
	}
	svc := sqlite.NewChunkService(db)
	require.NoError(b, svc.CreateChunks(ctx, batch))

	query := randomVector()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := svc.SearchVectors(ctx, query, linkex.SearchOptions{}); err != nil {
			b.Fatal(err)
		}
	}
}
