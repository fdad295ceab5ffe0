// Package reconcile implements the reference reconciler: two subpasses
// that attach references whose parent declaration was unknown at ingest
// time, using symbol-id lookup first and a deterministic location
// heuristic second. Both subpasses fan out across a bounded worker pool,
// one goroutine per partition of pending work, mirroring the ingestion
// pool in internal/driver; graph.Graph's own mutex makes concurrent
// AttachReference/EnqueueDangling calls from those workers safe.
package reconcile

import (
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"deadwood/internal/graph"
)

// Latent attaches every reference bucketed under a referencer symbol id
// that now resolves to a committed declaration, one worker per referencer
// bucket.
func Latent(ctx context.Context, g *graph.Graph) error {
	buckets := g.PendingReferenceBuckets()

	referencers := make([]string, 0, len(buckets))
	for referencer := range buckets {
		referencers = append(referencers, referencer)
	}

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))

	for _, referencer := range referencers {
		refs := buckets[referencer]
		group.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			decl := g.BySymbol(referencer)
			if decl == nil {
				for _, ref := range refs {
					g.EnqueueDangling(ref)
				}
				return nil
			}
			for _, ref := range refs {
				g.AttachReference(decl, ref)
			}
			return nil
		})
	}

	return group.Wait()
}

// Dangling resolves references with no known referencer at all by
// location: prefer a candidate whose parent is unset, else the smallest
// by the deterministic (kind, location, name) order. The location index
// is built once up front (it must see every explicit declaration before
// any lookup), then the pending references are partitioned across a
// worker pool for resolution.
func Dangling(ctx context.Context, g *graph.Graph) error {
	explicit := g.ExplicitDeclarations()

	byLocation := make(map[graph.Location][]*graph.Declaration)
	byLine := make(map[lineKey][]*graph.Declaration)
	for _, d := range explicit {
		byLocation[d.Location] = append(byLocation[d.Location], d)
		lk := lineKey{file: d.Location.File, line: d.Location.StartLine}
		byLine[lk] = append(byLine[lk], d)
	}

	pending := g.PendingDangling()
	if len(pending) == 0 {
		return nil
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > len(pending) {
		workers = len(pending)
	}
	chunkSize := (len(pending) + workers - 1) / workers

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for start := 0; start < len(pending); start += chunkSize {
		end := start + chunkSize
		if end > len(pending) {
			end = len(pending)
		}
		chunk := pending[start:end]
		group.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			for _, ref := range chunk {
				candidates := byLocation[ref.Location]
				if len(candidates) == 0 {
					lk := lineKey{file: ref.Location.File, line: ref.Location.StartLine}
					candidates = byLine[lk]
				}
				target := pick(candidates)
				if target == nil {
					continue
				}
				g.AttachReference(target, ref)
			}
			return nil
		})
	}

	return group.Wait()
}

type lineKey struct {
	file string
	line int32
}

// pick selects the reconciliation target among candidates: a
// parent-unset declaration first (it is likely the top-level type the
// reference annotates), else the smallest by the total order over
// (kind ordinal, location, name).
func pick(candidates []*graph.Declaration) *graph.Declaration {
	if len(candidates) == 0 {
		return nil
	}
	if len(candidates) == 1 {
		return candidates[0]
	}

	var unparented []*graph.Declaration
	for _, c := range candidates {
		if c.Parent == 0 {
			unparented = append(unparented, c)
		}
	}
	pool := candidates
	if len(unparented) > 0 {
		pool = unparented
	}

	sort.Slice(pool, func(i, j int) bool {
		a, b := pool[i], pool[j]
		if a.Kind.Ordinal() != b.Kind.Ordinal() {
			return a.Kind.Ordinal() < b.Kind.Ordinal()
		}
		if a.Location.StartLine != b.Location.StartLine {
			return a.Location.StartLine < b.Location.StartLine
		}
		if a.Location.StartColumn != b.Location.StartColumn {
			return a.Location.StartColumn < b.Location.StartColumn
		}
		return a.Name < b.Name
	})
	return pool[0]
}
