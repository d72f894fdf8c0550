package transform

import (
	"golang.org/x/sync/errgroup"

	"github.com/lumen-ml/lumen/internal/ref"
	"github.com/lumen-ml/lumen/internal/trace"
)

// Shard parallelizes fn over n shards, one goroutine per shard.
//
// The gate mirrors Vmap: closed-over refs are rejected since every shard
// would race to update the same cell. Ref arguments must additionally be
// disjoint across shards; the same ref appearing in two shard slots would
// be touched concurrently without synchronization.
func Shard(t *trace.Tracer, fn trace.Func, n int) (func(args ...Batched) ([]ref.Array, error), error) {
	if err := checkNoCapturedRefs("shard", fn); err != nil {
		return nil, err
	}

	sharded := func(args ...Batched) ([]ref.Array, error) {
		if err := checkShardRefsDisjoint(args); err != nil {
			return nil, err
		}

		perShard := make([][]ref.Value, n)
		var g errgroup.Group
		for i := 0; i < n; i++ {
			g.Go(func() error {
				shardArgs, err := elementArgs(args, i, n)
				if err != nil {
					return err
				}
				outputs, _, err := t.Run(fn, shardArgs...)
				if err != nil {
					return err
				}
				perShard[i] = outputs
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return stackOutputs(perShard, n)
	}
	return sharded, nil
}

func checkShardRefsDisjoint(args []Batched) error {
	seen := make(map[*ref.Ref]bool)
	for _, arg := range args {
		refs, ok := arg.(Refs)
		if !ok {
			continue
		}
		for _, r := range refs {
			if seen[r] {
				return &trace.TransformIncompatibleError{
					Transform: "shard",
					Ref:       r.ID(),
					Reason:    "same ref supplied to more than one shard",
				}
			}
			seen[r] = true
		}
	}
	return nil
}
