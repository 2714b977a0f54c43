package redis

import (
	"context"
	"fmt"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/dlfindex/internal/db"
)

// Transact runs WATCH setKey, SMEMBERS setKey and the batch returned by build inside
// MULTI/EXEC on a dedicated connection.
func (s *Store) Transact(
	ctx context.Context, setKey string, build func(members []string) (*db.TxBatch, error),
) error {
	return s.client.Dedicated(func(c rueidis.DedicatedClient) error {
		if err := c.Do(ctx, c.B().Watch().Key(setKey).Build()).Error(); err != nil {
			return wrapErr(db.OpWatch, err)
		}

		members, err := c.Do(ctx, c.B().Smembers().Key(setKey).Build()).AsStrSlice()
		if err != nil {
			unwatch(ctx, c)
			return wrapErr(db.OpSMembers, err)
		}

		batch, err := build(members)
		if err != nil {
			unwatch(ctx, c)
			return err
		}
		if batch.IsEmpty() {
			unwatch(ctx, c)
			return nil
		}

		results := c.DoMulti(ctx, txCommands(c, batch)...)
		return execResult(results)
	})
}

func txCommands(c rueidis.DedicatedClient, batch *db.TxBatch) []rueidis.Completed {
	cmds := make([]rueidis.Completed, 0, 3+len(batch.HSet)+len(batch.SAdd))
	cmds = append(cmds, c.B().Multi().Build())

	if len(batch.Del) > 0 {
		cmds = append(cmds, c.B().Del().Key(batch.Del...).Build())
	}
	for _, item := range batch.HSet {
		cmd := c.B().Hset().Key(item.Key).FieldValue()
		for k, v := range item.Fields {
			cmd = cmd.FieldValue(k, v)
		}
		cmds = append(cmds, cmd.Build())
	}
	for _, item := range batch.SAdd {
		if len(item.Members) == 0 {
			continue
		}
		cmds = append(cmds, c.B().Sadd().Key(item.Key).Member(item.Members...).Build())
	}

	return append(cmds, c.B().Exec().Build())
}

// execResult inspects the replies of MULTI, the queued commands and EXEC.
func execResult(results []rueidis.RedisResult) error {
	if len(results) == 0 {
		return &db.Error{Op: db.OpExec, Err: fmt.Errorf("%w: no replies", db.ErrUnavailable)}
	}
	for _, res := range results[:len(results)-1] {
		if err := res.Error(); err != nil {
			return wrapErr(db.OpExec, err)
		}
	}

	replies, err := results[len(results)-1].ToArray()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return db.ErrTxAborted
		}
		return wrapErr(db.OpExec, err)
	}
	for i := range replies {
		if err := replies[i].Error(); err != nil {
			return wrapErr(db.OpExec, err)
		}
	}
	return nil
}

func unwatch(ctx context.Context, c rueidis.DedicatedClient) {
	_ = c.Do(ctx, c.B().Unwatch().Build()).Error()
}
