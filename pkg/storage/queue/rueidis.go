package queue

import (
	"context"

	"github.com/redis/rueidis"
)

var _ Queue = (*RueidisQueue)(nil)

type RueidisQueue struct {
	rueidis rueidis.Client
	opts    *options
}

func NewRueidisQueue(client rueidis.Client, opts ...Option) *RueidisQueue {
	return &RueidisQueue{
		rueidis: client,
		opts:    newOptions(opts),
	}
}

func (q *RueidisQueue) Push(ctx context.Context, group string, t string) error {
	cmds := make(rueidis.Commands, 0, 3)

	cmds = append(cmds, q.rueidis.B().
		Rpush().
		Key(group).
		Element(t).
		Build())

	if q.opts.maxLength > 0 {
		cmds = append(cmds, q.rueidis.B().
			Ltrim().
			Key(group).
			Start(-q.opts.maxLength).
			Stop(-1).
			Build())
	}
	if q.opts.ttl > 0 {
		cmds = append(cmds, q.rueidis.B().
			Expire().
			Key(group).
			Seconds(int64(q.opts.ttl.Seconds())).
			Build())
	}

	for _, v := range q.rueidis.DoMulti(ctx, cmds...) {
		if v.Error() != nil {
			return v.Error()
		}
	}

	return nil
}

func (q *RueidisQueue) Pop(ctx context.Context, group string) (string, error) {
	lpopCmd := q.rueidis.B().
		Lpop().
		Key(group).
		Build()

	elem, err := q.rueidis.Do(ctx, lpopCmd).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return "", nil
		}

		return "", err
	}

	return elem, nil
}

// PopAll reads and removes the whole group atomically.
func (q *RueidisQueue) PopAll(ctx context.Context, group string) ([]string, error) {
	lrangeCmd := q.rueidis.B().
		Lrange().
		Key(group).
		Start(0).
		Stop(-1).
		Build()

	delCmd := q.rueidis.B().
		Del().
		Key(group).
		Build()

	res := q.rueidis.DoMulti(ctx,
		q.rueidis.B().Multi().Build(),
		lrangeCmd,
		delCmd,
		q.rueidis.B().Exec().Build(),
	)
	for _, v := range res {
		if err := v.Error(); err != nil {
			return make([]string, 0), err
		}
	}

	execResult, err := res[len(res)-1].ToArray()
	if err != nil {
		return make([]string, 0), err
	}
	if len(execResult) == 0 {
		return make([]string, 0), nil
	}

	elems, err := execResult[0].AsStrSlice()
	if err != nil {
		return make([]string, 0), err
	}

	return elems, nil
}
