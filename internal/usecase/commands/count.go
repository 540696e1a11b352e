package commands

import (
	"context"
	"strconv"

	"chanBot/internal/domain"
)

// maxCount keeps a single invocation from allocating an unbounded reply.
const maxCount = 1000

type CountCommand struct{}

func NewCountCommand() *CountCommand {
	return &CountCommand{}
}

func (c *CountCommand) Name() string {
	return "count"
}

func (c *CountCommand) Permission() domain.Permissions {
	return domain.PermOwner
}

func (c *CountCommand) Bucket() *Bucket {
	return nil
}

func (c *CountCommand) Execute(_ context.Context, _ *Context, args string) []string {
	n, err := strconv.ParseUint(args, 10, 32)
	if err != nil || n > maxCount {
		return nil
	}
	out := make([]string, 0, n)
	for i := uint64(0); i < n; i++ {
		out = append(out, strconv.FormatUint(i, 10))
	}
	return out
}
