package commands

import (
	"context"
	"errors"
	"sync"

	"chanBot/internal/domain"
)

var errStoreDown = errors.New("store down")

type memAliases struct {
	mu      sync.Mutex
	aliases map[string]domain.Alias
	failGet bool
	failPut bool
	puts    int
	removes int
}

func newMemAliases() *memAliases {
	return &memAliases{aliases: make(map[string]domain.Alias)}
}

func (m *memAliases) GetAlias(_ context.Context, name string) (*domain.Alias, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet {
		return nil, errStoreDown
	}
	a, ok := m.aliases[name]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (m *memAliases) PutAlias(_ context.Context, alias *domain.Alias) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	if m.failPut {
		return errStoreDown
	}
	m.aliases[alias.Name] = *alias
	return nil
}

func (m *memAliases) RemoveAlias(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removes++
	delete(m.aliases, name)
	return nil
}

func (m *memAliases) UpdateAliasPermissions(_ context.Context, name string, perms domain.Permissions) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.aliases[name]
	if !ok {
		return nil
	}
	a.Permissions = perms
	m.aliases[name] = a
	return nil
}

func (m *memAliases) get(name string) (domain.Alias, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.aliases[name]
	return a, ok
}

type memQuotes struct {
	mu     sync.Mutex
	quotes map[int64]string
	nextID int64
	fail   bool
}

func newMemQuotes() *memQuotes {
	return &memQuotes{quotes: make(map[int64]string), nextID: 1}
}

func (m *memQuotes) AddQuote(_ context.Context, text string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return 0, errStoreDown
	}
	id := m.nextID
	m.nextID++
	m.quotes[id] = text
	return id, nil
}

func (m *memQuotes) GetQuote(_ context.Context, id int64) (*domain.Quote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return nil, errStoreDown
	}
	text, ok := m.quotes[id]
	if !ok {
		return nil, nil
	}
	return &domain.Quote{ID: id, Text: text}, nil
}

func (m *memQuotes) RandomQuote(_ context.Context) (*domain.Quote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return nil, errStoreDown
	}
	for id, text := range m.quotes {
		return &domain.Quote{ID: id, Text: text}, nil
	}
	return nil, nil
}

func (m *memQuotes) RemoveQuote(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errStoreDown
	}
	delete(m.quotes, id)
	return nil
}

type flagRecorder struct {
	requested bool
}

func (f *flagRecorder) RequestShutdown() { f.requested = true }

// stubCommand records its invocations.
type stubCommand struct {
	name   string
	perm   domain.Permissions
	bucket *Bucket
	calls  []string
}

func (c *stubCommand) Name() string                   { return c.name }
func (c *stubCommand) Permission() domain.Permissions { return c.perm }
func (c *stubCommand) Bucket() *Bucket                { return c.bucket }

func (c *stubCommand) Execute(_ context.Context, _ *Context, args string) []string {
	c.calls = append(c.calls, args)
	return []string{c.name + ":" + args}
}

func caller(level domain.Level) domain.Caller {
	return domain.Caller{Login: "someone", Channel: "chan", Level: level}
}
