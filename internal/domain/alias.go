package domain

import "context"

// Alias expands to a registered command line. Command holds the target command name
// followed by its fixed argument template.
type Alias struct {
	Name        string
	Permissions Permissions
	Command     string
}

type AliasRepository interface {
	// GetAlias devuelve (nil, nil) si el alias no existe.
	GetAlias(ctx context.Context, name string) (*Alias, error)
	PutAlias(ctx context.Context, alias *Alias) error
	// RemoveAlias no falla si el alias no existe.
	RemoveAlias(ctx context.Context, name string) error
	UpdateAliasPermissions(ctx context.Context, name string, perms Permissions) error
}
