// Package migrations installs the oauth1_tokens schema backing the SQL token
// state store.
package migrations

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	oauth1 "github.com/goliatone/go-oauth1"
	persistence "github.com/goliatone/go-persistence-bun"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"

	// TokenMigration is the only migration pair shipped for each dialect.
	TokenMigration = "00001_oauth1_tokens"

	rootDir = "data/sql/migrations"
)

var ErrUnsupportedDialect = errors.New("migrations: unsupported dialect")

// TokenSchema is the token migration pair for one dialect.
type TokenSchema struct {
	Dialect string
	Dir     string
	FS      fs.FS
}

type RegisterFunc func(ctx context.Context, schema TokenSchema) error

// Schema resolves the token migrations for dialect. root defaults to the
// embedded filesystem; a custom root must keep the data/sql/migrations layout.
func Schema(dialect string, root ...fs.FS) (TokenSchema, error) {
	normalized, err := normalizeDialect(dialect)
	if err != nil {
		return TokenSchema{}, err
	}

	source := oauth1.GetMigrationsFS()
	if len(root) > 0 && root[0] != nil {
		source = root[0]
	}

	dir := rootDir
	if normalized == DialectSQLite {
		dir = rootDir + "/sqlite"
	}
	sub, err := fs.Sub(source, dir)
	if err != nil {
		return TokenSchema{}, fmt.Errorf("migrations: resolve %s: %w", dir, err)
	}
	for _, suffix := range []string{".up.sql", ".down.sql"} {
		name := TokenMigration + suffix
		content, err := fs.ReadFile(sub, name)
		if err != nil {
			return TokenSchema{}, fmt.Errorf("migrations: %s schema is missing %s: %w", normalized, name, err)
		}
		if strings.TrimSpace(string(content)) == "" {
			return TokenSchema{}, fmt.Errorf("migrations: %s/%s is empty", dir, name)
		}
	}

	return TokenSchema{Dialect: normalized, Dir: dir, FS: sub}, nil
}

// Register resolves the schema for dialect and hands it to registerFn.
func Register(ctx context.Context, dialect string, registerFn RegisterFunc, root ...fs.FS) (TokenSchema, error) {
	if registerFn == nil {
		return TokenSchema{}, fmt.Errorf("migrations: register function is required")
	}
	schema, err := Schema(dialect, root...)
	if err != nil {
		return TokenSchema{}, err
	}
	if err := registerFn(ctx, schema); err != nil {
		return schema, fmt.Errorf("migrations: register %s: %w", schema.Dialect, err)
	}
	return schema, nil
}

// Apply registers the token schema on client and migrates it.
func Apply(ctx context.Context, client *persistence.Client, dialect string) error {
	if client == nil {
		return fmt.Errorf("migrations: persistence client is required")
	}
	schema, err := Register(ctx, dialect, func(_ context.Context, schema TokenSchema) error {
		client.RegisterSQLMigrations(schema.FS)
		return nil
	})
	if err != nil {
		return err
	}
	if err := client.Migrate(ctx); err != nil {
		return fmt.Errorf("migrations: migrate %s: %w", schema.Dialect, err)
	}
	return nil
}

func normalizeDialect(dialect string) (string, error) {
	switch strings.TrimSpace(strings.ToLower(dialect)) {
	case DialectPostgres:
		return DialectPostgres, nil
	case DialectSQLite:
		return DialectSQLite, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDialect, dialect)
	}
}
