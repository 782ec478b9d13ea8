package main

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"

	"github.com/rybkr/checkpointstore/internal/aesgcm"
	"github.com/rybkr/checkpointstore/internal/domain"
	"github.com/rybkr/checkpointstore/internal/localfs"
	"github.com/rybkr/checkpointstore/internal/ports"
	"github.com/rybkr/checkpointstore/internal/sha256hash"
	"github.com/rybkr/checkpointstore/internal/storelog"
	"github.com/rybkr/checkpointstore/internal/textdiff"
)

// saltPath holds the PBKDF2 salt for passphrase-derived keys. It lives
// alongside the manifest and is created on first use; it is not sensitive
// on its own, only in combination with the passphrase.
const saltPath = ".store/salt"

// engine bundles the adapters every subcommand constructs from the
// persistent flags, plus the logger those flags configure.
type engine struct {
	Storage ports.Storage
	Hasher  ports.Hasher
	Differ  ports.Differ
	Cipher  ports.Cipher
	Logger  *slog.Logger
}

func newEngine() (*engine, error) {
	store, err := localfs.New(flagStore)
	if err != nil {
		return nil, fmt.Errorf("opening store at %q: %w", flagStore, err)
	}
	return &engine{
		Storage: store,
		Hasher:  sha256hash.New(),
		Differ:  textdiff.New(),
		Cipher:  aesgcm.New(),
		Logger:  storelog.New(flagLogLevel, flagLogFormat),
	}, nil
}

// resolveKey derives a 32-byte encryption key from flagPassphrase, using a
// salt persisted at saltPath that is generated once per store. It returns
// nil (meaning "unencrypted") when no passphrase is configured.
func resolveKey(ctx context.Context, e *engine) ([]byte, error) {
	if flagPassphrase == "" {
		return nil, nil
	}

	salt, err := e.Storage.Read(ctx, saltPath)
	if err != nil {
		if kind, ok := domain.KindOf(err); !ok || kind != domain.KindNotFound {
			return nil, fmt.Errorf("reading salt: %w", err)
		}
		salt = make([]byte, 16)
		if _, rerr := rand.Read(salt); rerr != nil {
			return nil, fmt.Errorf("generating salt: %w", rerr)
		}
		if werr := e.Storage.Write(ctx, saltPath, salt); werr != nil {
			return nil, fmt.Errorf("writing salt: %w", werr)
		}
	}

	return e.Cipher.DeriveKey(flagPassphrase, salt), nil
}
