// Package audit persists validation verdicts to Postgres so a caller can
// look up whether a given transaction hash was previously accepted or
// rejected without re-running Phase-1/Phase-2. It is optional: nothing in
// internal/validate depends on it, and a caller with no audit database
// configured simply never constructs a Store.
package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/go-cardano/ledgercheck/internal/result"
)

// Store records and looks up validation verdicts, keyed by transaction hash.
type Store struct {
	pool *pgxpool.Pool
}

// DefaultDSN is the connection string used when the caller does not supply
// one: a local Postgres instance reachable over the Unix socket, with one
// database per network so mainnet and preprod verdicts never mix.
func DefaultDSN(networkName string) string {
	return "user=root host=/var/run/postgresql port=5432 dbname=ledgercheck_" + networkName
}

// Open connects to the verdicts database at dsn and ensures its supporting
// indices exist.
func Open(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to Postgres: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.createSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() { s.pool.Close() }

func (s *Store) createSchema(ctx context.Context) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, `CREATE TABLE IF NOT EXISTS verdicts (
		tx_hash      TEXT PRIMARY KEY,
		valid        BOOLEAN NOT NULL,
		result       JSONB NOT NULL,
		recorded_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`); err != nil {
		return err
	}

	if _, err := conn.Exec(ctx, "CREATE INDEX IF NOT EXISTS idx_verdicts_valid ON verdicts USING btree (valid)"); err != nil {
		return err
	}
	if _, err := conn.Exec(ctx, "CREATE INDEX IF NOT EXISTS idx_verdicts_recorded_at ON verdicts USING btree (recorded_at)"); err != nil {
		return err
	}

	return nil
}

// Record upserts the verdict for a transaction hash, overwriting any prior
// verdict recorded for the same hash (a resubmission with a different
// context can legitimately produce a different result).
func (s *Store) Record(ctx context.Context, verdict result.ValidationResult) error {
	encoded, err := json.Marshal(verdict)
	if err != nil {
		return fmt.Errorf("encoding verdict for %s: %w", verdict.TxHash, err)
	}

	_, err = s.pool.Exec(ctx, `INSERT INTO verdicts (tx_hash, valid, result)
		VALUES ($1, $2, $3)
		ON CONFLICT (tx_hash) DO UPDATE SET valid = $2, result = $3, recorded_at = now()`,
		verdict.TxHash, verdict.Valid, encoded)
	if err != nil {
		return fmt.Errorf("recording verdict for %s: %w", verdict.TxHash, err)
	}
	return nil
}

// Lookup returns the most recently recorded verdict for a transaction
// hash, if one exists.
func (s *Store) Lookup(ctx context.Context, txHash string) (*result.ValidationResult, error) {
	row := s.pool.QueryRow(ctx, "SELECT result FROM verdicts WHERE tx_hash = $1", txHash)

	var encoded []byte
	if err := row.Scan(&encoded); err != nil {
		return nil, err
	}

	var verdict result.ValidationResult
	if err := json.Unmarshal(encoded, &verdict); err != nil {
		return nil, fmt.Errorf("decoding verdict for %s: %w", txHash, err)
	}
	return &verdict, nil
}
