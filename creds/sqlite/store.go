package sqlite

import (
	"crypto/cipher"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/chacha20poly1305"
	_ "modernc.org/sqlite"

	"github.com/fplassist/go-fpl-client/creds"
)

// The pair is stored as two named rows so the on-disk layout matches the
// two-entry key/value contract the rest of the client preserves
// compatibility with.
const (
	accessName  = "access_token"
	refreshName = "refresh_token"
)

const schema = `
CREATE TABLE IF NOT EXISTS credentials (
	name  TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// Store is a durable credential store backed by a single SQLite file.
// Values are sealed with ChaCha20-Poly1305 before they touch disk.
type Store struct {
	db   *sql.DB
	aead cipher.AEAD
}

var _ creds.Store = (*Store)(nil)

// Open opens (creating if needed) the credential database at path. key must
// be a 32-byte sealing key.
func Open(path string, key []byte) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("[sqlite.Open] storage path is required")
	}

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, errors.Wrap(err, "[sqlite.Open] sealing key")
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "[sqlite.Open] open database")
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "[sqlite.Open] ping database")
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "[sqlite.Open] create schema")
	}

	return &Store{db: db, aead: aead}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns the persisted pair. A missing or partial row set yields
// creds.ErrNotFound: a half-written pair must never surface as a session.
func (s *Store) Load() (creds.Pair, error) {
	rows, err := s.db.Query(`SELECT name, value FROM credentials WHERE name IN (?, ?)`, accessName, refreshName)
	if err != nil {
		return creds.Pair{}, errors.Wrap(err, "[Store.Load] query")
	}
	defer rows.Close()

	sealed := make(map[string]string, 2)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return creds.Pair{}, errors.Wrap(err, "[Store.Load] scan")
		}
		sealed[name] = value
	}
	if err := rows.Err(); err != nil {
		return creds.Pair{}, errors.Wrap(err, "[Store.Load] rows")
	}

	if len(sealed) != 2 {
		return creds.Pair{}, creds.ErrNotFound
	}

	access, err := s.open(sealed[accessName])
	if err != nil {
		return creds.Pair{}, errors.Wrap(err, "[Store.Load] unseal access token")
	}
	refresh, err := s.open(sealed[refreshName])
	if err != nil {
		return creds.Pair{}, errors.Wrap(err, "[Store.Load] unseal refresh token")
	}

	return creds.Pair{Access: access, Refresh: refresh}, nil
}

// Save replaces the persisted pair. Both rows are written in one transaction
// so a concurrent Load sees the old pair or the new one, never a mix.
func (s *Store) Save(pair creds.Pair) error {
	if !pair.Valid() {
		return errors.New("[Store.Save] refusing to persist a partial pair")
	}

	sealedAccess, err := s.seal(pair.Access)
	if err != nil {
		return errors.Wrap(err, "[Store.Save] seal access token")
	}
	sealedRefresh, err := s.seal(pair.Refresh)
	if err != nil {
		return errors.Wrap(err, "[Store.Save] seal refresh token")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "[Store.Save] begin")
	}
	defer func() { _ = tx.Rollback() }()

	const upsert = `INSERT INTO credentials (name, value) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value`
	if _, err := tx.Exec(upsert, accessName, sealedAccess); err != nil {
		return errors.Wrap(err, "[Store.Save] write access token")
	}
	if _, err := tx.Exec(upsert, refreshName, sealedRefresh); err != nil {
		return errors.Wrap(err, "[Store.Save] write refresh token")
	}

	return errors.Wrap(tx.Commit(), "[Store.Save] commit")
}

// Delete removes both rows. Idempotent.
func (s *Store) Delete() error {
	_, err := s.db.Exec(`DELETE FROM credentials WHERE name IN (?, ?)`, accessName, refreshName)
	return errors.Wrap(err, "[Store.Delete] delete")
}

// seal encrypts one value and returns base64(nonce || ciphertext).
func (s *Store) seal(value string) (string, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", errors.Wrap(err, "read nonce")
	}
	ciphertext := s.aead.Seal(nil, nonce, []byte(value), nil)
	return base64.RawStdEncoding.EncodeToString(append(nonce, ciphertext...)), nil
}

// open decrypts one previously sealed value.
func (s *Store) open(sealed string) (string, error) {
	payload, err := base64.RawStdEncoding.DecodeString(sealed)
	if err != nil {
		return "", errors.Wrap(err, "decode sealed value")
	}
	nonceSize := s.aead.NonceSize()
	if len(payload) < nonceSize {
		return "", errors.New("sealed value is too short")
	}
	plaintext, err := s.aead.Open(nil, payload[:nonceSize], payload[nonceSize:], nil)
	if err != nil {
		return "", errors.Wrap(err, "decrypt sealed value")
	}
	return string(plaintext), nil
}
