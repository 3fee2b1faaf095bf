package auth

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
)

// Grant is the stored OAuth grant, compatible with the credentials file
// written by earlier releases.
type Grant struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refresh_token"`
	TokenURI     string    `json:"token_uri"`
	ClientID     string    `json:"client_id"`
	ClientSecret string    `json:"client_secret"`
	Scopes       []string  `json:"scopes"`
	Expiry       time.Time `json:"expiry,omitzero"`
}

// Store reads and writes the credentials file.
type Store struct {
	path string
}

// NewStore creates a credential store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the credentials file location.
func (s *Store) Path() string { return s.path }

// Load reads the stored grant. Returns (nil, nil) when no grant exists.
func (s *Store) Load() (*Grant, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, eris.Wrap(err, "auth: read credentials")
	}

	var g Grant
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, eris.Wrap(err, "auth: parse credentials")
	}
	return &g, nil
}

// Save writes the grant with owner-only permissions.
func (s *Store) Save(g *Grant) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return eris.Wrap(err, "auth: create credentials dir")
	}

	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return eris.Wrap(err, "auth: marshal credentials")
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return eris.Wrap(err, "auth: write credentials")
	}
	return nil
}

// Clear removes the stored grant. Missing file is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return eris.Wrap(err, "auth: remove credentials")
	}
	return nil
}
