package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/user"
	"path/filepath"

	kjson "github.com/knadh/koanf/parsers/json"

	"github.com/yndnr/ultron-cli/internal/core/domain"
	"github.com/yndnr/ultron-cli/internal/infra/confloader"
)

// FileName is the session file name under the user's home directory.
const FileName = ".ultron_session.json"

// DefaultPath returns ~/.ultron_session.json.
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, FileName)
}

// file is the on-disk layout. CertFile is a path string or false.
type file struct {
	Endpoint  string `json:"endpoint"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	CertFile  any    `json:"certfile"`
	Inventory string `json:"inventory"`
}

// Store persists the session file.
type Store struct {
	path string
}

// NewStore creates a store for path. An empty path uses DefaultPath.
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultPath()
	}
	return &Store{path: path}
}

// Path returns the session file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the session. A missing or malformed file is a config error.
func (s *Store) Load() (*domain.Session, error) {
	if _, err := os.Stat(s.path); err != nil {
		return nil, domain.ErrConfig.WithDetails(s.path).WithCause(err)
	}

	loader := confloader.NewLoader(
		confloader.WithConfigFile(s.path),
		confloader.WithParser(kjson.Parser()),
		confloader.WithEnvPrefix(""),
	)
	if err := loader.Load(nil); err != nil {
		return nil, domain.ErrConfig.
			WithMessage("session file is malformed, run `ultron connect` again").
			WithDetails(s.path).
			WithCause(err)
	}

	sess := &domain.Session{
		Endpoint:  loader.String("endpoint"),
		Username:  loader.String("username"),
		Password:  loader.String("password"),
		Inventory: loader.String("inventory"),
	}
	// koanf would coerce false to "false", so read the raw value.
	if cert, ok := loader.Get("certfile").(string); ok {
		sess.CertFile = cert
	}
	return sess, nil
}

// Save writes sess atomically with mode 0600.
func (s *Store) Save(sess *domain.Session) error {
	f := file{
		Endpoint:  sess.Endpoint,
		Username:  sess.Username,
		Password:  sess.Password,
		CertFile:  false,
		Inventory: sess.Inventory,
	}
	if sess.CertFile != "" {
		f.CertFile = sess.CertFile
	}

	data, err := json.MarshalIndent(f, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	data = append(data, '\n')

	return writeFileAtomic(s.path, data, 0600)
}

// Clear removes the session file. A missing file is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// Bootstrap writes a placeholder session for the current OS user when no
// session file exists. It reports whether a file was written.
func (s *Store) Bootstrap() (bool, error) {
	if _, err := os.Stat(s.path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat session: %w", err)
	}

	if err := s.Save(domain.PlaceholderSession(currentUser())); err != nil {
		return false, err
	}
	return true, nil
}

// SetInventory updates the default inventory of the stored session.
func (s *Store) SetInventory(name string) (*domain.Session, error) {
	sess, err := s.Load()
	if err != nil {
		return nil, err
	}
	sess.Inventory = name
	if err := s.Save(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func currentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return os.Getenv("USERNAME")
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename session file: %w", err)
	}
	return os.Chmod(path, perm)
}
