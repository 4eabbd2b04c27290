package tlsroots

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoCertsFound is returned when a certfile holds no certificates.
var ErrNoCertsFound = errors.New("no certificates found")

// certExts are the file extensions read from a certificate directory.
var certExts = map[string]bool{".pem": true, ".crt": true, ".cer": true}

// Bundle is the set of CA certificates read from a session certfile.
type Bundle struct {
	pool     *x509.CertPool
	subjects []string
}

// Load reads the certificates at path, a PEM bundle or a directory of
// PEM files. System roots are not included.
func Load(path string) (*Bundle, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	b := &Bundle{pool: x509.NewCertPool()}
	if !info.IsDir() {
		if err := b.addFile(path); err != nil {
			return nil, err
		}
		return b, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if entry.IsDir() || !certExts[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		// Unreadable or foreign files in a CA directory are skipped.
		_ = b.addFile(filepath.Join(path, entry.Name()))
	}
	if b.Len() == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoCertsFound, path)
	}
	return b, nil
}

func (b *Bundle) addFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	certs, err := parsePEM(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	for _, cert := range certs {
		b.pool.AddCert(cert)
		b.subjects = append(b.subjects, cert.Subject.CommonName)
	}
	return nil
}

// parsePEM returns the CERTIFICATE blocks of data. Other block types,
// such as private keys in a combined file, are ignored.
func parsePEM(data []byte) ([]*x509.Certificate, error) {
	var certs []*x509.Certificate
	for {
		var block *pem.Block
		block, data = pem.Decode(data)
		if block == nil {
			break
		}
		if block.Type != "CERTIFICATE" {
			continue
		}
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parse certificate: %w", err)
		}
		certs = append(certs, cert)
	}
	if len(certs) == 0 {
		return nil, ErrNoCertsFound
	}
	return certs, nil
}

// Len returns the number of certificates in the bundle.
func (b *Bundle) Len() int {
	return len(b.subjects)
}

// Subjects returns the common names of the bundled certificates.
func (b *Bundle) Subjects() []string {
	return b.subjects
}

// TLSConfig returns a client config that trusts only the bundle.
func (b *Bundle) TLSConfig() *tls.Config {
	return &tls.Config{RootCAs: b.pool, MinVersion: tls.VersionTLS12}
}

// ClientConfig builds the TLS config for talking to the Ultron API. With
// an empty certPath server certificates are not verified.
func ClientConfig(certPath string) (*tls.Config, error) {
	if certPath == "" {
		return &tls.Config{
			InsecureSkipVerify: true, //nolint:gosec // verification disabled by the session
			MinVersion:         tls.VersionTLS12,
		}, nil
	}
	b, err := Load(certPath)
	if err != nil {
		return nil, err
	}
	return b.TLSConfig(), nil
}
