package certgen

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"net"
	"os"
	"path/filepath"
	"testing"
)

func TestIssueServer_VerifiesAgainstAuthority(t *testing.T) {
	ca, err := NewAuthority("Test CA")
	if err != nil {
		t.Fatalf("NewAuthority: %v", err)
	}

	certPEM, keyPEM, err := ca.IssueServer("localhost", "127.0.0.1")
	if err != nil {
		t.Fatalf("IssueServer: %v", err)
	}
	if _, err := tls.X509KeyPair(certPEM, keyPEM); err != nil {
		t.Fatalf("cert and key do not match: %v", err)
	}

	block, _ := pem.Decode(certPEM)
	if block == nil {
		t.Fatal("no PEM block in server cert")
	}
	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		t.Fatalf("parse server cert: %v", err)
	}
	if cert.Subject.CommonName != "localhost" {
		t.Errorf("CN = %q; want localhost", cert.Subject.CommonName)
	}
	if len(cert.IPAddresses) != 1 || !cert.IPAddresses[0].Equal(net.ParseIP("127.0.0.1")) {
		t.Errorf("IPAddresses = %v; want [127.0.0.1]", cert.IPAddresses)
	}

	roots := x509.NewCertPool()
	roots.AddCert(ca.Cert)
	for _, host := range []string{"localhost", "127.0.0.1"} {
		if _, err := cert.Verify(x509.VerifyOptions{Roots: roots, DNSName: host}); err != nil {
			t.Errorf("verify for %s: %v", host, err)
		}
	}
}

func TestIssueServer_NoHosts(t *testing.T) {
	ca, err := NewAuthority("Test CA")
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := ca.IssueServer(); err == nil {
		t.Fatal("expected error for empty host list")
	}
}

func TestWriteFilesThenLoadAuthority(t *testing.T) {
	dir := t.TempDir()
	ca, err := NewAuthority("Test CA")
	if err != nil {
		t.Fatal(err)
	}
	if err := ca.WriteFiles(dir, "localhost"); err != nil {
		t.Fatalf("WriteFiles: %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, "server.key"))
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("server.key perm = %o; want 600", perm)
	}

	loaded, err := LoadAuthority(filepath.Join(dir, "ca.crt"), filepath.Join(dir, "ca.key"))
	if err != nil {
		t.Fatalf("LoadAuthority: %v", err)
	}
	if !loaded.Cert.Equal(ca.Cert) {
		t.Error("loaded CA cert differs from written one")
	}
	if !loaded.Key.Equal(ca.Key) {
		t.Error("loaded CA key differs from written one")
	}
}

func TestLoadAuthority_Errors(t *testing.T) {
	dir := t.TempDir()
	junk := filepath.Join(dir, "junk.pem")
	if err := os.WriteFile(junk, []byte("not pem"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadAuthority(filepath.Join(dir, "missing.crt"), junk); err == nil {
		t.Error("expected error for missing cert")
	}
	if _, err := LoadAuthority(junk, junk); err == nil {
		t.Error("expected error for invalid cert PEM")
	}

	ca, err := NewAuthority("Test CA")
	if err != nil {
		t.Fatal(err)
	}
	certPEM, _, err := ca.PEM()
	if err != nil {
		t.Fatal(err)
	}
	certPath := filepath.Join(dir, "ca.crt")
	if err := os.WriteFile(certPath, certPEM, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadAuthority(certPath, junk); err == nil {
		t.Error("expected error for invalid key PEM")
	}
}
