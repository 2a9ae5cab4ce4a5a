package crypto

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// test that only valid RSA key sizes are accepted
func TestGenerateRSAKeyPair(t *testing.T) {
	tests := []struct {
		name    string
		bits    int
		wantErr bool
	}{
		{
			name:    "generate 2048-bit key",
			bits:    2048,
			wantErr: false,
		},
		{
			name:    "generate key with too small size",
			bits:    1024,
			wantErr: true,
		},
		{
			name:    "generate key with invalid size",
			bits:    2500,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			privateKey, err := GenerateRSAKeyPair(tt.bits)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if privateKey.N.BitLen() != tt.bits {
				t.Errorf("key bit length = %d, want %d", privateKey.N.BitLen(), tt.bits)
			}
		})
	}
}

// keys saved by keygen can be read back by the CLI, whatever the format
func TestSaveAndReadRSAPrivateKey(t *testing.T) {
	privateKey, err := GenerateRSAKeyPair(2048)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	dir := t.TempDir()

	if err := SaveRSAPrivateKeyToPEMFile(privateKey, dir, "private.pem"); err != nil {
		t.Fatalf("SaveRSAPrivateKeyToPEMFile() error = %v", err)
	}
	if err := SaveRSAPrivateKeyToJWKFile(privateKey, "kid-1", dir, "private.jwk"); err != nil {
		t.Fatalf("SaveRSAPrivateKeyToJWKFile() error = %v", err)
	}

	for _, filename := range []string{"private.pem", "private.jwk"} {
		t.Run(filename, func(t *testing.T) {
			info, err := os.Stat(filepath.Join(dir, filename))
			if err != nil {
				t.Fatal(err)
			}
			if info.Mode().Perm() != 0600 {
				t.Errorf("permissions = %v, want 0600", info.Mode().Perm())
			}

			got, err := ReadRSAPrivateKeyFile(dir, filename)
			if err != nil {
				t.Fatalf("ReadRSAPrivateKeyFile() error = %v", err)
			}
			if !got.Equal(privateKey) {
				t.Error("key read back does not match the saved key")
			}
		})
	}
}

func TestSaveRSAPublicKeyToPEMFile(t *testing.T) {
	privateKey, err := GenerateRSAKeyPair(2048)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	dir := t.TempDir()

	if err := SaveRSAPublicKeyToPEMFile(&privateKey.PublicKey, dir, "public.pem"); err != nil {
		t.Fatalf("SaveRSAPublicKeyToPEMFile() error = %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "public.pem"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "-----BEGIN PUBLIC KEY-----") {
		t.Errorf("unexpected PEM content: %s", data)
	}
}

func TestReadRSAPrivateKeyFileErrors(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "garbage.pem"), []byte("not a key"), 0600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		baseDir  string
		filename string
	}{
		{"missing directory", filepath.Join(dir, "missing"), "private.pem"},
		{"missing file", dir, "private.pem"},
		{"not a key", dir, "garbage.pem"},
		{"outside the base directory", dir, "../private.pem"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadRSAPrivateKeyFile(tt.baseDir, tt.filename); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
