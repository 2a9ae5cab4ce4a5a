package crypto

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
)

func TestRSAPublicKeyToJWK(t *testing.T) {
	privateKey, err := GenerateRSAKeyPair(2048)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}

	key, err := RSAPublicKeyToJWK(&privateKey.PublicKey, "kid-1")
	if err != nil {
		t.Fatalf("RSAPublicKeyToJWK() error = %v", err)
	}

	if kid, ok := key.KeyID(); !ok || kid != "kid-1" {
		t.Errorf("kid = %q, want kid-1", kid)
	}
	if alg, ok := key.Algorithm(); !ok || alg.String() != jwa.RS256().String() {
		t.Errorf("alg = %v, want RS256", alg)
	}
	if key.KeyType() != jwa.RSA() {
		t.Errorf("kty = %v, want RSA", key.KeyType())
	}
}

func TestGenerateKeyIDFromRSAKey(t *testing.T) {
	privateKey, err := GenerateRSAKeyPair(2048)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}

	kid1, err := GenerateKeyIDFromRSAKey(&privateKey.PublicKey)
	if err != nil {
		t.Fatalf("GenerateKeyIDFromRSAKey() error = %v", err)
	}
	kid2, err := GenerateKeyIDFromRSAKey(&privateKey.PublicKey)
	if err != nil {
		t.Fatalf("GenerateKeyIDFromRSAKey() error = %v", err)
	}
	if len(kid1) != 16 {
		t.Errorf("kid length = %d, want 16", len(kid1))
	}
	if kid1 != kid2 {
		t.Errorf("key id is not deterministic: %s != %s", kid1, kid2)
	}
}

func TestSaveRSAPublicKeyToJWKFile(t *testing.T) {
	privateKey, err := GenerateRSAKeyPair(2048)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	dir := t.TempDir()

	if err := SaveRSAPublicKeyToJWKFile(&privateKey.PublicKey, "kid-1", dir, "public.jwk"); err != nil {
		t.Fatalf("SaveRSAPublicKeyToJWKFile() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "public.jwk"))
	if err != nil {
		t.Fatal(err)
	}
	set, err := jwk.Parse(data)
	if err != nil {
		t.Fatalf("saved file is not a JWK set: %v", err)
	}
	key, ok := set.LookupKeyID("kid-1")
	if !ok {
		t.Fatal("key kid-1 not found in the saved set")
	}
	if _, ok := key.(jwk.RSAPublicKey); !ok {
		t.Errorf("expected an RSA public key, got %T", key)
	}
}
