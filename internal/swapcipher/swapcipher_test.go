package swapcipher

import (
	"bytes"
	"testing"

	"github.com/shieldedpool/core/pkg/field"
)

func TestSealOpenRoundTrip(t *testing.T) {
	ivk, err := field.RandomFq()
	if err != nil {
		t.Fatalf("RandomFq: %v", err)
	}
	gd := field.BasePoint()
	pkd := field.ScalarMul(gd, ivk)

	esk, err := field.RandomFq()
	if err != nil {
		t.Fatalf("RandomFq: %v", err)
	}
	epk := field.ScalarMul(gd, esk)

	plaintext := bytes.Repeat([]byte{0x42}, PlaintextLen)
	ct, err := Seal(esk, pkd, epk, plaintext)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if len(ct) != CiphertextLen {
		t.Fatalf("ciphertext length = %d, want %d", len(ct), CiphertextLen)
	}

	got, err := Open(ivk, epk, ct)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Error("decrypted plaintext does not match the original")
	}
}

func TestOpenWrongKeyFails(t *testing.T) {
	gd := field.BasePoint()
	esk, _ := field.RandomFq()
	epk := field.ScalarMul(gd, esk)
	rightIvk, _ := field.RandomFq()
	pkd := field.ScalarMul(gd, rightIvk)

	plaintext := bytes.Repeat([]byte{0x1}, PlaintextLen)
	ct, err := Seal(esk, pkd, epk, plaintext)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	wrongIvk, _ := field.RandomFq()
	if _, err := Open(wrongIvk, epk, ct); err != DecryptError {
		t.Errorf("Open with wrong key = %v, want DecryptError", err)
	}
}

func TestOpenTamperedCiphertextFails(t *testing.T) {
	ivk, _ := field.RandomFq()
	gd := field.BasePoint()
	pkd := field.ScalarMul(gd, ivk)
	esk, _ := field.RandomFq()
	epk := field.ScalarMul(gd, esk)

	plaintext := bytes.Repeat([]byte{0x7}, PlaintextLen)
	ct, err := Seal(esk, pkd, epk, plaintext)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	ct[0] ^= 1
	if _, err := Open(ivk, epk, ct); err != DecryptError {
		t.Errorf("Open tampered ciphertext = %v, want DecryptError", err)
	}
}

func TestOpenWrongLengthFails(t *testing.T) {
	ivk, _ := field.RandomFq()
	if _, err := Open(ivk, field.BasePoint(), []byte("too short")); err != DecryptError {
		t.Errorf("Open wrong-length ciphertext = %v, want DecryptError", err)
	}
}
