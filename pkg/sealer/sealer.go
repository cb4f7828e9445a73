// Package sealer cifra secretos cortos (contraseñas recordadas del backend) con XChaCha20-Poly1305.
package sealer

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// ErrInvalidKey la clave no es de 32 bytes.
var ErrInvalidKey = errors.New("sealer: la clave debe tener 32 bytes")

// Sealer cifra y descifra con una clave fija de proceso.
type Sealer struct {
	key []byte
}

// New construye el sealer a partir de una clave de 32 bytes.
func New(key []byte) (*Sealer, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, ErrInvalidKey
	}
	k := make([]byte, len(key))
	copy(k, key)
	return &Sealer{key: k}, nil
}

// NewFromHex construye el sealer a partir de la clave en hexadecimal (CREDENTIALS_KEY).
func NewFromHex(hexKey string) (*Sealer, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("sealer: decodificar clave: %w", err)
	}
	return New(key)
}

// Seal devuelve base64(nonce || ciphertext).
func (s *Sealer) Seal(plaintext string) (string, error) {
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return "", fmt.Errorf("sealer: crear AEAD: %w", err)
	}
	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("sealer: generar nonce: %w", err)
	}
	out := aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(out), nil
}

// Open revierte Seal.
func (s *Sealer) Open(sealed string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("sealer: base64: %w", err)
	}
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return "", fmt.Errorf("sealer: crear AEAD: %w", err)
	}
	if len(data) < aead.NonceSize() {
		return "", errors.New("sealer: texto cifrado demasiado corto")
	}
	nonce, ciphertext := data[:aead.NonceSize()], data[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("sealer: descifrar: %w", err)
	}
	return string(plain), nil
}
