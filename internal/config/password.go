package config

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// PassphraseSlotKey is the local slot holding the admin passphrase override.
const PassphraseSlotKey = "vibetank_admin_password"

// ErrPassphraseDisabled is returned when no passphrase is configured at all.
var ErrPassphraseDisabled = errors.New("admin passphrase not configured")

// MaxPassphraseBytes is the bcrypt input limit. The pepper counts against it.
const MaxPassphraseBytes = 72

// PassphraseLengthError reports a passphrase bcrypt cannot hash.
type PassphraseLengthError struct {
	Length int // bytes
	Max    int // bytes allowed once the pepper is appended
}

func (e *PassphraseLengthError) Error() string {
	return fmt.Sprintf("passphrase is %d bytes, at most %d allowed", e.Length, e.Max)
}

// PasswordConfig holds configuration for password hashing and verification.
type PasswordConfig struct {
	BcryptCost int
	Pepper     string // optional global secret appended before hashing
}

// NewPasswordConfig creates a new password configuration from environment variables.
// It reads BCRYPT_COST (default: 12) and optionally PASSWORD_PEPPER.
func NewPasswordConfig() (*PasswordConfig, error) {
	costStr := os.Getenv("BCRYPT_COST")
	if costStr == "" {
		costStr = "12"
	}

	cost, err := strconv.Atoi(costStr)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %v", err)
	}

	config := &PasswordConfig{
		BcryptCost: cost,
		Pepper:     os.Getenv("PASSWORD_PEPPER"),
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *PasswordConfig) normalize() error {
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > 14 {
		return fmt.Errorf("bcrypt cost out of range: %d (must be %d-14)", c.BcryptCost, bcrypt.MinCost)
	}
	return nil
}

// MaxPasswordBytes is the longest password HashPassword accepts.
func (c *PasswordConfig) MaxPasswordBytes() int {
	return MaxPassphraseBytes - len(c.Pepper)
}

func (c *PasswordConfig) peppered(pw string) []byte {
	return []byte(pw + c.Pepper)
}

// HashPassword hashes a password using bcrypt.
func (c *PasswordConfig) HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(c.peppered(pw), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword verifies a password against a stored hash.
func (c *PasswordConfig) VerifyPassword(pw, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), c.peppered(pw)) == nil
}

// SlotStore is the key/value store the passphrase override lives in.
type SlotStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Passphrase checks the shared admin passphrase. An override stored in the
// slot store replaces the configured default.
type Passphrase struct {
	defaultPassword string
	slots           SlotStore
	hasher          *PasswordConfig
}

// NewPassphrase returns a Passphrase with the configured default.
func NewPassphrase(defaultPassword string, slots SlotStore, hasher *PasswordConfig) *Passphrase {
	return &Passphrase{defaultPassword: defaultPassword, slots: slots, hasher: hasher}
}

// Verify reports whether candidate matches the active passphrase.
// Returns ErrPassphraseDisabled when there is neither an override nor a default.
func (p *Passphrase) Verify(ctx context.Context, candidate string) (bool, error) {
	hash, ok, err := p.slots.Get(ctx, PassphraseSlotKey)
	if err != nil {
		return false, fmt.Errorf("failed to read passphrase override: %w", err)
	}
	if ok {
		return p.hasher.VerifyPassword(candidate, hash), nil
	}

	if p.defaultPassword == "" {
		return false, ErrPassphraseDisabled
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(p.defaultPassword)) == 1, nil
}

// SetOverride stores a new passphrase that replaces the default.
func (p *Passphrase) SetOverride(ctx context.Context, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("passphrase cannot be empty")
	}
	if limit := p.hasher.MaxPasswordBytes(); len(newPassword) > limit {
		return &PassphraseLengthError{Length: len(newPassword), Max: limit}
	}
	hash, err := p.hasher.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := p.slots.Set(ctx, PassphraseSlotKey, hash); err != nil {
		return fmt.Errorf("failed to store passphrase override: %w", err)
	}
	return nil
}

// ClearOverride removes the override so the default applies again.
func (p *Passphrase) ClearOverride(ctx context.Context) error {
	if err := p.slots.Delete(ctx, PassphraseSlotKey); err != nil {
		return fmt.Errorf("failed to clear passphrase override: %w", err)
	}
	return nil
}

// HasOverride reports whether an override is stored.
func (p *Passphrase) HasOverride(ctx context.Context) (bool, error) {
	_, ok, err := p.slots.Get(ctx, PassphraseSlotKey)
	if err != nil {
		return false, fmt.Errorf("failed to read passphrase override: %w", err)
	}
	return ok, nil
}
