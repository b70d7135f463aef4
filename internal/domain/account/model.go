package account

import (
	"crypto/rand"
	"errors"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Max length constants for user-editable fields.
const (
	MaxEmailLength       = 254
	MaxDisplayNameLength = 100
	MaxPhoneLength       = 32
	MaxBanReasonLength   = 500
)

// MinPasswordLength is the shortest password accepted by SetPassword.
const MinPasswordLength = 12

// bcryptCost is the work factor for password hashes.
const bcryptCost = 12

// Role constants
const (
	RoleAdmin   = "admin"
	RoleTrainer = "trainer"
	RoleMember  = "member"
)

// Lockout policy
const (
	MaxFailedLogins = 5
	LockoutDuration = 15 * time.Minute
)

// ValidRoles contains all valid role values.
var ValidRoles = []string{RoleAdmin, RoleTrainer, RoleMember}

// Domain errors
var (
	ErrInvalidEmail      = errors.New("email must contain '@'")
	ErrEmptyEmail        = errors.New("email cannot be empty")
	ErrEmailTooLong      = errors.New("email cannot exceed 254 characters")
	ErrInvalidRole       = errors.New("role must be one of: admin, trainer, member")
	ErrEmptyPassword     = errors.New("password cannot be empty")
	ErrPasswordTooShort  = errors.New("password must be at least 12 characters")
	ErrWrongPassword     = errors.New("incorrect password")
	ErrDisplayNameLength = errors.New("display name cannot exceed 100 characters")
	ErrPhoneTooLong      = errors.New("phone cannot exceed 32 characters")
	ErrAlreadyBanned     = errors.New("account is already banned")
	ErrNotBanned         = errors.New("account is not banned")
	ErrCannotBanAdmin    = errors.New("admin accounts cannot be banned")
	ErrBanReasonTooLong  = errors.New("ban reason cannot exceed 500 characters")
)

// Account is a login identity: member, trainer or admin.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	Role         string
	DisplayName  string
	Phone        string
	CreatedAt    time.Time
	FailedLogins int
	LockedUntil  time.Time
	BannedAt     time.Time // zero when not banned
	BanReason    string
}

// Validate checks if the Account has valid data.
// PRE: Account struct is populated
// POST: Returns nil if valid, error otherwise
func (a *Account) Validate() error {
	if strings.TrimSpace(a.Email) == "" {
		return ErrEmptyEmail
	}
	if len(a.Email) > MaxEmailLength {
		return ErrEmailTooLong
	}
	if !strings.Contains(a.Email, "@") {
		return ErrInvalidEmail
	}
	if !IsValidRole(a.Role) {
		return ErrInvalidRole
	}
	if len(a.DisplayName) > MaxDisplayNameLength {
		return ErrDisplayNameLength
	}
	if len(a.Phone) > MaxPhoneLength {
		return ErrPhoneTooLong
	}
	return nil
}

// SetPassword hashes and stores a password using bcrypt with cost 12.
// PRE: plaintext is non-empty and >= 12 characters
// POST: PasswordHash is set to bcrypt hash
func (a *Account) SetPassword(plaintext string) error {
	if plaintext == "" {
		return ErrEmptyPassword
	}
	if len(plaintext) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return err
	}
	a.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
// PRE: PasswordHash is set
// INVARIANT: Account fields are not mutated
func (a *Account) CheckPassword(plaintext string) error {
	if a.PasswordHash == "" {
		return ErrWrongPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(plaintext)); err != nil {
		return ErrWrongPassword
	}
	return nil
}

// unknownAccountHash is compared against when no account matches, so an unknown
// email costs the same bcrypt work as a wrong password. No plaintext matches it.
var unknownAccountHash = sync.OnceValue(func() []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte(rand.Text()), bcryptCost)
	if err != nil {
		return nil
	}
	return hash
})

// CheckPasswordWithoutAccount runs a full-cost bcrypt comparison for a login whose
// email matched no account.
// POST: Always returns ErrWrongPassword
func CheckPasswordWithoutAccount(plaintext string) error {
	_ = bcrypt.CompareHashAndPassword(unknownAccountHash(), []byte(plaintext))
	return ErrWrongPassword
}

// IsLocked returns true if the account is locked out at now.
// INVARIANT: Account fields are not mutated
func (a *Account) IsLocked(now time.Time) bool {
	if a.LockedUntil.IsZero() {
		return false
	}
	return now.Before(a.LockedUntil)
}

// RecordFailedLogin increments the failed login counter and locks the account after 5 failures.
// A lock that has already expired is cleared first, so counting starts over.
// PRE: Account exists
// POST: FailedLogins incremented; LockedUntil set if >= 5 failures
func (a *Account) RecordFailedLogin(now time.Time) {
	if !a.LockedUntil.IsZero() && !now.Before(a.LockedUntil) {
		a.ResetFailedLogins()
	}
	a.FailedLogins++
	if a.FailedLogins >= MaxFailedLogins {
		a.LockedUntil = now.Add(LockoutDuration)
	}
}

// ResetFailedLogins clears the failed login counter and lock.
// PRE: Account exists
// POST: FailedLogins is 0, LockedUntil is zero
func (a *Account) ResetFailedLogins() {
	a.FailedLogins = 0
	a.LockedUntil = time.Time{}
}

// IsBanned reports whether an admin has banned the account.
func (a *Account) IsBanned() bool {
	return !a.BannedAt.IsZero()
}

// Ban blocks the account from logging in.
// PRE: Account is not an admin and not already banned
// POST: BannedAt and BanReason are set
func (a *Account) Ban(reason string, at time.Time) error {
	if a.Role == RoleAdmin {
		return ErrCannotBanAdmin
	}
	if a.IsBanned() {
		return ErrAlreadyBanned
	}
	if len(reason) > MaxBanReasonLength {
		return ErrBanReasonTooLong
	}
	a.BannedAt = at
	a.BanReason = strings.TrimSpace(reason)
	return nil
}

// Unban restores login access.
// PRE: Account is banned
// POST: BannedAt is zero, BanReason is empty
func (a *Account) Unban() error {
	if !a.IsBanned() {
		return ErrNotBanned
	}
	a.BannedAt = time.Time{}
	a.BanReason = ""
	return nil
}

// IsAdmin returns true if the account has admin role.
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// IsTrainer returns true if the account has trainer role.
func (a *Account) IsTrainer() bool {
	return a.Role == RoleTrainer
}

// Name returns the display name, falling back to the email local part.
func (a *Account) Name() string {
	if a.DisplayName != "" {
		return a.DisplayName
	}
	local, _, _ := strings.Cut(a.Email, "@")
	return local
}

// IsValidRole reports whether role is one of ValidRoles.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
