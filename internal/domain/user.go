package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common user validation errors
var (
	ErrEmptyUserID          = errors.New("user ID cannot be empty")
	ErrEmptyName            = errors.New("name cannot be empty")
	ErrEmptyEmail           = errors.New("email cannot be empty")
	ErrInvalidEmail         = errors.New("invalid email format")
	ErrEmptyPassword        = errors.New("password cannot be empty")
	ErrPasswordTooShort     = errors.New("password must be at least 7 characters long")
	ErrPasswordTooLong      = errors.New("password must be at most 72 characters long")
	ErrPasswordContainsWord = errors.New(`password cannot contain "password"`)
	ErrNegativeAge          = errors.New("age must be a non-negative number")
)

// User represents a registered account.
//
// Password holds a plaintext value only transiently, during registration or
// a password change; it is hashed before any write and never serialized.
// The avatar and hashed password are likewise excluded from JSON output.
type User struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Password       string    `json:"-"`
	HashedPassword string    `json:"-"`
	Age            int       `json:"age"`
	Avatar         []byte    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given name, email and plaintext
// password. The email is trimmed and lowercased, a new UUID is generated,
// and the creation/update timestamps are set. Returns a validation error if
// any field violates its constraints.
//
// The caller is responsible for hashing the password before storing the user.
func NewUser(name, email, password string, age int) (*User, error) {
	user := &User{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		Email:     NormalizeEmail(email),
		Password:  strings.TrimSpace(password),
		Age:       age,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// NormalizeEmail trims whitespace and lowercases an email address.
// Emails are compared and stored in this normalized form so that uniqueness
// is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate checks if the User has valid data.
// Returns an error describing the first violated constraint.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Name == "" {
		return ErrEmptyName
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if !validateEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	// During creation or a password change the plaintext is present and its
	// constraints apply. Existing users loaded from the store carry only the
	// hash; one of the two must be set.
	if u.Password != "" {
		if err := ValidatePassword(u.Password); err != nil {
			return err
		}
	} else if u.HashedPassword == "" {
		return ErrEmptyPassword
	}

	if u.Age < 0 {
		return ErrNegativeAge
	}

	return nil
}

// ValidatePassword checks a plaintext password against the account password
// rules: 7-72 characters and must not contain the substring "password" in
// any case. The upper bound is bcrypt's practical input limit.
func ValidatePassword(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if len(password) < 7 {
		return ErrPasswordTooShort
	}
	if len(password) > 72 {
		return ErrPasswordTooLong
	}
	if strings.Contains(strings.ToLower(password), "password") {
		return ErrPasswordContainsWord
	}
	return nil
}

// validateEmailFormat performs basic validation of email format.
// Returns true if the email appears to be in a valid format: a single @
// that is neither first nor last, and a dot inside the domain part that is
// neither immediately after the @ nor at the end.
func validateEmailFormat(email string) bool {
	atIndex := strings.IndexByte(email, '@')
	if atIndex <= 0 || atIndex == len(email)-1 {
		return false
	}
	if strings.IndexByte(email[atIndex+1:], '@') != -1 {
		return false
	}

	domainPart := email[atIndex+1:]
	if len(domainPart) < 3 { // minimum would be "a.b"
		return false
	}

	dotIndex := strings.IndexByte(domainPart, '.')
	if dotIndex <= 0 || dotIndex == len(domainPart)-1 {
		return false
	}

	return true
}
