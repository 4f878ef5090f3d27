package account

import "errors"

var (
	ErrAccountNotFound = errors.New("account not found")

	// ErrEmailTaken / ErrUsernameTaken scope to active accounts only; a
	// deactivated row never blocks a new signup.
	ErrEmailTaken    = errors.New("email already in use")
	ErrUsernameTaken = errors.New("username already in use")

	// ErrProviderConflict: the email is already owned by an active account
	// under a different social provider. Wrapped with the owning provider's
	// name when raised.
	ErrProviderConflict = errors.New("email registered with another provider")

	ErrUnsupportedProvider = errors.New("unsupported provider")
	ErrEmailUnavailable    = errors.New("provider supplied no email")

	// ErrInvalidCredentials is deliberately undifferentiated: login must not
	// reveal whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrEmailNotVerified = errors.New("email not verified")

	ErrEmailRequired    = errors.New("email required")
	ErrUsernameRequired = errors.New("username required")
	ErrPasswordRequired = errors.New("password required")

	// ErrSocialAccountExists: a (provider, providerId) pair is already bound
	// to an active account.
	ErrSocialAccountExists = errors.New("social account already registered")

	ErrTooManyCodeRequests = errors.New("too many verification code requests")
)
