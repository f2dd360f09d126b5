package constants

import "errors"

// Configuration errors.
var (
	ErrNoBatchURLConfigured = errors.New("no Batch account URL configured, use 'batch config set url <url>'")
	ErrUnknownConfigKey     = errors.New("unknown configuration key")
	ErrEmptyAccountKey      = errors.New("account key must not be empty")
	ErrEmptySecret          = errors.New("secret must not be empty")
	ErrNoTerminal           = errors.New("stdin is not a terminal, pass the value as an argument")
	ErrValueRequired        = errors.New("a value is required")
	ErrTokenForOtherAccount = errors.New("token was issued for a different account URL")
)

// Command errors.
var (
	ErrJobRequired        = errors.New("--job flag is required")
	ErrPoolRequired       = errors.New("--pool flag is required")
	ErrTaskOrNodeRequired = errors.New("either --job/--task or --pool/--node must be given")
	ErrTargetNodesMissing = errors.New("--dedicated or --low-priority must be given")
	ErrUnsupportedOutput  = errors.New("unsupported output format")
)
