package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/AlibekovAA/messenger/backend/internal/common/constants"
	commonerrors "github.com/AlibekovAA/messenger/backend/internal/common/errors"
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

func validateRegistration(input RegisterInput) error {
	if input.Username == "" || len(input.Username) > constants.UsernameMaxLength {
		return invalid("username must be 1 to %d characters", constants.UsernameMaxLength)
	}
	if !usernameRegex.MatchString(input.Username) {
		return invalid("username may contain only letters, digits, '.', '_' and '-'")
	}
	// bcrypt ignores everything past 72 bytes
	if input.Password == "" || len(input.Password) > constants.PasswordMaxLength {
		return invalid("password must be 1 to %d bytes", constants.PasswordMaxLength)
	}
	if strings.TrimSpace(input.FirstName) == "" || len(input.FirstName) > constants.NameMaxLength {
		return invalid("first_name must be 1 to %d characters", constants.NameMaxLength)
	}
	if strings.TrimSpace(input.LastName) == "" || len(input.LastName) > constants.NameMaxLength {
		return invalid("last_name must be 1 to %d characters", constants.NameMaxLength)
	}
	if strings.TrimSpace(input.Phone) == "" || len(input.Phone) > constants.PhoneMaxLength {
		return invalid("phone must be 1 to %d characters", constants.PhoneMaxLength)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return commonerrors.ErrValidation.WithMessage(fmt.Sprintf(format, args...))
}
