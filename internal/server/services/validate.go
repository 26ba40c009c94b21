package services

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/eulark/eulark/internal/common"
)

const (
	maxPlayerNameLen = 64
	maxEmailLen      = 255
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", common.ErrorValidation, fmt.Sprintf(format, args...))
}

// validEmail accepts a bare address such as a@x.com, not "Name <a@x.com>".
func validEmail(email string) bool {
	if email == "" || len(email) > maxEmailLen {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email && strings.Contains(email, "@")
}
