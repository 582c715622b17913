package internal

import (
	"fmt"
	"strings"

	pkgerrs "github.com/snoolib/snoo/pkg/errors"
)

const maxNameLength = 64

// ValidateName checks a resource identifier (username, subreddit name,
// domain) before it is substituted into a path template.
func ValidateName(field, name string) error {
	if name == "" {
		return &pkgerrs.ConfigError{Field: field, Message: "name cannot be empty"}
	}
	if len(name) > maxNameLength {
		return &pkgerrs.ConfigError{Field: field, Message: fmt.Sprintf("name cannot exceed %d characters", maxNameLength)}
	}
	if strings.ContainsAny(name, "/?#&\r\n ") {
		return &pkgerrs.ConfigError{Field: field, Message: fmt.Sprintf("name %q contains invalid characters", name)}
	}
	return nil
}

// ValidateCount checks a requested record count.
func ValidateCount(count int) error {
	if count < 1 {
		return &pkgerrs.ConfigError{Field: "count", Message: fmt.Sprintf("count must be positive, got %d", count)}
	}
	return nil
}

// ValidateVoteDirection checks a vote direction: 1 up, 0 rescind, -1 down.
func ValidateVoteDirection(dir int) error {
	if dir < -1 || dir > 1 {
		return &pkgerrs.ConfigError{Field: "dir", Message: fmt.Sprintf("vote direction must be -1, 0 or 1, got %d", dir)}
	}
	return nil
}
