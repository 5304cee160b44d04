package errors

import (
	"strings"
	"unicode"
)

// maxIdentityLen bounds a target identity passed on the command line.
const maxIdentityLen = 1024

// ValidateIdentity checks a user-supplied fully-qualified class identity.
//
// Degenerate identities such as `\` or `App\` are accepted because the
// scanner produces them for ambiguous files. Rejected inputs:
//   - empty strings
//   - control characters
//   - forward slashes (a common mistake for `\`)
//   - identities longer than 1024 bytes
func ValidateIdentity(id string) error {
	if id == "" {
		return New(ErrCodeInvalidIdentity, "class identity cannot be empty")
	}
	if len(id) > maxIdentityLen {
		return New(ErrCodeInvalidIdentity, "class identity too long (max %d characters)", maxIdentityLen)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidIdentity, "class identity contains invalid control characters")
		}
	}
	if strings.Contains(id, "/") {
		return New(ErrCodeInvalidIdentity, "class identity %q uses '/', namespaces are separated by '\\'", id)
	}
	return nil
}

// ValidateExtension checks a source file extension such as ".php".
// It must start with a dot and contain no path separators.
func ValidateExtension(ext string) error {
	if len(ext) < 2 || ext[0] != '.' {
		return New(ErrCodeInvalidInput, "extension %q must start with '.'", ext)
	}
	if strings.ContainsAny(ext, `/\`) {
		return New(ErrCodeInvalidInput, "extension %q contains a path separator", ext)
	}
	return nil
}
