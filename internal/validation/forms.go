// Package validation provides explicit form validators. Each validator
// returns a field->message map; an empty map means the input passed.
package validation

import (
	"regexp"
	"strings"
	"unicode"
)

// FieldErrors maps form field names to human-readable messages.
type FieldErrors map[string]string

// Valid reports whether validation produced no errors.
func (e FieldErrors) Valid() bool {
	return len(e) == 0
}

const (
	maxPostTextLen    = 20000
	maxCommentTextLen = 10000
	maxUsernameLen    = 150
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
var groupSlugRegex = regexp.MustCompile(`^[a-z0-9-]{1,64}$`)

// PostForm validates a post submission. The group field carries a slug and
// may be empty; whether a non-empty slug resolves is checked by the caller.
func PostForm(text string) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(text) == "" {
		errs["text"] = "Text is required"
	} else if len(text) > maxPostTextLen {
		errs["text"] = "Post is too long (max 20000 characters)"
	}
	return errs
}

// CommentForm validates a comment submission.
func CommentForm(text string) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(text) == "" {
		errs["text"] = "Text is required"
	} else if len(text) > maxCommentTextLen {
		errs["text"] = "Comment is too long (max 10000 characters)"
	}
	return errs
}

// GroupSlug validates group slug format.
func GroupSlug(slug string) bool {
	if !groupSlugRegex.MatchString(slug) {
		return false
	}
	return !strings.HasPrefix(slug, "-") && !strings.HasSuffix(slug, "-")
}

// SignupForm validates new account fields.
func SignupForm(username, email, password string) FieldErrors {
	errs := FieldErrors{}

	switch {
	case username == "":
		errs["username"] = "Username is required"
	case len(username) > maxUsernameLen:
		errs["username"] = "Username is too long"
	case !usernameRegex.MatchString(username):
		errs["username"] = "Username may only contain letters, digits and _ . -"
	}

	if email == "" {
		errs["email"] = "Email is required"
	} else if !emailRegex.MatchString(email) {
		errs["email"] = "Enter a valid email address"
	}

	if msg := passwordMessage(password); msg != "" {
		errs["password"] = msg
	}

	return errs
}

// passwordMessage checks password strength and returns a message, or "" if acceptable.
func passwordMessage(password string) string {
	if len(password) < 8 {
		return "Password must be at least 8 characters long"
	}
	if len(password) > 128 {
		return "Password must not exceed 128 characters"
	}

	hasLetter := false
	hasDigit := false
	for _, r := range password {
		if unicode.IsLetter(r) {
			hasLetter = true
		}
		if unicode.IsDigit(r) {
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return "Password must contain both letters and digits"
	}
	return ""
}
