package utils

import (
	"crypto/md5"
	"fmt"
	"strings"
)

// GetGravatarURL generates a Gravatar URL for the given email address.
// Used for reviewer avatars next to their comments. Default size is 80px.
func GetGravatarURL(email string, size int) string {
	if size <= 0 {
		size = 80
	}

	email = strings.ToLower(strings.TrimSpace(email))

	hash := md5.Sum([]byte(email))
	hashString := fmt.Sprintf("%x", hash)

	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?s=%d&d=mp", hashString, size)
}
