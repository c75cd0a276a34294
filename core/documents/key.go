package documents

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidKey is returned for object keys outside the account layout.
var ErrInvalidKey = errors.New("documents: invalid key")

// DefaultCategory is used when an upload names no category.
const DefaultCategory = "documents"

// KeyParts are the components of a document key.
type KeyParts struct {
	AccountID  string
	Category   string
	Filename   string
	UploadedAt time.Time
}

// AccountPrefix is the key prefix of every document of an account.
func AccountPrefix(accountID string) string {
	return "accounts/" + accountID + "/"
}

// Key builds accounts/{accountID}/{category}/{unixmillis}-{filename}.
func Key(accountID, category, filename string, at time.Time) string {
	if category == "" {
		category = DefaultCategory
	}
	return fmt.Sprintf("%s%s/%d-%s", AccountPrefix(accountID), category, at.UnixMilli(), filename)
}

// ParseKey splits a document key into its parts. The timestamp prefix is
// optional; without it UploadedAt is zero and Filename is the whole name.
func ParseKey(key string) (KeyParts, error) {
	parts := strings.Split(strings.TrimPrefix(key, "/"), "/")
	if len(parts) != 4 || parts[0] != "accounts" || parts[1] == "" || parts[2] == "" || parts[3] == "" {
		return KeyParts{}, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	kp := KeyParts{AccountID: parts[1], Category: parts[2], Filename: parts[3]}
	if stamp, name, ok := strings.Cut(parts[3], "-"); ok && name != "" {
		if ms, err := strconv.ParseInt(stamp, 10, 64); err == nil {
			kp.UploadedAt = time.UnixMilli(ms).UTC()
			kp.Filename = name
		}
	}
	return kp, nil
}
