package common

import (
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"os"
	"strings"

	"github.com/bwmarrin/snowflake"
)

const ENABLED = "enabled"

var snowflakeNode *snowflake.Node

func init() {
	var err error
	snowflakeNode, err = snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
}

// UUIDint64 returns a cluster-unique int64 identifier.
func UUIDint64() int64 {
	return snowflakeNode.Generate().Int64()
}

// UUIDBase32 returns a short sortable identifier string, used as the
// collision-resistant suffix in generated filenames.
func UUIDBase32() string {
	return strings.ToLower(snowflakeNode.Generate().Base32())
}

// GetSecretSalt reads the hash salt from the environment, falling back to
// a fixed development value.
func GetSecretSalt() string {
	salt := os.Getenv("COVERLANE_SECRET_SALT")
	if salt == "" {
		salt = "coverlane-dev-salt"
	}
	return salt
}

func Sha256HashWithSalt(src string, salt string) string {
	h := sha256.New()
	h.Write([]byte(src + salt))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// SecureEqual compares two strings in constant time.
func SecureEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// IfEmptyStr returns defval when src is empty.
func IfEmptyStr(src string, defval string) string {
	if strings.TrimSpace(src) == "" {
		return defval
	}
	return src
}
