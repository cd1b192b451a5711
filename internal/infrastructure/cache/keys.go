package cache

import (
	"fmt"
	"strings"
)

const (
	// role:{email} -> "user" | "moderator" | "admin"
	KeyRole = "role:%s"
)

func RoleKey(email string) string {
	return fmt.Sprintf(KeyRole, strings.ToLower(strings.TrimSpace(email)))
}
