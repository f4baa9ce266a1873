package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// Product ids arrive in two forms: short numeric strings from the static
// catalog ("5") and UUID-shaped database row ids
// ("00000000-0000-0000-0000-000000000005"). Key is the canonical comparison
// form, the numeric suffix without leading zeros. Every cart, wishlist and
// stock lookup must compare Keys, never raw ids.
type Key string

// Canonicalize reduces either id form to its Key.
func Canonicalize(id string) Key {
	if !strings.Contains(id, "-") {
		return Key(id)
	}
	suffix := id[strings.LastIndex(id, "-")+1:]
	n, err := strconv.ParseUint(suffix, 10, 64)
	if err != nil {
		// Not a numeric suffix; fall back to the raw id so distinct
		// foreign ids stay distinct.
		return Key(id)
	}
	return Key(strconv.FormatUint(n, 10))
}

// ToUUID widens a short numeric id to the database row form. UUID-shaped ids
// pass through unchanged.
func ToUUID(id string) string {
	if strings.Contains(id, "-") {
		return id
	}
	return fmt.Sprintf("00000000-0000-0000-0000-%012s", id)
}
