package domain

import (
	"fmt"
	"strconv"
)

// Label renders a state or symbol for messages, events and graphs.
// Runes print as the character they encode, quoted when not printable;
// everything else goes through fmt.
func Label(v any) string {
	if r, ok := v.(rune); ok {
		if strconv.IsPrint(r) && r != ' ' {
			return string(r)
		}
		return strconv.QuoteRune(r)
	}
	return fmt.Sprint(v)
}
