package util

import (
	"fmt"
)

// Avatar builds the fallback avatar URL for profiles without an uploaded one
func Avatar(seed string) string {
	return fmt.Sprintf("https://api.dicebear.com/7.x/avataaars/png?seed=%v", seed)
}
