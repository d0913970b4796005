//go:build debug

package model

import "fmt"

func panicUnknownSource(s AssignmentSource) {
	panic(fmt.Sprintf("unknown assignment source %q", s))
}
