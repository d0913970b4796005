//go:build !debug

package model

import "log"

func panicUnknownSource(s AssignmentSource) {
	log.Printf("Warning: unknown assignment source %q, treating as proximity", s)
}
