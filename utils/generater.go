package utils

import (
	"crypto/rand"
	"fmt"
	"time"
)

// GenerateNumber builds a human-readable document number like "ORD-20260901-4F21".
func GenerateNumber(prefix string) string {
	b := make([]byte, 2)
	rand.Read(b)
	return fmt.Sprintf("%s-%s-%X", prefix, time.Now().Format("20060102"), b)
}

func GenerateUUID() string {
	// Generate a UUID
	b := make([]byte, 16)
	rand.Read(b)
	return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:])
}
