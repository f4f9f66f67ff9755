package repository

import (
	"database/sql"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateReference produces a customer-facing proposal number, e.g.
// "KP48291".
func GenerateReference() string {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	number := rng.Intn(90000) + 10000

	return fmt.Sprintf("KP%d", number)
}

// UniqueReference generates a proposal number that does not collide with a
// saved estimate. After a few failed attempts it falls back to a token that
// cannot collide.
func UniqueReference(db *sql.DB) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		ref := GenerateReference()

		var exists bool
		err := db.QueryRow(`SELECT EXISTS(SELECT 1 FROM estimates WHERE reference = $1)`, ref).Scan(&exists)
		if err != nil {
			return "", fmt.Errorf("failed to check reference: %v", err)
		}
		if !exists {
			return ref, nil
		}
	}
	return "KP-" + ShareToken()[:8], nil
}

// ShareToken returns an unguessable token for proposal links embedded in
// PDF QR codes and emails.
func ShareToken() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}
