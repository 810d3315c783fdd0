package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"

	"github.com/wapsender/totalshophn/internal/api/middleware"
)

// Generates the admin service key and the bcrypt hash the server verifies it
// against. Put the hash in SERVICE_KEY_HASH and hand the key to back-office
// tooling; the key itself is never stored.
func main() {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		log.Fatalf("Failed to generate key: %v", err)
	}
	key := "sk_" + hex.EncodeToString(raw)

	hash, err := middleware.HashServiceKey(key)
	if err != nil {
		log.Fatalf("Failed to hash key: %v", err)
	}

	fmt.Println("Generated admin service key:")
	fmt.Printf("SERVICE_KEY=%s\n", key)
	fmt.Printf("SERVICE_KEY_HASH=%s\n", hash)
	fmt.Println("\nAdd SERVICE_KEY_HASH to your .env; give SERVICE_KEY to the back office.")
}
