// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes keyed hashing, operation ids carried in context,
// identifier generation and HTTP client initialization.
package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// HashString computes an HMAC-SHA256 signature over the given string
// using the provided hash key and returns the result as a hex-encoded string.
//
// A new HMAC instance is created on each call, since every folder carries
// its own hash key.
//
// Parameters:
//
//	data    - string to be hashed
//	hashKey - secret key used for the HMAC operation
//
// Returns:
//
//	string - lowercase hex-encoded HMAC-SHA256 digest
//
// Example usage:
//
//	lookup := utils.HashString("report.pdf", folderHashKey)
func HashString(data string, hashKey []byte) string {
	return hex.EncodeToString(Hash([]byte(data), hashKey))
}

// Hash computes a raw HMAC-SHA256 digest over data with hashKey.
func Hash(data, hashKey []byte) []byte {
	hasher := hmac.New(sha256.New, hashKey)
	hasher.Write(data)
	return hasher.Sum(nil)
}
