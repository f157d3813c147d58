// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

// VerificationToken XORs the server verification code with the block
// ciphertext. The token is as long as the code; ciphertext bytes past its
// end read as zero.
func VerificationToken(code, ciphertext []byte) []byte {
	token := make([]byte, len(code))
	for i := range code {
		var b byte
		if i < len(ciphertext) {
			b = ciphertext[i]
		}
		token[i] = code[i] ^ b
	}

	return token
}
