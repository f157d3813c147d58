// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Key is an armored, passphrase-protected private key as returned by the
// account API. The same shape is used for user keys and address keys.
type Key struct {
	// ID identifies the key; it is also the lookup key for [KeySalt].
	ID string `json:"ID"`

	// PrivateKey is the armored OpenPGP private key, locked with a passphrase.
	PrivateKey string `json:"PrivateKey"`

	// Token is set only on address keys. It is an armored message encrypted
	// to one of the user keys whose plaintext is the address key passphrase.
	Token string `json:"Token,omitempty"`

	// Signature is the detached signature of Token made by the user key.
	Signature string `json:"Signature,omitempty"`

	// Primary is 1 for the primary key of the user/address.
	Primary int `json:"Primary"`

	// Active is 1 when the key may be used.
	Active int `json:"Active"`
}

// User is the account record holding the user keys.
type User struct {
	ID    string `json:"ID"`
	Name  string `json:"Name"`
	Email string `json:"Email"`
	Keys  []Key  `json:"Keys"`
}

// Address is an email address of the account together with its keys.
type Address struct {
	ID     string `json:"ID"`
	Email  string `json:"Email"`
	Status int    `json:"Status"`

	// Order defines the address priority. The usable address with the
	// lowest Order is the primary address.
	Order int   `json:"Order"`
	Keys  []Key `json:"Keys"`
}

// KeySalt is the per-key salt used to derive a key passphrase from the
// mailbox password. KeySalt is base64 and may be empty.
type KeySalt struct {
	ID      string `json:"ID"`
	KeySalt string `json:"KeySalt"`
}

// Credential is the bearer credential of an authenticated session. It is
// produced by the authentication handshake, which happens outside of this
// module.
type Credential struct {
	UID          string `json:"UID"`
	AccessToken  string `json:"AccessToken"`
	RefreshToken string `json:"RefreshToken"`
}
