// Package cookie writes and reads HTTP cookies with shared secure defaults
// (HttpOnly, SameSite=Strict, Path "/") and optional AES-256-GCM encryption.
//
//	m, err := cookie.New([]string{currentSecret, previousSecret}, cookie.WithSecure(true))
//	if err != nil {
//		return err
//	}
//
//	if err := m.SetEncrypted(w, "sid", token); err != nil {
//		return err
//	}
//	token, err := m.GetEncrypted(r, "sid")
//
// Encryption keys are derived from the secrets with SHA-256. The first
// secret encrypts; all secrets are tried when decrypting, which allows
// rotating keys without logging every user out. Ciphertexts are bound to the
// cookie name.
package cookie
