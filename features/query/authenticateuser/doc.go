// Package authenticateuser implements the Authenticate User query use case.
//
// Authentication is a read: it verifies the presented credentials against
// the stored argon2id hash and returns the user for session issuance. An
// unknown email and a wrong password both come back as the same invalid
// credentials rejection so the response does not leak which one it was. A
// deactivated account is rejected distinctly after the password check, so
// only the account owner learns the account is disabled.
package authenticateuser
