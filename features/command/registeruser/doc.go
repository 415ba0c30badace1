// Package registeruser implements the Register User use case.
//
// Registration is self-service: no principal is required. The password is
// hashed with argon2id before the insert; the clear text never leaves the
// handler. Email uniqueness is checked against a snapshot and backed by the
// unique index on the email column, so a racing registration of the same
// address fails the insert instead of slipping through.
//
// Business rules: email and password are required, and the email must not
// already be registered. New accounts start as active regular members.
package registeruser
