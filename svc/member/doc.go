// Package member provides auth.MemberStore implementations backed by
// process memory, PostgreSQL and MongoDB.
//
// Every implementation enforces email uniqueness itself and reports a
// violation as auth.ErrDuplicateEmail.
package member
