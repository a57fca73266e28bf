// Package login keeps host platform roles in step with CRM membership when a
// user signs in.
package login
