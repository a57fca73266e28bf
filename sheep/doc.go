// Package sheep is the Sheep CRM API client: request construction, authenticated
// transport, response validation and the CRM "tuple" encoding. FlockAPI exposes
// the flock-level operations built on top of them.
package sheep
