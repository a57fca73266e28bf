// Package core contains the membership contracts, configuration and error
// envelopes shared by the CRM client, the login hook and the stores. Lower-level
// adapters depend on this package; core must not depend on transport or storage
// adapters.
package core
