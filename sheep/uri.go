package sheep

import (
	"context"
	"strings"

	"github.com/goliatone/go-membership/core"
)

// URIPart names a positional segment of a CRM resource URI
// /{flock}/{resource_type}/{unique id}.
type URIPart string

const (
	PartFlock        URIPart = "flock"
	PartTenant       URIPart = "tenant"
	PartResourceType URIPart = "resource_type"
	PartUID          URIPart = "uid"
	PartUniqueID     URIPart = "unique_id"
)

var uriPartIndex = map[URIPart]int{
	PartFlock:        1,
	PartTenant:       1,
	PartResourceType: 2,
	PartUID:          3,
	PartUniqueID:     3,
}

type URIParser struct {
	logger core.Logger
}

func NewURIParser(logger core.Logger) *URIParser {
	return &URIParser{logger: core.EnsureLogger(logger)}
}

// Part returns the requested segment of uri. An unknown part name is a caller
// bug: it is logged and reported as not found, like a missing segment.
func (p *URIParser) Part(uri string, part URIPart) (string, bool) {
	if part == "" {
		part = PartUID
	}
	index, ok := uriPartIndex[URIPart(strings.ToLower(strings.TrimSpace(string(part))))]
	if !ok {
		var logger core.Logger
		if p != nil {
			logger = p.logger
		}
		core.LogWithLevel(context.Background(), logger, "warn", "sheep: invalid uri part key provided", map[string]any{
			"part": string(part),
		})
		return "", false
	}
	segments := strings.Split(uri, "/")
	if index >= len(segments) || segments[index] == "" {
		return "", false
	}
	return segments[index], true
}

// ResourceURIPart is Part without a diagnostic logger.
func ResourceURIPart(uri string, part URIPart) (string, bool) {
	return NewURIParser(nil).Part(uri, part)
}
