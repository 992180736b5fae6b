package models

import (
	"strings"
	"time"
)

// Protocol identifies the service type behind an online resource.
type Protocol string

const (
	ProtocolWMS         Protocol = "WMS"
	ProtocolWFS         Protocol = "WFS"
	ProtocolWCS         Protocol = "WCS"
	ProtocolWWW         Protocol = "WWW"
	ProtocolUnsupported Protocol = "UNSUPPORTED"
)

// ParseProtocol is case-insensitive; unknown values map to ProtocolUnsupported.
func ParseProtocol(s string) Protocol {
	switch p := Protocol(strings.ToUpper(strings.TrimSpace(s))); p {
	case ProtocolWMS, ProtocolWFS, ProtocolWCS, ProtocolWWW:
		return p
	default:
		return ProtocolUnsupported
	}
}

// UnmarshalText normalizes protocols decoded from JSON or YAML.
func (p *Protocol) UnmarshalText(b []byte) error {
	*p = ParseProtocol(string(b))
	return nil
}

// OnlineResource is an endpoint advertised by a catalog record.
type OnlineResource struct {
	URL         string   `json:"url"`
	Name        string   `json:"name"`
	Protocol    Protocol `json:"protocol"`
	Description string   `json:"description,omitempty"`
}

// Record is a harvested catalog metadata entry. Records are shared as
// *Record and never mutated once harvested; two records with the same
// Identifier are still distinct entries.
type Record struct {
	Identifier      string           `json:"identifier"`
	Title           string           `json:"title"`
	Abstract        string           `json:"abstract,omitempty"`
	Keywords        []string         `json:"keywords,omitempty"`
	OnlineResources []OnlineResource `json:"onlineResources,omitempty"`
	Source          string           `json:"source,omitempty"`
	HarvestedAt     time.Time        `json:"harvestedAt"`
}

// ResourcesOfProtocol returns the record's online resources with protocol p.
func (r *Record) ResourcesOfProtocol(p Protocol) []OnlineResource {
	var out []OnlineResource
	for _, res := range r.OnlineResources {
		if res.Protocol == p {
			out = append(out, res)
		}
	}
	return out
}

// HasKeyword reports whether the record lists keyword, ignoring case.
func (r *Record) HasKeyword(keyword string) bool {
	for _, k := range r.Keywords {
		if strings.EqualFold(strings.TrimSpace(k), keyword) {
			return true
		}
	}
	return false
}
