package schemagen

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/reoring/schemagen/internal/introspect"
)

// Metadata is the declarative member table: per qualified type name, member
// renames, required flags, ignores and descriptions keyed by Go field name.
// Entries win over struct tags.
//
//	types:
//	  example.com/app/models.Person:
//	    description: A person.
//	    members:
//	      Name: {name: fullName, required: true}
//	      Password: {ignore: true}
type Metadata = introspect.Metadata

// TypeMetadata holds the overrides for one type.
type TypeMetadata = introspect.TypeMetadata

// MemberPolicy overrides the policy of one field.
type MemberPolicy = introspect.MemberPolicy

// ParseMetadata decodes a YAML metadata table. Unknown keys are rejected.
func ParseMetadata(data []byte) (*Metadata, error) {
	md := &Metadata{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(md); err != nil {
		if errors.Is(err, io.EOF) {
			return md, nil
		}
		return nil, fmt.Errorf("schemagen: metadata: %w", err)
	}
	return md, nil
}

// LoadMetadataFile reads and parses a YAML metadata table.
func LoadMetadataFile(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schemagen: metadata: %w", err)
	}
	return ParseMetadata(data)
}
