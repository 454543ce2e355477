package introspect

import (
	"reflect"
	"strings"
)

// memberPolicy is the resolved serialization policy of one struct field.
type memberPolicy struct {
	name        string // wire name
	tagged      bool   // name came from a tag or the metadata table
	ignore      bool
	required    bool
	description string
}

// resolveMember applies the member rules in priority order:
// metadata table > jsonschema:"name=..." > json tag > xml tag > field name.
// "-" in any of jsonschema/json/xml (or ignore in the table) drops the field.
func resolveMember(sf reflect.StructField, override *MemberPolicy) memberPolicy {
	p := memberPolicy{name: sf.Name}

	js := parseTag(sf.Tag.Get("jsonschema"))
	jn, jsonSet := tagName(sf.Tag, "json")
	xn, xmlSet := tagName(sf.Tag, "xml")

	if js.ignore || (jsonSet && jn == "-") || (xmlSet && xn == "-") {
		p.ignore = true
	}

	switch {
	case js.name != "":
		p.name, p.tagged = js.name, true
	case jsonSet && jn != "" && jn != "-":
		p.name, p.tagged = jn, true
	case xmlSet && xn != "" && xn != "-":
		p.name, p.tagged = xn, true
	}

	switch {
	case js.required != nil:
		p.required = *js.required
	case hasOption(sf.Tag.Get("validate"), "required"):
		p.required = true
	}

	p.description = sf.Tag.Get("description")
	if js.description != "" {
		p.description = js.description
	}

	if override != nil {
		if override.Ignore {
			p.ignore = true
		}
		if override.Name != "" {
			p.name, p.tagged = override.Name, true
		}
		if override.Required != nil {
			p.required = *override.Required
		}
		if override.Description != "" {
			p.description = override.Description
		}
	}
	return p
}

// schemaTag holds the options of a jsonschema:"..." tag.
type schemaTag struct {
	ignore      bool
	name        string
	required    *bool
	description string
}

// parseTag reads jsonschema:"-" or jsonschema:"name=x,required,description=...".
// description must come last since it may contain commas.
func parseTag(tag string) schemaTag {
	var st schemaTag
	if tag == "" {
		return st
	}
	if tag == "-" {
		st.ignore = true
		return st
	}
	for tag != "" {
		var part string
		if strings.HasPrefix(tag, "description=") {
			part, tag = tag, ""
		} else if i := strings.IndexByte(tag, ','); i >= 0 {
			part, tag = tag[:i], tag[i+1:]
		} else {
			part, tag = tag, ""
		}
		part = strings.TrimSpace(part)
		switch {
		case strings.HasPrefix(part, "name="):
			st.name = strings.TrimPrefix(part, "name=")
		case strings.HasPrefix(part, "description="):
			st.description = strings.TrimPrefix(part, "description=")
		case part == "required":
			v := true
			st.required = &v
		case part == "optional":
			v := false
			st.required = &v
		}
	}
	return st
}

// tagName returns the name portion of a json/xml style tag.
func tagName(tag reflect.StructTag, key string) (string, bool) {
	v, ok := tag.Lookup(key)
	if !ok {
		return "", false
	}
	if i := strings.IndexByte(v, ','); i >= 0 {
		v = v[:i]
	}
	// xml:"urn:ns local" carries a namespace before the local name
	if key == "xml" {
		if i := strings.LastIndexByte(v, ' '); i >= 0 {
			v = v[i+1:]
		}
	}
	return v, true
}

func hasOption(tag, opt string) bool {
	for _, p := range strings.Split(tag, ",") {
		if strings.TrimSpace(p) == opt {
			return true
		}
	}
	return false
}
