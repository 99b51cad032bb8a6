// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package schema documents configuration structs from their yaml, hcl and
// docdesc struct tags, as Markdown or as a JSON schema.
package schema

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"
)

// Field is one documented field of a struct.
type Field struct {
	Name        string
	Type        string
	Description string
	Required    bool
	Ref         string // Name of the Section describing an object field, if any.
	Keyed       bool   // The field is a map of Ref values.
	HCLName     string // Set when the HCL attribute is spelled differently.
}

// Section documents one struct.
type Section struct {
	Name        string
	Description string
	Fields      []Field
}

// NewSection builds a Section from the exported fields of def, which must be
// a struct or a pointer to one. Refs maps Go type names to section names.
func NewSection(name, description string, def any, refs map[string]string) (Section, error) {
	fields, err := extractFields(reflect.TypeOf(def), refs)
	if err != nil {
		return Section{}, err
	}

	return Section{Name: name, Description: description, Fields: fields}, nil
}

func extractFields(t reflect.Type, refs map[string]string) ([]Field, error) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("expected struct type, got %s", t.Kind())
	}

	var fields []Field

	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		if sf.Anonymous {
			embedded, err := extractFields(sf.Type, refs)
			if err != nil {
				return nil, err
			}

			fields = append(fields, embedded...)

			continue
		}

		yamlTag := sf.Tag.Get("yaml")
		if yamlTag == "-" {
			continue
		}

		name := sf.Name
		if n, _, _ := strings.Cut(yamlTag, ","); n != "" {
			name = n
		}

		hclName, _, _ := strings.Cut(sf.Tag.Get("hcl"), ",")
		if hclName == name {
			hclName = ""
		}

		fields = append(fields, Field{
			Name:        name,
			HCLName:     hclName,
			Type:        schemaType(sf.Type),
			Description: sf.Tag.Get("docdesc"),
			Required:    !strings.Contains(yamlTag, "omitempty"),
			Ref:         refFor(sf.Type, refs),
			Keyed:       sf.Type.Kind() == reflect.Map,
		})
	}

	return fields, nil
}

func refFor(t reflect.Type, refs map[string]string) string {
	for t.Kind() == reflect.Ptr || t.Kind() == reflect.Map || t.Kind() == reflect.Slice {
		t = t.Elem()
	}

	return refs[t.Name()]
}

// schemaType converts a Go type to a JSON schema type.
func schemaType(t reflect.Type) string {
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct:
		return "object"
	case reflect.Ptr:
		return schemaType(t.Elem())
	default:
		return "any"
	}
}

// WriteMarkdown writes the sections as Markdown, under title.
func WriteMarkdown(w io.Writer, title string, sections []Section) error {
	sb := strings.Builder{}

	fmt.Fprintf(&sb, "# %s\n", title)

	for _, s := range sections {
		fmt.Fprintf(&sb, "\n## %s\n\n", s.Name)

		if s.Description != "" {
			fmt.Fprintf(&sb, "%s\n\n", s.Description)
		}

		for _, f := range s.Fields {
			opt := ""
			if !f.Required {
				opt = ", optional"
			}

			if f.HCLName != "" {
				opt += ", `" + f.HCLName + "` in HCL"
			}

			fmt.Fprintf(&sb, "- **%s** (%s%s)", f.Name, f.Type, opt)

			if f.Description != "" {
				fmt.Fprintf(&sb, ": %s", f.Description)
			}

			if f.Ref != "" {
				fmt.Fprintf(&sb, ". See %s", f.Ref)
			}

			sb.WriteByte('\n')
		}
	}

	_, err := io.WriteString(w, sb.String())

	return err //nolint:wrapcheck
}

// JSONSchema returns a JSON schema whose root is the first section. Fields
// with a Ref point at the definition generated for that section.
func JSONSchema(title string, sections []Section) map[string]any {
	defs := make(map[string]any, len(sections))
	for _, s := range sections[1:] {
		defs[s.Name] = sectionSchema(s)
	}

	root := sectionSchema(sections[0])
	root["$schema"] = "https://json-schema.org/draft/2020-12/schema"
	root["title"] = title

	if len(defs) > 0 {
		root["$defs"] = defs
	}

	return root
}

func sectionSchema(s Section) map[string]any {
	props := make(map[string]any, len(s.Fields))
	required := []string{}

	for _, f := range s.Fields {
		prop := map[string]any{}

		switch {
		case f.Ref != "" && f.Keyed:
			prop["type"] = f.Type
			prop["additionalProperties"] = map[string]any{"$ref": "#/$defs/" + f.Ref}
		case f.Ref != "":
			prop["$ref"] = "#/$defs/" + f.Ref
		case f.Type != "any":
			prop["type"] = f.Type
		}

		if f.Description != "" {
			prop["description"] = f.Description
		}

		props[f.Name] = prop

		if f.Required {
			required = append(required, f.Name)
		}
	}

	out := map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}

	if s.Description != "" {
		out["description"] = s.Description
	}

	if len(required) > 0 {
		out["required"] = required
	}

	return out
}

// WriteJSONSchema writes JSONSchema(title, sections) as indented JSON.
func WriteJSONSchema(w io.Writer, title string, sections []Section) error {
	b, err := json.MarshalIndent(JSONSchema(title, sections), "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling schema: %w", err)
	}

	_, err = w.Write(append(b, '\n'))

	return err //nolint:wrapcheck
}
