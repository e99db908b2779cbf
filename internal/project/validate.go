package project

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/config.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// namePattern bounds project names to filesystem- and npm-safe tokens.
var namePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,50}$`)

// ValidName reports whether name is usable as a project name. Interactive
// front ends use this to reject input before building a record.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// ValidationIssue is a single schema violation.
type ValidationIssue struct {
	Path    string // instance location, e.g. "/eslint/rules"
	Message string
	Keyword string
}

// Validate checks the hard invariants and the schema shape of the
// record. It returns a *Error of kind KindInvalidConfig describing the
// first problem found, or nil when the record is usable.
func (c Config) Validate() error {
	if !namePattern.MatchString(c.ProjectName) {
		return InvalidConfig("project_name",
			"%q must be 1-50 characters of letters, digits, hyphen or underscore", c.ProjectName)
	}
	info, err := os.Stat(c.ProjectPath)
	if err != nil {
		return InvalidConfig("project_path", "%q is not an existing directory", c.ProjectPath)
	}
	if !info.IsDir() {
		return InvalidConfig("project_path", "%q is not a directory", c.ProjectPath)
	}
	if _, err := ParseFramework(string(c.Framework)); err != nil {
		return err
	}
	if _, err := ParsePackageManager(string(c.PackageManager)); err != nil {
		return err
	}

	issues, err := validateSchema(c)
	if err != nil {
		return fmt.Errorf("validating config: %w", err)
	}
	if len(issues) > 0 {
		return InvalidConfig(fieldFromPath(issues[0].Path), "%s", formatIssues(issues))
	}
	return nil
}

// getSchema compiles the embedded JSON schema once and returns it.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("config.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("config.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// validateSchema runs the serialized record through the embedded schema.
// The error return is for schema compilation or serialization failures;
// shape violations come back as issues.
func validateSchema(c Config) ([]ValidationIssue, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	jsonData, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("serializing config: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("preparing JSON for validation: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return nil, nil
	}
	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}
	return extractIssues(validationErr), nil
}

// extractIssues walks the ValidationError tree and returns leaf-level
// issues with specific property information.
func extractIssues(ve *jsonschema.ValidationError) []ValidationIssue {
	var issues []ValidationIssue
	collectIssues(ve, &issues)
	if len(issues) == 0 {
		return []ValidationIssue{{Message: ve.Error()}}
	}
	return dedupeIssues(issues)
}

func collectIssues(ve *jsonschema.ValidationError, issues *[]ValidationIssue) {
	if len(ve.Causes) == 0 {
		path := "/" + strings.Join(ve.InstanceLocation, "/")
		if len(ve.InstanceLocation) == 0 {
			path = ""
		}

		keyword := ""
		msg := ""
		if ve.ErrorKind != nil {
			if kwPath := ve.ErrorKind.KeywordPath(); len(kwPath) > 0 {
				keyword = kwPath[len(kwPath)-1]
			}
			msg = ve.ErrorKind.LocalizedString(printer)
		}

		// Skip container errors that carry no property detail.
		if keyword == "allOf" || keyword == "$ref" || keyword == "" {
			return
		}

		*issues = append(*issues, ValidationIssue{Path: path, Message: msg, Keyword: keyword})
		return
	}
	for _, cause := range ve.Causes {
		collectIssues(cause, issues)
	}
}

func dedupeIssues(issues []ValidationIssue) []ValidationIssue {
	seen := make(map[string]bool)
	var result []ValidationIssue
	for _, issue := range issues {
		key := issue.Path + "|" + issue.Keyword + "|" + issue.Message
		if !seen[key] {
			seen[key] = true
			result = append(result, issue)
		}
	}
	return result
}

// fieldFromPath turns "/eslint/rules" into "eslint.rules" for error
// reporting; the root path maps to "config".
func fieldFromPath(path string) string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return "config"
	}
	return strings.ReplaceAll(trimmed, "/", ".")
}

func formatIssues(issues []ValidationIssue) string {
	parts := make([]string, len(issues))
	for i, issue := range issues {
		if issue.Path == "" {
			parts[i] = issue.Message
			continue
		}
		parts[i] = fmt.Sprintf("%s: %s", fieldFromPath(issue.Path), issue.Message)
	}
	return strings.Join(parts, "; ")
}
