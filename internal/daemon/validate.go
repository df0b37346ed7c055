package daemon

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/hint_request.json
var hintRequestSchema []byte

const hintRequestSchemaURL = "schema://hint_request.json"

// FieldError describes one rejected part of a request body
type FieldError struct {
	Loc string `json:"loc"`
	Msg string `json:"msg"`
}

var compileHintSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(hintRequestSchema))
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(hintRequestSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(hintRequestSchemaURL)
})

var printer = message.NewPrinter(language.English)

// validateHintRequest checks raw against the request schema. It returns the
// field errors found, or an error if the schema itself is unusable.
func validateHintRequest(raw []byte) ([]FieldError, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return []FieldError{{Loc: "", Msg: "invalid JSON: " + err.Error()}}, nil
	}

	schema, err := compileHintSchema()
	if err != nil {
		return nil, fmt.Errorf("compile hint request schema: %w", err)
	}

	err = schema.Validate(doc)
	if err == nil {
		return nil, nil
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return nil, err
	}

	var out []FieldError
	collectFieldErrors(verr, &out)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Loc < out[j].Loc })
	return out, nil
}

// collectFieldErrors flattens the leaves of a validation error tree
func collectFieldErrors(verr *jsonschema.ValidationError, out *[]FieldError) {
	if len(verr.Causes) > 0 {
		for _, cause := range verr.Causes {
			collectFieldErrors(cause, out)
		}
		return
	}

	loc := instanceLoc(verr.InstanceLocation)
	if req, ok := verr.ErrorKind.(*kind.Required); ok {
		for _, name := range req.Missing {
			*out = append(*out, FieldError{Loc: loc + "/" + name, Msg: "field required"})
		}
		return
	}
	*out = append(*out, FieldError{Loc: loc, Msg: verr.ErrorKind.LocalizedString(printer)})
}

func instanceLoc(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	return "/" + strings.Join(tokens, "/")
}
