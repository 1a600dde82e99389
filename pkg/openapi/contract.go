package openapi

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-contractgen/pkg/payload"
)

// Operation ids of the embedded document.
const (
	OperationGenerate   = "generateContract"
	OperationUpload     = "uploadTemplate"
	OperationNextNumber = "nextContractNumber"
)

//go:embed renderer.yaml
var rendererDocument []byte

var (
	defaultOnce     sync.Once
	defaultContract *Contract
	defaultErr      error
)

// Operation is the subset of an OpenAPI operation callers need.
type Operation struct {
	ID      string
	Method  string
	Path    string
	Summary string
}

// Contract is a parsed and validated service description.
type Contract struct {
	doc        *openapi3.T
	operations map[string]Operation
	payload    *openapi3.Schema
}

// Default returns the embedded contract, parsed once.
func Default() (*Contract, error) {
	defaultOnce.Do(func() {
		defaultContract, defaultErr = Load(context.Background(), rendererDocument)
	})
	return defaultContract, defaultErr
}

// Document returns the embedded document bytes.
func Document() []byte {
	return append([]byte(nil), rendererDocument...)
}

// Load parses data (JSON or YAML) and validates it.
func Load(ctx context.Context, data []byte) (*Contract, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptyDocument
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("openapi: validate: %w", err)
	}

	c := &Contract{doc: doc, operations: make(map[string]Operation)}
	if doc.Paths != nil {
		for path, item := range doc.Paths.Map() {
			if item == nil {
				continue
			}
			for method, op := range item.Operations() {
				if op == nil || op.OperationID == "" {
					continue
				}
				c.operations[op.OperationID] = Operation{
					ID:      op.OperationID,
					Method:  strings.ToUpper(method),
					Path:    path,
					Summary: op.Summary,
				}
				if op.OperationID == OperationGenerate {
					c.payload = jsonRequestSchema(op)
				}
			}
		}
	}
	if c.payload == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingOperation, OperationGenerate)
	}
	return c, nil
}

func jsonRequestSchema(op *openapi3.Operation) *openapi3.Schema {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	mt := op.RequestBody.Value.Content.Get("application/json")
	if mt == nil || mt.Schema == nil {
		return nil
	}
	return mt.Schema.Value
}

// Operation looks up an operation by id.
func (c *Contract) Operation(id string) (Operation, bool) {
	op, ok := c.operations[id]
	return op, ok
}

// Operations returns the operations sorted by id.
func (c *Contract) Operations() []Operation {
	out := make([]Operation, 0, len(c.operations))
	for _, op := range c.operations {
		out = append(out, op)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// RequiredKeys lists the payload keys the renderer always expects, sorted.
func (c *Contract) RequiredKeys() []string {
	keys := append([]string(nil), c.payload.Required...)
	sort.Strings(keys)
	return keys
}

// PayloadKeys lists every payload key the renderer understands, sorted.
func (c *Contract) PayloadKeys() []string {
	keys := make([]string, 0, len(c.payload.Properties))
	for key := range c.payload.Properties {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// ValidatePayload checks p against the generate request schema. The returned
// error wraps ErrPayloadRejected and lists every issue.
func (c *Contract) ValidatePayload(p payload.Payload) error {
	value := make(map[string]any, len(p))
	for key, v := range p {
		value[key] = v
	}

	err := c.payload.VisitJSON(value, openapi3.MultiErrors())
	if err == nil {
		return nil
	}

	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		issues := make([]string, 0, len(multi))
		for _, e := range multi {
			issues = append(issues, issueMessage(e))
		}
		sort.Strings(issues)
		return &PayloadError{Issues: issues, Err: err}
	}
	return &PayloadError{Issues: []string{issueMessage(err)}, Err: err}
}

func issueMessage(err error) string {
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		if pointer := schemaErr.JSONPointer(); len(pointer) > 0 {
			return strings.Join(pointer, "/") + ": " + schemaErr.Reason
		}
		return schemaErr.Reason
	}
	return err.Error()
}
