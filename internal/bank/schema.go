package bank

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed quiz.schema.json
var quizSchemaJSON []byte

const quizSchemaURL = "schema://quiz.schema.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func quizSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var def any
		if err := json.Unmarshal(quizSchemaJSON, &def); err != nil {
			compileErr = fmt.Errorf("parse quiz schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(quizSchemaURL, def); err != nil {
			compileErr = fmt.Errorf("add quiz schema: %w", err)
			return
		}
		compiled, compileErr = c.Compile(quizSchemaURL)
	})
	return compiled, compileErr
}

// ValidateDocument checks a decoded quiz document (JSON-compatible values) against the bank schema.
func ValidateDocument(doc any) error {
	schema, err := quizSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
