package model

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"

	"github.com/vk/datacheckgo/internal/resource"
)

// rootSchema describes the top-level blocks a resource file may contain. The
// block types are exactly the resource kinds; each takes a single name label.
var rootSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: string(resource.KindBatchDefinition), LabelNames: []string{"name"}},
		{Type: string(resource.KindExpectationSuite), LabelNames: []string{"name"}},
		{Type: string(resource.KindValidationDefinition), LabelNames: []string{"name"}},
		{Type: string(resource.KindCheckpoint), LabelNames: []string{"name"}},
	},
}

var batchDefinitionSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "description"},
		{Name: "datasource", Required: true},
		{Name: "asset", Required: true},
	},
}

var suiteSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "description"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "expectation", LabelNames: []string{"type"}},
	},
}

var validationDefinitionSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "description"},
		{Name: "suite", Required: true},
		{Name: "batch", Required: true},
	},
}

var checkpointSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "description"},
		{Name: "validation_definitions", Required: true},
	},
}

// decodeHCL parses HCL source into a partial Model holding only the resources
// declared in that one file.
func decodeHCL(src []byte, filePath string) (*Model, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, filePath)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filePath, diags)
	}

	content, diags := hclFile.Body.Content(rootSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filePath, diags)
	}

	m := NewModel()
	for _, block := range content.Blocks {
		name := block.Labels[0]

		var err error
		switch resource.Kind(block.Type) {
		case resource.KindBatchDefinition:
			err = m.decodeBatchDefinition(name, block.Body, filePath)
		case resource.KindExpectationSuite:
			err = m.decodeSuite(name, block.Body, filePath)
		case resource.KindValidationDefinition:
			err = m.decodeValidationDefinition(name, block.Body, filePath)
		case resource.KindCheckpoint:
			err = m.decodeCheckpoint(name, block.Body, filePath)
		}
		if err != nil {
			return nil, fmt.Errorf("error in %s: %w", filePath, err)
		}
	}

	return m, nil
}

func (m *Model) decodeBatchDefinition(name string, body hcl.Body, filePath string) error {
	content, diags := body.Content(batchDefinitionSchema)
	if diags.HasErrors() {
		return fmt.Errorf("batch_definition %q: %w", name, diags)
	}

	bd := &BatchDefinition{Name: name, SourceFile: filePath}
	if err := decodeStringAttr(content.Attributes, "description", &bd.Description); err != nil {
		return fmt.Errorf("batch_definition %q: %w", name, err)
	}
	if err := decodeStringAttr(content.Attributes, "datasource", &bd.Datasource); err != nil {
		return fmt.Errorf("batch_definition %q: %w", name, err)
	}
	if err := decodeStringAttr(content.Attributes, "asset", &bd.Asset); err != nil {
		return fmt.Errorf("batch_definition %q: %w", name, err)
	}

	if _, exists := m.BatchDefinitions[name]; exists {
		return &resource.DuplicateResourceError{Ref: resource.NewRef(resource.KindBatchDefinition, name)}
	}
	m.BatchDefinitions[name] = bd
	return nil
}

func (m *Model) decodeSuite(name string, body hcl.Body, filePath string) error {
	content, diags := body.Content(suiteSchema)
	if diags.HasErrors() {
		return fmt.Errorf("expectation_suite %q: %w", name, diags)
	}

	suite := &Suite{Name: name, SourceFile: filePath}
	if err := decodeStringAttr(content.Attributes, "description", &suite.Description); err != nil {
		return fmt.Errorf("expectation_suite %q: %w", name, err)
	}

	for _, block := range content.Blocks {
		exp, err := decodeExpectation(block)
		if err != nil {
			return fmt.Errorf("expectation_suite %q: %w", name, err)
		}
		suite.Expectations = append(suite.Expectations, exp)
	}

	if _, exists := m.Suites[name]; exists {
		return &resource.DuplicateResourceError{Ref: resource.NewRef(resource.KindExpectationSuite, name)}
	}
	m.Suites[name] = suite
	return nil
}

// decodeExpectation converts an `expectation "type" { ... }` block. Every
// attribute in the body becomes a keyword argument; values must be literals
// since expectation arguments cannot reference other resources.
func decodeExpectation(block *hcl.Block) (Expectation, error) {
	exp := Expectation{Type: block.Labels[0], Kwargs: make(map[string]any)}

	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return exp, fmt.Errorf("expectation %q: %w", exp.Type, diags)
	}

	for attrName, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return exp, fmt.Errorf("expectation %q, argument %q: %w", exp.Type, attrName, diags)
		}
		goVal, err := ctyToGo(val)
		if err != nil {
			return exp, fmt.Errorf("expectation %q, argument %q: %w", exp.Type, attrName, err)
		}
		exp.Kwargs[attrName] = goVal
	}

	return exp, nil
}

func (m *Model) decodeValidationDefinition(name string, body hcl.Body, filePath string) error {
	content, diags := body.Content(validationDefinitionSchema)
	if diags.HasErrors() {
		return fmt.Errorf("validation_definition %q: %w", name, diags)
	}

	vd := &ValidationDefinition{Name: name, SourceFile: filePath}
	if err := decodeStringAttr(content.Attributes, "description", &vd.Description); err != nil {
		return fmt.Errorf("validation_definition %q: %w", name, err)
	}

	var err error
	vd.Suite, err = refFromExpression(content.Attributes["suite"].Expr, resource.KindExpectationSuite)
	if err != nil {
		return fmt.Errorf("validation_definition %q, attribute \"suite\": %w", name, err)
	}
	vd.Batch, err = refFromExpression(content.Attributes["batch"].Expr, resource.KindBatchDefinition)
	if err != nil {
		return fmt.Errorf("validation_definition %q, attribute \"batch\": %w", name, err)
	}

	if _, exists := m.ValidationDefinitions[name]; exists {
		return &resource.DuplicateResourceError{Ref: resource.NewRef(resource.KindValidationDefinition, name)}
	}
	m.ValidationDefinitions[name] = vd
	return nil
}

func (m *Model) decodeCheckpoint(name string, body hcl.Body, filePath string) error {
	content, diags := body.Content(checkpointSchema)
	if diags.HasErrors() {
		return fmt.Errorf("checkpoint %q: %w", name, diags)
	}

	cp := &Checkpoint{Name: name, SourceFile: filePath}
	if err := decodeStringAttr(content.Attributes, "description", &cp.Description); err != nil {
		return fmt.Errorf("checkpoint %q: %w", name, err)
	}

	refs, err := refListFromExpression(content.Attributes["validation_definitions"].Expr, resource.KindValidationDefinition)
	if err != nil {
		return fmt.Errorf("checkpoint %q, attribute \"validation_definitions\": %w", name, err)
	}
	if len(refs) == 0 {
		return fmt.Errorf("checkpoint %q must reference at least one validation definition", name)
	}
	cp.ValidationDefinitions = refs

	if _, exists := m.Checkpoints[name]; exists {
		return &resource.DuplicateResourceError{Ref: resource.NewRef(resource.KindCheckpoint, name)}
	}
	m.Checkpoints[name] = cp
	return nil
}

// decodeStringAttr evaluates an optional string attribute into target.
func decodeStringAttr(attrs hcl.Attributes, name string, target *string) error {
	attr, exists := attrs[name]
	if !exists {
		return nil
	}
	if diags := gohcl.DecodeExpression(attr.Expr, nil, target); diags.HasErrors() {
		return fmt.Errorf("attribute %q: %w", name, diags)
	}
	return nil
}

// refFromExpression extracts a single resource reference from an expression
// like `expectation_suite.orders`. The traversal root must be the expected
// resource kind.
func refFromExpression(expr hcl.Expression, want resource.Kind) (resource.Ref, error) {
	traversals := expr.Variables()
	if len(traversals) != 1 {
		return resource.Ref{}, fmt.Errorf("expected a single resource reference like %s.<name>", want)
	}
	return refFromTraversal(traversals[0], want)
}

// refListFromExpression extracts resource references from a list literal like
// `[validation_definition.a, validation_definition.b]`, preserving the
// declared order.
func refListFromExpression(expr hcl.Expression, want resource.Kind) ([]resource.Ref, error) {
	// Must be a list literal so declaration order is well-defined.
	if syntaxExpr, ok := expr.(hclsyntax.Expression); ok {
		if _, isTuple := syntaxExpr.(*hclsyntax.TupleConsExpr); !isTuple {
			return nil, fmt.Errorf("expected a list of %s references", want.Label())
		}
	}

	traversals := expr.Variables()
	refs := make([]resource.Ref, 0, len(traversals))
	for _, traversal := range traversals {
		ref, err := refFromTraversal(traversal, want)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// refFromTraversal converts a kind.name traversal into a Ref.
func refFromTraversal(traversal hcl.Traversal, want resource.Kind) (resource.Ref, error) {
	if len(traversal) != 2 {
		return resource.Ref{}, fmt.Errorf("invalid resource reference: expected %s.<name>", want)
	}

	kind, err := resource.ParseKind(traversal.RootName())
	if err != nil {
		return resource.Ref{}, err
	}
	if kind != want {
		return resource.Ref{}, fmt.Errorf("reference must be a %s, got %s", want.Label(), kind.Label())
	}

	nameAttr, ok := traversal[1].(hcl.TraverseAttr)
	if !ok {
		return resource.Ref{}, fmt.Errorf("invalid resource reference: expected %s.<name>", want)
	}

	return resource.NewRef(kind, nameAttr.Name), nil
}
