// Package gen renders persistent object source files from the schema model.
//
// Every table becomes one Go file holding a struct named after the table
// with a "PO" suffix, a constructor, a TableName method and a getter and
// setter per column.
//
// # Architecture
//
// The generation pipeline follows this flow:
//
//	[]*schema.Table (compiler/load)
//	        ↓
//	   Type (render model: names, Go types, orm tags)
//	        ↓
//	   Renderer (jennifer or text/template)
//	        ↓
//	   {target}/{package segments}/{Type}.go
//
// # Key Types
//
//   - Config: package namespace, output folder and emitter settings
//   - Type: one table prepared for rendering
//   - Field: one column prepared for rendering
//   - Renderer: writes the source of one Type
//
// # Error Handling
//
// The package uses structured error types:
//
//   - SchemaError: a table that cannot be rendered as valid Go
//   - ConfigError: an invalid package namespace, target or option
//   - GenerationError: a failure writing a file
//
// Example error handling:
//
//	_, err := gen.Generate(ctx, cfg, tables)
//	if gen.IsSchemaError(err) {
//	    // fix the table or column name
//	}
//
// # Configuration
//
// Configuration is done via the functional options pattern:
//
//	cfg, err := gen.NewConfig(
//	    gen.WithPackage("com.example.model"),
//	    gen.WithTarget("./gen"),
//	    gen.WithWorkers(4),
//	)
//
// # Renderers
//
// JenniferRenderer builds the file with the jennifer library and is the
// default. TemplateRenderer executes the embedded "po" template and formats
// the result with golang.org/x/tools/imports. Both produce the same source
// for the same table.
//
// # Generated Output
//
//	{target}/
//	└── com/example/model/
//	    ├── OrderItemPO.go
//	    └── CustomerPO.go
package gen
