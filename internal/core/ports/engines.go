// Package ports declares the interfaces between the document core and its
// external engines. The core never touches raw XML bytes or schema files
// directly; adapters do.
package ports

import (
	"context"

	"github.com/mikelarr/gpxbide/internal/pkg/xmltree"
)

// TreeCodec parses raw bytes into a generic labeled tree and writes such a
// tree back to bytes.
type TreeCodec interface {
	Parse(ctx context.Context, data []byte) (*xmltree.Node, error)
	Serialize(ctx context.Context, root *xmltree.Node) ([]byte, error)
}

// SchemaValidator checks a generic tree against a schema and reports
// pass/fail. Non-conformance is a false result, not an error; errors are for
// unreadable schemas and engine failures.
type SchemaValidator interface {
	Validate(ctx context.Context, root *xmltree.Node, schema []byte) (bool, error)
}
