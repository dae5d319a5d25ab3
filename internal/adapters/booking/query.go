package booking

import _ "embed"

// OperationName is the GraphQL operation the upstream search page issues.
const OperationName = "FullSearch"

// fullSearchQuery is the upstream's FullSearch document. It is sent byte-for-byte;
// refresh it by replacing fullsearch.graphql, never by editing it in code.
//
//go:embed fullsearch.graphql
var fullSearchQuery string

// Query returns the FullSearch query document.
func Query() string { return fullSearchQuery }
