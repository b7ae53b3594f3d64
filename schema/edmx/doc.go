// Package edmx provides the in-memory model of an OData EDMX/CSDL metadata
// document and the predicates used to query it.
//
// A document is parsed once and is immutable afterwards. Lookup happens only
// through depth-first, document-order traversal of a node's descendants:
//
//	doc, err := edmx.ParseBytes(data)
//	if err != nil {
//		return err // wraps odatagen.ErrMalformedMetadata
//	}
//	for n := range doc.Descendants() {
//		if edmx.IsEntityNamed(n, "Customer") {
//			props := n.Filter(edmx.IsEditableProperty)
//			...
//		}
//	}
//
// The input shape the generator relies on is
//
//	Edmx > DataServices > Schema > EntityType[Name]
//	    > (Property[Name,Type,Nullable?,MaxLength?] > Annotation[Term,Bool]* | Key > PropertyRef[Name])*
//
// but Parse accepts any well-formed XML and does not validate against the
// CSDL grammar.
package edmx
