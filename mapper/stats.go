package mapper

// DocumentStats contains statistical information about a mapped document
type DocumentStats struct {
	PathCount           int // Number of path templates
	OperationCount      int // Total number of operations across all paths
	ResponseCount       int // Total number of responses across all operations
	SchemaCount         int // Number of component schemas
	SecuritySchemeCount int // Number of component security schemes
	TagCount            int // Number of declared tags
}

// GetDocumentStats returns statistics for a mapped document
func GetDocumentStats(doc *Document) DocumentStats {
	if doc == nil {
		return DocumentStats{}
	}
	stats := DocumentStats{
		PathCount: len(doc.Paths),
		TagCount:  len(doc.Tags),
	}
	for _, op := range doc.Operations() {
		stats.OperationCount++
		stats.ResponseCount += len(op.Responses)
	}
	if doc.Components != nil {
		stats.SchemaCount = doc.Components.Schemas.Len()
		stats.SecuritySchemeCount = doc.Components.SecuritySchemes.Len()
	}
	return stats
}
