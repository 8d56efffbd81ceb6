package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve mapping for post documents.
//
// Content is stemmed English text; author fields use the simple analyzer so
// names are not stemmed. Type and id are keywords for exact filtering.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	contentFieldMapping := bleve.NewTextFieldMapping()
	contentFieldMapping.Analyzer = en.AnalyzerName
	contentFieldMapping.Store = true
	contentFieldMapping.IncludeTermVectors = true // For highlighting
	docMapping.AddFieldMappingsAt("content", contentFieldMapping)

	authorFieldMapping := bleve.NewTextFieldMapping()
	authorFieldMapping.Analyzer = simple.Name
	authorFieldMapping.Store = true
	authorFieldMapping.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt("author_name", authorFieldMapping)

	handleFieldMapping := bleve.NewTextFieldMapping()
	handleFieldMapping.Analyzer = keyword.Name
	handleFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("author_handle", handleFieldMapping)

	typeFieldMapping := bleve.NewTextFieldMapping()
	typeFieldMapping.Analyzer = keyword.Name
	typeFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("type", typeFieldMapping)

	idFieldMapping := bleve.NewTextFieldMapping()
	idFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("id", idFieldMapping)

	sourceFieldMapping := bleve.NewTextFieldMapping()
	sourceFieldMapping.Analyzer = keyword.Name
	sourceFieldMapping.Store = true
	sourceFieldMapping.Index = false
	docMapping.AddFieldMappingsAt("source_url", sourceFieldMapping)

	likesFieldMapping := bleve.NewNumericFieldMapping()
	likesFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("likes", likesFieldMapping)

	repliesFieldMapping := bleve.NewNumericFieldMapping()
	repliesFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("replies", repliesFieldMapping)

	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping
}
