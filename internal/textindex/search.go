package textindex

import (
	"github.com/blevesearch/bleve/v2"
	blevequery "github.com/blevesearch/bleve/v2/search/query"
)

// Hit is one search result before catalog hydration.
type Hit struct {
	ChunkID string
	Source  string
	Title   string
	Index   int
	Score   float64
}

// Search runs a disjunction match query over content, title, and source
// with the field boosts tuned for document chunks.
func Search(dir string, query string, topK int) ([]Hit, error) {
	index, err := Open(dir)
	if err != nil {
		return nil, err
	}
	defer index.Close()

	return searchIndex(index, query, topK)
}

func searchIndex(index bleve.Index, query string, topK int) ([]Hit, error) {
	if topK <= 0 {
		topK = 10
	}

	contentQuery := bleve.NewMatchQuery(query)
	contentQuery.SetField("content")
	contentQuery.SetBoost(1.0)
	titleQuery := bleve.NewMatchQuery(query)
	titleQuery.SetField("title")
	titleQuery.SetBoost(2.0)
	sourceQuery := bleve.NewMatchQuery(query)
	sourceQuery.SetField("source")
	sourceQuery.SetBoost(1.5)

	disjunction := bleve.NewDisjunctionQuery([]blevequery.Query{contentQuery, titleQuery, sourceQuery}...)

	req := bleve.NewSearchRequestOptions(disjunction, topK, 0, false)
	req.Fields = []string{"source", "title", "chunk_index"}

	res, err := index.Search(req)
	if err != nil {
		return nil, err
	}

	var hits []Hit
	for _, hit := range res.Hits {
		source, _ := hit.Fields["source"].(string)
		title, _ := hit.Fields["title"].(string)
		hits = append(hits, Hit{
			ChunkID: hit.ID,
			Source:  source,
			Title:   title,
			Index:   parseNumericField(hit.Fields["chunk_index"]),
			Score:   hit.Score,
		})
	}
	return hits, nil
}

func parseNumericField(val any) int {
	switch v := val.(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	default:
		return 0
	}
}
