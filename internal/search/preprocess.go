package search

// fieldTerms holds a term-frequency table and length for one document field.
type fieldTerms struct {
	tf     map[string]int
	length int // always >= 1 to avoid division by zero
}

// docIndex is the preprocessed, per-field tokenization of a single course.
type docIndex struct {
	course Course
	code   fieldTerms
	title  fieldTerms
	desc   fieldTerms
}

// corpusIndex is the C2 output: per-document field tables plus corpus-wide
// averages and document frequencies, ready for BM25F scoring.
type corpusIndex struct {
	docs       []docIndex
	avgCodeLen float64
	avgTitle   float64
	avgDesc    float64
	// df counts the number of documents (any field) containing a term, for IDF.
	df map[string]int
	n  int
}

func newFieldTerms(tokens []string) fieldTerms {
	tf := make(map[string]int, len(tokens))
	for _, t := range tokens {
		tf[t]++
	}
	length := len(tokens)
	if length < 1 {
		length = 1
	}
	return fieldTerms{tf: tf, length: length}
}

// buildCorpusIndex runs C2: tokenizes code/title/description independently
// per course, computes per-field lengths and corpus-wide averages, and
// tracks document frequency per term across all fields.
//
// A document whose tokenization fails (panics) is isolated: it is
// substituted with an empty-fields placeholder and retained, so a single
// malformed record cannot poison the rest of the index.
func buildCorpusIndex(corpus []Course) *corpusIndex {
	idx := &corpusIndex{
		docs: make([]docIndex, 0, len(corpus)),
		df:   make(map[string]int),
		n:    len(corpus),
	}

	var sumCode, sumTitle, sumDesc float64

	for _, c := range corpus {
		d := tokenizeDocumentSafe(c)
		idx.docs = append(idx.docs, d)
		sumCode += float64(d.code.length)
		sumTitle += float64(d.title.length)
		sumDesc += float64(d.desc.length)

		seen := make(map[string]struct{})
		for _, ft := range []fieldTerms{d.code, d.title, d.desc} {
			for term := range ft.tf {
				if _, ok := seen[term]; ok {
					continue
				}
				seen[term] = struct{}{}
				idx.df[term]++
			}
		}
	}

	if idx.n > 0 {
		idx.avgCodeLen = maxFloat(sumCode/float64(idx.n), 1.0)
		idx.avgTitle = maxFloat(sumTitle/float64(idx.n), 1.0)
		idx.avgDesc = maxFloat(sumDesc/float64(idx.n), 1.0)
	} else {
		idx.avgCodeLen, idx.avgTitle, idx.avgDesc = 1.0, 1.0, 1.0
	}

	return idx
}

// tokenizeDocumentSafe wraps per-document tokenization with panic recovery:
// analyzer bugs on one malformed record must not abort the whole corpus build.
func tokenizeDocumentSafe(c Course) (d docIndex) {
	defer func() {
		if recover() != nil {
			d = docIndex{
				course: c,
				code:   newFieldTerms(nil),
				title:  newFieldTerms(nil),
				desc:   newFieldTerms(nil),
			}
		}
	}()

	return docIndex{
		course: c,
		code:   newFieldTerms(analyzeDocument(c.Code)),
		title:  newFieldTerms(analyzeDocument(c.Title)),
		desc:   newFieldTerms(analyzeDocument(c.Description)),
	}
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
