package search

import "testing"

func TestNewFieldTerms(t *testing.T) {
	ft := newFieldTerms([]string{"algebre", "lineaire", "algebre"})
	if ft.tf["algebre"] != 2 {
		t.Errorf("expected term frequency 2 for 'algebre', got %d", ft.tf["algebre"])
	}
	if ft.length != 3 {
		t.Errorf("expected length 3, got %d", ft.length)
	}
}

func TestNewFieldTerms_EmptyHasLengthFloorOfOne(t *testing.T) {
	ft := newFieldTerms(nil)
	if ft.length != 1 {
		t.Errorf("expected length floor of 1 for an empty token list, got %d", ft.length)
	}
}

func TestBuildCorpusIndex_ComputesAverages(t *testing.T) {
	corpus := goldenCorpus()
	idx := buildCorpusIndex(corpus)

	if idx.n != len(corpus) {
		t.Errorf("expected n=%d, got %d", len(corpus), idx.n)
	}
	if len(idx.docs) != len(corpus) {
		t.Fatalf("expected %d docs, got %d", len(corpus), len(idx.docs))
	}
	if idx.avgCodeLen <= 0 || idx.avgTitle <= 0 || idx.avgDesc <= 0 {
		t.Errorf("expected positive field averages, got code=%v title=%v desc=%v", idx.avgCodeLen, idx.avgTitle, idx.avgDesc)
	}
}

func TestBuildCorpusIndex_EmptyCorpus(t *testing.T) {
	idx := buildCorpusIndex(nil)
	if idx.n != 0 {
		t.Errorf("expected n=0, got %d", idx.n)
	}
	if idx.avgCodeLen != 1.0 || idx.avgTitle != 1.0 || idx.avgDesc != 1.0 {
		t.Errorf("expected averages to default to 1.0 on an empty corpus, got code=%v title=%v desc=%v", idx.avgCodeLen, idx.avgTitle, idx.avgDesc)
	}
}

func TestBuildCorpusIndex_DocumentFrequencyCountsDistinctDocsOnly(t *testing.T) {
	corpus := []Course{
		NewCourse("AAA100", "algebre algebre", "algebre partout", intPtr(3)),
		NewCourse("BBB200", "calcul", "analyse", intPtr(3)),
	}
	idx := buildCorpusIndex(corpus)

	// "algebre" appears 3 times total but in only one document, so df must be 1.
	if idx.df["algebre"] != 1 {
		t.Errorf("expected df[algebre]=1 (one document, repeated term), got %d", idx.df["algebre"])
	}
}

func TestTokenizeDocumentSafe_PopulatesAllFields(t *testing.T) {
	c := NewCourse("MAT380", "Algèbre linéaire", "Espaces vectoriels", intPtr(3))
	d := tokenizeDocumentSafe(c)

	if len(d.code.tf) == 0 {
		t.Error("expected code field to be tokenized")
	}
	if len(d.title.tf) == 0 {
		t.Error("expected title field to be tokenized")
	}
	if len(d.desc.tf) == 0 {
		t.Error("expected description field to be tokenized")
	}
}

func TestMaxFloat(t *testing.T) {
	if got := maxFloat(3.0, 5.0); got != 5.0 {
		t.Errorf("maxFloat(3,5) = %v, want 5", got)
	}
	if got := maxFloat(5.0, 3.0); got != 5.0 {
		t.Errorf("maxFloat(5,3) = %v, want 5", got)
	}
}
