package search

// stopwords holds French articles, prepositions, demonstratives, quantifiers,
// and academic filler words dropped from the token stream after stemming.
// Matching is case-insensitive: analyze() looks up both the lowercased,
// accent-folded token and its stem.
var stopwords = buildStopwordSet(
	// Articles, prepositions, conjunctions
	"le", "la", "les", "un", "une", "des", "de", "du", "au", "aux",
	"et", "ou", "mais", "donc", "or", "ni", "car",
	"a", "à", "en", "dans", "sur", "sous", "par", "pour", "avec", "sans",
	"entre", "vers", "chez", "selon", "depuis", "pendant",
	// Demonstratives, possessives, pronouns
	"ce", "cet", "cette", "ces", "son", "sa", "ses", "leur", "leurs",
	"il", "elle", "ils", "elles", "on", "nous", "vous", "je", "tu",
	"qui", "que", "quoi", "dont", "où",
	// Quantifiers
	"tout", "tous", "toute", "toutes", "plus", "moins", "chaque", "certain",
	"certains", "plusieurs", "aucun", "autre", "autres",
	// Academic filler. Entries here are matched after accent-folding (see
	// analyze()), so they must be given in already-folded form, e.g.
	// "étudiant" -> "etudiant".
	"cours", "etudiant", "etudiants", "permet", "permettent", "vise", "visent",
	"offre", "offrent", "notions", "presente", "presentent", "travail",
	"introduction", "base", "bases", "principes", "notion", "concept",
	"concepts", "etude", "etudier", "aborde", "abordent",
	"apprentissage", "acquerir", "developper", "comprendre", "applique",
	"appliquer", "niveau", "cadre", "objectif", "objectifs",
)

func buildStopwordSet(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

func isStopword(token string) bool {
	_, ok := stopwords[token]
	return ok
}
