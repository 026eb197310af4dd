package search

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	htmlTagRe    = regexp.MustCompile(`<[^>]*>`)
	htmlEntityRe = regexp.MustCompile(`&(#\d+|#x[0-9a-fA-F]+|[a-zA-Z]+);`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	// alnumBoundaryRe finds a letter-run immediately adjacent to a digit-run
	// in either direction, so "GTI320" splits into "GTI" and "320".
	alnumBoundaryRe = regexp.MustCompile(`([\p{L}])([\p{N}])|([\p{N}])([\p{L}])`)

	// accentFolder strips combining marks left behind by NFD decomposition,
	// e.g. "algèbre" -> "algebre". Resolves the open question in spec §9 by
	// folding accents uniformly rather than carrying forward inconsistent
	// case/accent handling.
	accentFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	stemRules = []struct {
		suffix  *regexp.Regexp
		replace string
	}{
		{regexp.MustCompile(`ements$|ement$`), "ement"},
		{regexp.MustCompile(`ations$|ation$`), "ation"},
		{regexp.MustCompile(`iques$|ique$`), "ique"},
		{regexp.MustCompile(`eurs$|eur$`), "eur"},
		{regexp.MustCompile(`ités$|ité$`), "ité"},
		{regexp.MustCompile(`euses$|euse$`), "euse"},
		{regexp.MustCompile(`iers$|ier$`), "ier"},
		{regexp.MustCompile(`ables$|able$`), "able"},
		{regexp.MustCompile(`ibles$|ible$`), "ible"},
		{regexp.MustCompile(`ifs$|if$`), "if"},
		{regexp.MustCompile(`ives$|ive$`), "ive"},
		{regexp.MustCompile(`ances$|ance$`), "ance"},
		{regexp.MustCompile(`ences$|ence$`), "ence"},
		{regexp.MustCompile(`tions$|tion$`), "tion"},
		{regexp.MustCompile(`elles$|elle$`), "elle"},
		{regexp.MustCompile(`aux$`), "al"},
	}
	trailingSException = regexp.MustCompile(`ss$|us$|is$|os$`)
)

// foldAccents lowercases and removes diacritics via NFD decomposition +
// combining-mark strip, e.g. "Algèbre" -> "algebre".
func foldAccents(s string) string {
	folded, _, err := transform.String(accentFolder, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(folded)
}

// normalize lowercases, strips HTML tags/entities, folds accents and
// collapses whitespace.
func normalize(text string) string {
	text = htmlTagRe.ReplaceAllString(text, " ")
	text = htmlEntityRe.ReplaceAllString(text, " ")
	text = foldAccents(text)
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// maskNonAlphanumerics replaces every rune outside the Unicode letter/number
// classes with a space.
func maskNonAlphanumerics(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return b.String()
}

func splitAlphanumericBoundaries(text string) string {
	// A second pass catches boundaries the first pass skipped because their
	// first rune was consumed by the previous match, e.g. "a1b".
	text = alnumBoundaryRe.ReplaceAllString(text, "$1$3 $2$4")
	return alnumBoundaryRe.ReplaceAllString(text, "$1$3 $2$4")
}

// stem applies the light French suffix-rewrite rules, only for tokens of
// length >= 5, then strips a trailing "s" unless preceded by ss/us/is/os.
func stem(token string) string {
	if len([]rune(token)) < 5 {
		return token
	}
	for _, rule := range stemRules {
		if rule.suffix.MatchString(token) {
			token = rule.suffix.ReplaceAllString(token, rule.replace)
			return token
		}
	}
	if strings.HasSuffix(token, "s") && !trailingSException.MatchString(token) {
		token = strings.TrimSuffix(token, "s")
	}
	return token
}

// emitBigrams appends "tok_i_tok_{i+1}" for every adjacent token pair,
// leaving the unigrams in place.
func emitBigrams(tokens []string) []string {
	if len(tokens) < 2 {
		return tokens
	}
	out := make([]string, 0, len(tokens)*2-1)
	out = append(out, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		out = append(out, tokens[i]+"_"+tokens[i+1])
	}
	return out
}

// analyzeOptions controls analyzer behavior that differs between document
// and query tokenization.
type analyzeOptions struct {
	expandAcronyms bool
}

// analyze runs the full C1 pipeline: normalize, mask, split boundaries,
// split whitespace, stem, drop stopwords, optionally expand acronyms, emit
// bigrams.
func analyze(text string, opts analyzeOptions) []string {
	text = normalize(text)
	text = maskNonAlphanumerics(text)
	text = splitAlphanumericBoundaries(text)
	raw := strings.Fields(text)

	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		stemmed := stem(tok)
		if isStopword(tok) || isStopword(stemmed) {
			continue
		}
		tokens = append(tokens, stemmed)
	}

	if opts.expandAcronyms {
		tokens = expandAcronyms(tokens)
	}

	return emitBigrams(tokens)
}

// analyzeDocument tokenizes document-side text: no acronym expansion.
func analyzeDocument(text string) []string {
	return analyze(text, analyzeOptions{expandAcronyms: false})
}

// analyzeQuery tokenizes query-side text: acronym expansion applies.
func analyzeQuery(text string) []string {
	return analyze(text, analyzeOptions{expandAcronyms: true})
}

// isBigram reports whether a token is a bigram (joined by "_").
func isBigram(token string) bool {
	return strings.Contains(token, "_")
}
