package services

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"alfredoptarigan/ats-resume-expert/internal/models"
)

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_][\p{L}\p{N}_']+`)

// stopWords are dropped before counting.
var stopWords = map[string]bool{}

func init() {
	for _, w := range strings.Fields(`
		a about above after again against all also am an and any are aren't as at
		be because been before being below between both but by
		can can't cannot com could couldn't
		did didn't do does doesn't doing don't down during
		each else ever few for from further get had hadn't has hasn't have haven't having
		he he'd he'll he's hence her here here's hers herself him himself his how how's however http
		i i'd i'll i'm i've if in into is isn't it it's its itself just k
		let's like me more most mustn't my myself no nor not of off on once only or other otherwise
		ought our ours ourselves out over own r same shall shan't she she'd she'll she's should
		shouldn't since so some such than that that's the their theirs them themselves then there
		there's therefore these they they'd they'll they're they've this those through to too
		under until up very was wasn't we we'd we'll we're we've were weren't what what's when
		when's where where's which while who who's whom why why's with won't would wouldn't www
		you you'd you'll you're you've your yours yourself yourselves`) {
		stopWords[w] = true
	}
}

// Tokenize splits text into candidate words: letter/digit runs of at least two
// characters, possessive 's removed, purely numeric tokens dropped.
func Tokenize(text string) []string {
	raw := wordPattern.FindAllString(text, -1)

	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		tok = strings.TrimSuffix(tok, "'s")
		tok = strings.Trim(tok, "'")
		if len([]rune(tok)) < 2 || isNumeric(tok) {
			continue
		}
		if stopWords[strings.ToLower(tok)] {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// CountWords counts tokens case-insensitively. Each word is reported in its most
// frequent spelling, and a plural ending in "s" is folded into its singular when
// both appear. Results are ordered by count, then alphabetically.
func CountWords(text string) []models.WordCount {
	counts := make(map[string]int)
	forms := make(map[string]map[string]int)
	var firstSeen []string

	for _, tok := range Tokenize(text) {
		key := strings.ToLower(tok)
		if _, ok := forms[key]; !ok {
			forms[key] = make(map[string]int)
			firstSeen = append(firstSeen, key)
		}
		counts[key]++
		forms[key][tok]++
	}

	for _, key := range firstSeen {
		if !strings.HasSuffix(key, "s") || strings.HasSuffix(key, "ss") {
			continue
		}
		singular := strings.TrimSuffix(key, "s")
		if _, ok := counts[singular]; !ok {
			continue
		}
		counts[singular] += counts[key]
		delete(counts, key)
	}

	out := make([]models.WordCount, 0, len(counts))
	for _, key := range firstSeen {
		n, ok := counts[key]
		if !ok {
			continue
		}
		out = append(out, models.WordCount{Word: preferredForm(forms[key]), Count: n})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return strings.ToLower(out[i].Word) < strings.ToLower(out[j].Word)
	})
	return out
}

func preferredForm(forms map[string]int) string {
	best, bestN := "", -1
	for form, n := range forms {
		if n > bestN || (n == bestN && form < best) {
			best, bestN = form, n
		}
	}
	return best
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '_' && r != '\'' {
			return false
		}
	}
	return true
}
