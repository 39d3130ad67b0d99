package summarize

import (
	"regexp"
	"sort"
)

const topKeywords = 5

var hangulWord = regexp.MustCompile(`[가-힣]{2,}`)

var stopwords = map[string]struct{}{
	"그리고": {}, "하지만": {}, "그런데": {}, "이러한": {}, "그래서": {},
	"따라서": {}, "때문에": {}, "이번": {}, "지난": {}, "오늘": {},
	"어제": {}, "내일": {}, "기자": {}, "취재": {},
}

// ExtractKeywords returns the topK most frequent Hangul words of length
// two or more, stopwords excluded. Ordering is by descending frequency,
// ties broken by first occurrence in the text.
func ExtractKeywords(text string, topK int) []string {
	if text == "" || topK <= 0 {
		return nil
	}

	words := hangulWord.FindAllString(text, -1)
	counts := make(map[string]int)
	firstSeen := make(map[string]int)

	for i, w := range words {
		if _, skip := stopwords[w]; skip {
			continue
		}
		if _, seen := counts[w]; !seen {
			firstSeen[w] = i
		}
		counts[w]++
	}

	unique := make([]string, 0, len(counts))
	for w := range counts {
		unique = append(unique, w)
	}
	sort.Slice(unique, func(i, j int) bool {
		if counts[unique[i]] != counts[unique[j]] {
			return counts[unique[i]] > counts[unique[j]]
		}
		return firstSeen[unique[i]] < firstSeen[unique[j]]
	})

	if len(unique) > topK {
		unique = unique[:topK]
	}
	return unique
}
