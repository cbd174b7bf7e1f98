package search

import (
	"sort"
	"strings"

	"github.com/mozillazg/go-pinyin"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/elvisding0307/durian-cli/internal/domain/account"
)

// Engine filters decrypted record sets by website. It holds no state
// beyond its collator and never touches the cache; Filter is synchronous
// and side-effect free.
type Engine struct {
	collator *collate.Collator
	args     pinyin.Args
}

func NewEngine() *Engine {
	args := pinyin.NewArgs()
	// Keep non-Han runes instead of dropping them so mixed websites like
	// "银行bank" transliterate in full.
	args.Fallback = func(r rune, _ pinyin.Args) []string {
		return []string{string(r)}
	}

	return &Engine{
		collator: collate.New(language.Chinese),
		args:     args,
	}
}

// Filter returns the records whose website matches keyword, sorted
// ascending by website. An empty or whitespace-only keyword returns every
// record, sorted the same way.
//
// A non-empty keyword matches case-insensitively when any of the
// following holds:
//  1. the website contains the keyword;
//  2. the website's pinyin transliteration, joined with or without
//     spaces, contains the keyword;
//  3. the initial letters of the website's syllables contain the keyword.
func (e *Engine) Filter(records []account.DisplayRecord, keyword string) []account.DisplayRecord {
	keyword = strings.ToLower(strings.TrimSpace(keyword))

	result := make([]account.DisplayRecord, 0, len(records))
	for _, rec := range records {
		if keyword == "" || e.matches(rec.Website, keyword) {
			result = append(result, rec)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return e.collator.CompareString(result[i].Website, result[j].Website) < 0
	})

	return result
}

func (e *Engine) matches(website, keyword string) bool {
	if strings.Contains(strings.ToLower(website), keyword) {
		return true
	}

	syllables := e.transliterate(website)
	if len(syllables) == 0 {
		// Transliteration produced nothing usable; the substring check
		// above was this record's only chance.
		return false
	}

	joined := strings.Join(syllables, "")
	if strings.Contains(joined, keyword) {
		return true
	}
	if strings.Contains(strings.Join(syllables, " "), keyword) {
		return true
	}

	var initials strings.Builder
	for _, syl := range syllables {
		r := []rune(syl)
		if len(r) > 0 {
			initials.WriteRune(r[0])
		}
	}
	return strings.Contains(initials.String(), keyword)
}

// transliterate returns the website's lowercased pinyin syllables, tones
// stripped, one entry per rune.
func (e *Engine) transliterate(website string) []string {
	candidates := pinyin.Pinyin(website, e.args)

	syllables := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if len(c) == 0 || c[0] == "" {
			continue
		}
		syllables = append(syllables, strings.ToLower(c[0]))
	}
	return syllables
}
