// internal/kana/kana.go
//
// Romaji to hiragana conversion used to widen reading acceptance. The
// conversion is a fixed sequence of literal rewrites rather than a tokenizer:
// every pass runs over the full output of the previous pass, so the order of
// the passes and of the table entries below is part of the behavior.

package kana

import "strings"

// Sokuon is the small tsu that marks a doubled consonant.
const Sokuon = "っ"

const sokuonRune = 'っ'

type rewrite struct {
	from string
	to   string
}

// clusters are rewritten before the generic doubled-consonant scan so the
// geminate lands in front of the whole digraph.
var clusters = []rewrite{
	{"ssh", "っsh"},
	{"tch", "っch"},
	{"tt", "っt"},
	{"kk", "っk"},
	{"pp", "っp"},
	{"ss", "っs"},
}

// geminable lists the consonants whose doubling collapses into a sokuon.
const geminable = "kstpgdrfbjm"

var nasals = []rewrite{
	{"nb", "mb"},
	{"np", "mp"},
}

// syllables is scanned top to bottom. Youon come first so "kyo" is never
// split into "ky" + "o"; "nn" precedes "n".
var syllables = []rewrite{
	{"kya", "きゃ"}, {"kyu", "きゅ"}, {"kyo", "きょ"},
	{"sha", "しゃ"}, {"shu", "しゅ"}, {"sho", "しょ"},
	{"cha", "ちゃ"}, {"chu", "ちゅ"}, {"cho", "ちょ"},
	{"nya", "にゃ"}, {"nyu", "にゅ"}, {"nyo", "にょ"},
	{"hya", "ひゃ"}, {"hyu", "ひゅ"}, {"hyo", "ひょ"},
	{"mya", "みゃ"}, {"myu", "みゅ"}, {"myo", "みょ"},
	{"rya", "りゃ"}, {"ryu", "りゅ"}, {"ryo", "りょ"},
	{"gya", "ぎゃ"}, {"gyu", "ぎゅ"}, {"gyo", "ぎょ"},
	{"ja", "じゃ"}, {"ju", "じゅ"}, {"jo", "じょ"},
	{"bya", "びゃ"}, {"byu", "びゅ"}, {"byo", "びょ"},
	{"pya", "ぴゃ"}, {"pyu", "ぴゅ"}, {"pyo", "ぴょ"},

	{"ka", "か"}, {"ki", "き"}, {"ku", "く"}, {"ke", "け"}, {"ko", "こ"},
	{"ga", "が"}, {"gi", "ぎ"}, {"gu", "ぐ"}, {"ge", "げ"}, {"go", "ご"},
	{"sa", "さ"}, {"shi", "し"}, {"su", "す"}, {"se", "せ"}, {"so", "そ"},
	{"za", "ざ"}, {"ji", "じ"}, {"zu", "ず"}, {"ze", "ぜ"}, {"zo", "ぞ"},
	{"ta", "た"}, {"chi", "ち"}, {"tsu", "つ"}, {"te", "て"}, {"to", "と"},
	{"da", "だ"}, {"di", "ぢ"}, {"du", "づ"}, {"de", "で"}, {"do", "ど"},
	{"na", "な"}, {"ni", "に"}, {"nu", "ぬ"}, {"ne", "ね"}, {"no", "の"},
	{"ha", "は"}, {"hi", "ひ"}, {"fu", "ふ"}, {"he", "へ"}, {"ho", "ほ"},
	{"ba", "ば"}, {"bi", "び"}, {"bu", "ぶ"}, {"be", "べ"}, {"bo", "ぼ"},
	{"pa", "ぱ"}, {"pi", "ぴ"}, {"pu", "ぷ"}, {"pe", "ぺ"}, {"po", "ぽ"},
	{"ma", "ま"}, {"mi", "み"}, {"mu", "む"}, {"me", "め"}, {"mo", "も"},
	{"ya", "や"}, {"yu", "ゆ"}, {"yo", "よ"},
	{"ra", "ら"}, {"ri", "り"}, {"ru", "る"}, {"re", "れ"}, {"ro", "ろ"},
	{"wa", "わ"}, {"wo", "を"},
	{"nn", "ん"},
	{"n", "ん"},
}

var vowels = []rewrite{
	{"a", "あ"},
	{"i", "い"},
	{"u", "う"},
	{"e", "え"},
	{"o", "お"},
}

var longVowels = []rewrite{
	{"ou", "おう"},
	{"oo", "おう"},
	{"ei", "えい"},
}

// RomajiToHiragana converts romanized input to hiragana. It never fails:
// characters with no mapping are left in place.
func RomajiToHiragana(input string) string {
	out := strings.ToLower(input)
	out = strings.ReplaceAll(out, "n'", "ん")
	out = apply(out, clusters)
	out = collapseDoubles(out)
	out = apply(out, nasals)
	out = apply(out, syllables)
	out = apply(out, vowels)
	return apply(out, longVowels)
}

// TableSize reports how many syllables the conversion table maps.
func TableSize() int {
	return len(syllables)
}

func apply(s string, rules []rewrite) string {
	for _, r := range rules {
		s = strings.ReplaceAll(s, r.from, r.to)
	}
	return s
}

// collapseDoubles replaces each adjacent pair of identical geminable
// consonants with a sokuon. The scan resumes right after the marker, so
// "kkk" becomes "っk".
func collapseDoubles(s string) string {
	runes := []rune(s)
	for i := 0; i+1 < len(runes); i++ {
		if runes[i] == runes[i+1] && strings.ContainsRune(geminable, runes[i]) {
			runes[i] = sokuonRune
			runes = append(runes[:i+1], runes[i+2:]...)
		}
	}
	return string(runes)
}
