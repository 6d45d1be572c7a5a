// Package stemmer implements a Snowball-style Russian stemmer: suffix groups
// are stripped in order (perfective gerund, reflexive, adjective/participle,
// verb, noun), then a trailing "и", the derivational "ость" suffix, a
// superlative, a doubled "н", and a soft sign. Words are expected in
// lowercase UTF-8. The index itself stores surface forms; stemming is used
// by the corpus-analysis tooling.
package stemmer

import "strings"

var perfectiveGerund1 = []string{"вшись", "вши", "в"}

var perfectiveGerund2 = []string{"ившись", "ывшись", "ивши", "ывши", "ив", "ыв"}

var adjective = []string{
	"ими", "ыми", "его", "ого", "ему", "ому", "ее", "ие", "ые", "ое",
	"ей", "ий", "ый", "ой", "ем", "им", "ым", "ом", "их", "ых",
	"ую", "юю", "ая", "яя", "ою", "ею",
}

var participle2 = []string{"ивш", "ывш", "ующ"}

var reflexive = []string{"ся", "сь"}

var verb1 = []string{
	"ете", "йте", "ешь", "нно", "ла", "на", "ли", "ем", "ло",
	"но", "ет", "ют", "ны", "ть", "й", "л", "н",
}

var verb2 = []string{
	"ейте", "уйте", "ила", "ыла", "ена", "ите", "или", "ыли", "ило",
	"ыло", "ено", "ует", "уют", "ены", "ить", "ыть", "ишь",
	"ую", "ей", "уй", "ил", "ыл", "им", "ым", "ен", "ят", "ит", "ыт", "ю",
}

var noun = []string{
	"иями", "ями", "ами", "ией", "иям", "ием", "иях", "ев", "ов",
	"ие", "ье", "ьи", "ей", "ой", "ий", "ям", "ем", "ам",
	"ом", "ах", "ях", "ию", "ью", "ия", "ья", "и", "ы", "ь",
	"ю", "у", "о", "а", "е", "й",
}

var superlative = []string{"ейше", "ейш"}

var derivational = []string{"ость", "ост"}

const vowels = "аеиоуыэюяё"

// regions holds the RV/R1/R2 byte offsets of a word. RV starts after the
// first vowel, R1 after the first consonant that follows a vowel, R2 is R1
// applied again starting from R1.
type regions struct {
	rv, r1, r2 int
}

func findRegions(word string) regions {
	var reg regions
	runes := []rune(word)

	for i, r := range runes {
		if isVowel(r) {
			reg.rv = i + 1
			break
		}
	}

	foundVowel := false
	for i, r := range runes {
		if isVowel(r) {
			foundVowel = true
		} else if foundVowel {
			reg.r1 = i + 1
			break
		}
	}

	foundVowel = false
	for i := reg.r1; i < len(runes); i++ {
		if isVowel(runes[i]) {
			foundVowel = true
		} else if foundVowel {
			reg.r2 = i + 1
			break
		}
	}

	// Cyrillic letters are two UTF-8 bytes, so rune offsets double into
	// byte offsets.
	reg.rv *= 2
	reg.r1 *= 2
	reg.r2 *= 2
	return reg
}

func isVowel(r rune) bool {
	return strings.ContainsRune(vowels, r)
}

func trimSuffix(word, suffix string) string {
	return word[:len(word)-len(suffix)]
}

// Stem returns the stem of a lowercase Russian word. Words shorter than four
// bytes come back unchanged, as do words with no matching suffixes (Latin
// text falls through untouched).
func Stem(word string) string {
	if len(word) < 4 {
		return word
	}
	reg := findRegions(word)

	result := step1(word, reg)
	result = step2(result, reg)
	result = step3(result, reg)
	result = step4(result, reg)
	return result
}

func step1(word string, reg regions) string {
	result := word

	for _, suffix := range perfectiveGerund2 {
		if strings.HasSuffix(result, suffix) && len(result)-len(suffix) >= reg.rv {
			return trimSuffix(result, suffix)
		}
	}

	// Group 1 gerunds need a preceding "а" or "я".
	for _, suffix := range perfectiveGerund1 {
		for _, pre := range []string{"а", "я"} {
			test := pre + suffix
			if strings.HasSuffix(result, test) && len(result)-len(test) >= reg.rv {
				return trimSuffix(result, suffix)
			}
		}
	}

	for _, suffix := range reflexive {
		if strings.HasSuffix(result, suffix) && len(result)-len(suffix) >= reg.rv {
			result = trimSuffix(result, suffix)
			break
		}
	}

	foundAdj := false
	for _, suffix := range adjective {
		if strings.HasSuffix(result, suffix) && len(result)-len(suffix) >= reg.rv {
			result = trimSuffix(result, suffix)
			foundAdj = true
			for _, pSuffix := range participle2 {
				if strings.HasSuffix(result, pSuffix) {
					result = trimSuffix(result, pSuffix)
					break
				}
			}
			break
		}
	}

	if !foundAdj {
		found := false
		for _, suffix := range verb2 {
			if strings.HasSuffix(result, suffix) && len(result)-len(suffix) >= reg.rv {
				result = trimSuffix(result, suffix)
				found = true
				break
			}
		}
		if !found {
			// Group 1 verbs need a preceding "а" or "я".
			for _, suffix := range verb1 {
				if (strings.HasSuffix(result, "а"+suffix) || strings.HasSuffix(result, "я"+suffix)) &&
					len(result)-len(suffix)-2 >= reg.rv {
					result = trimSuffix(result, suffix)
					found = true
					break
				}
			}
		}
		if !found {
			for _, suffix := range noun {
				if strings.HasSuffix(result, suffix) && len(result)-len(suffix) >= reg.rv {
					result = trimSuffix(result, suffix)
					break
				}
			}
		}
	}

	return result
}

func step2(word string, reg regions) string {
	if strings.HasSuffix(word, "и") && len(word)-2 >= reg.rv {
		return trimSuffix(word, "и")
	}
	return word
}

func step3(word string, reg regions) string {
	for _, suffix := range derivational {
		if strings.HasSuffix(word, suffix) && len(word)-len(suffix) >= reg.r2 {
			return trimSuffix(word, suffix)
		}
	}
	return word
}

func step4(word string, reg regions) string {
	result := word
	for _, suffix := range superlative {
		if strings.HasSuffix(result, suffix) && len(result)-len(suffix) >= reg.rv {
			result = trimSuffix(result, suffix)
			break
		}
	}
	if strings.HasSuffix(result, "нн") && len(result)-2 >= reg.rv {
		result = trimSuffix(result, "н")
	} else if strings.HasSuffix(result, "ь") && len(result)-2 >= reg.rv {
		result = trimSuffix(result, "ь")
	}
	return result
}
