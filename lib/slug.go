package lib

import "strings"

// translit maps Cyrillic letters onto Latin sequences so Russian titles
// produce readable slugs. Hard and soft signs vanish without a hyphen.
var translit = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "e",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "i", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "kh", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "shch",
	'ъ': "", 'ы': "y", 'ь': "", 'э': "e", 'ю': "yu", 'я': "ya",
}

// Slugify lowercases a title and reduces it to hyphen-separated
// alphanumerics, transliterating Cyrillic, for URL slugs derived from
// product titles. Returns "" when nothing sluggable remains; callers must
// treat that as underivable rather than store an empty slug.
func Slugify(title string) string {
	lowered := strings.ToLower(strings.TrimSpace(title))

	var sb strings.Builder
	lastHyphen := true // suppress leading hyphens
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastHyphen = false
		default:
			if seq, ok := translit[r]; ok {
				if seq != "" {
					sb.WriteString(seq)
					lastHyphen = false
				}
				continue
			}
			if !lastHyphen {
				sb.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimSuffix(sb.String(), "-")
}
