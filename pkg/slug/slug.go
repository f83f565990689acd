// Package slug builds URL-safe names for stored assets
package slug

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// cyrillicToLatin maps Cyrillic characters to Latin transliteration
var cyrillicToLatin = map[rune]string{
	'а': "a", 'А': "a",
	'б': "b", 'Б': "b",
	'в': "v", 'В': "v",
	'г': "g", 'Г': "g",
	'д': "d", 'Д': "d",
	'е': "e", 'Е': "e",
	'ё': "e", 'Ё': "e",
	'ж': "zh", 'Ж': "zh",
	'з': "z", 'З': "z",
	'и': "i", 'И': "i",
	'й': "y", 'Й': "y",
	'к': "k", 'К': "k",
	'л': "l", 'Л': "l",
	'м': "m", 'М': "m",
	'н': "n", 'Н': "n",
	'о': "o", 'О': "o",
	'п': "p", 'П': "p",
	'р': "r", 'Р': "r",
	'с': "s", 'С': "s",
	'т': "t", 'Т': "t",
	'у': "u", 'У': "u",
	'ф': "f", 'Ф': "f",
	'х': "h", 'Х': "h",
	'ц': "c", 'Ц': "c",
	'ч': "ch", 'Ч': "ch",
	'ш': "sh", 'Ш': "sh",
	'щ': "sh", 'Щ': "sh",
	'ъ': "", 'Ъ': "",
	'ы': "y", 'Ы': "y",
	'ь': "", 'Ь': "",
	'э': "e", 'Э': "e",
	'ю': "iu", 'Ю': "iu",
	'я': "ia", 'Я': "ia",
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// maxLength caps the slug part of a storage key
const maxLength = 48

// FromFileName turns a file name into a key-safe slug: the extension is
// dropped, Cyrillic is transliterated and every other run of characters
// outside [a-z0-9] becomes a single dash.
// Example: "Логотип Acme (final).PNG" -> "logotip-acme-final"
func FromFileName(name string) string {
	name = strings.TrimSuffix(name, filepath.Ext(name))

	var b strings.Builder
	for _, r := range name {
		if latin, ok := cyrillicToLatin[r]; ok {
			b.WriteString(latin)
		} else {
			b.WriteRune(r)
		}
	}

	slug := nonSlugChars.ReplaceAllString(strings.ToLower(b.String()), "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > maxLength {
		slug = strings.TrimRight(slug[:maxLength], "-")
	}
	return slug
}

// AssetKey builds "<slug>-<id><ext>", or "<id><ext>" when the file name has
// nothing left to slug
func AssetKey(fileName, id, ext string) string {
	if slug := FromFileName(fileName); slug != "" {
		return fmt.Sprintf("%s-%s%s", slug, id, ext)
	}
	return id + ext
}
