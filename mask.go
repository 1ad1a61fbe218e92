package arbor

import (
	"strings"
	"unicode"
)

// Masker applies content-aware masking.
type Masker interface {
	Mask(value string) string
}

// MaskerFunc adapts a function to a Masker.
type MaskerFunc func(string) string

func (f MaskerFunc) Mask(value string) string { return f(value) }

var builtinMaskers = map[MaskType]Masker{
	MaskSSN:   MaskerFunc(maskSSN),
	MaskEmail: MaskerFunc(maskEmail),
	MaskPhone: MaskerFunc(maskPhone),
	MaskCard:  MaskerFunc(maskCard),
	MaskIP:    MaskerFunc(maskIP),
	MaskUUID:  MaskerFunc(maskUUID),
	MaskIBAN:  MaskerFunc(maskIBAN),
	MaskName:  MaskerFunc(maskName),
}

// MaskerFor returns the builtin masker for mt.
func MaskerFor(mt MaskType) (Masker, bool) {
	m, ok := builtinMaskers[mt]
	return m, ok
}

func stars(s string) string { return strings.Repeat("*", len(s)) }

// lastDigits returns the last four digits of s, or false if s has fewer.
func lastDigits(s string) (string, int, bool) {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	d := b.String()
	if len(d) < 4 {
		return "", len(d), false
	}
	return d[len(d)-4:], len(d), true
}

func maskSSN(v string) string {
	last, _, ok := lastDigits(v)
	if !ok {
		return stars(v)
	}
	return "***-**-" + last
}

func maskEmail(v string) string {
	at := strings.LastIndex(v, "@")
	if at < 1 {
		return stars(v)
	}
	return v[:1] + "***" + v[at:]
}

func maskPhone(v string) string {
	last, n, ok := lastDigits(v)
	switch {
	case !ok:
		return stars(v)
	case strings.HasPrefix(v, "(") && n >= 10:
		return "(***) ***-" + last
	case n >= 10:
		return "***-***-" + last
	default:
		return "***-" + last
	}
}

func maskCard(v string) string {
	last, n, ok := lastDigits(v)
	if !ok {
		return stars(v)
	}
	sep := ""
	switch {
	case strings.Contains(v, " "):
		sep = " "
	case strings.Contains(v, "-"):
		sep = "-"
	default:
		return strings.Repeat("*", n-4) + last
	}
	groups := make([]string, (n-4+3)/4, (n-4+3)/4+1)
	for i := range groups {
		groups[i] = "****"
	}
	return strings.Join(append(groups, last), sep)
}

func maskIP(v string) string {
	if parts := strings.Split(v, "."); len(parts) == 4 {
		return parts[0] + "." + parts[1] + ".xxx.xxx"
	}
	if !strings.Contains(v, ":") {
		return stars(v)
	}
	groups := expandIPv6(v)
	if len(groups) != 8 {
		return stars(v)
	}
	return strings.Join(groups[:4], ":") + ":xxxx:xxxx:xxxx:xxxx"
}

// expandIPv6 splits an address into its groups, expanding "::".
func expandIPv6(v string) []string {
	head, tail, found := strings.Cut(v, "::")
	if !found {
		return strings.Split(v, ":")
	}
	if strings.Contains(tail, "::") {
		return nil
	}
	var left, right []string
	if head != "" {
		left = strings.Split(head, ":")
	}
	if tail != "" {
		right = strings.Split(tail, ":")
	}
	missing := 8 - len(left) - len(right)
	if missing < 0 {
		return nil
	}
	out := append([]string{}, left...)
	for i := 0; i < missing; i++ {
		out = append(out, "0000")
	}
	return append(out, right...)
}

func maskUUID(v string) string {
	parts := strings.Split(v, "-")
	if len(parts) != 5 {
		return stars(v)
	}
	return parts[0] + "-****-****-****-************"
}

func maskIBAN(v string) string {
	if len(v) <= 8 {
		return stars(v)
	}
	return v[:4] + strings.Repeat("*", len(v)-8) + v[len(v)-4:]
}

func maskName(v string) string {
	words := strings.Fields(v)
	for i, w := range words {
		r := []rune(w)
		words[i] = string(r[0]) + strings.Repeat("*", len(r)-1)
	}
	return strings.Join(words, " ")
}
