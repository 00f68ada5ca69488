package hostname

import "golang.org/x/net/idna"

// MaxURLLength is the longest URL, after ASCII conversion of its host, that
// the platform backend accepts.
const MaxURLLength = 4096

// lookup converts domains the way URL hosts are resolved: UTS-46 mapping,
// no STD3 ASCII deny list, no hyphen placement rules, DNS lengths verified.
var lookup = idna.New(
	idna.MapForLookup(),
	idna.Transitional(false),
	idna.StrictDomainName(false),
	idna.CheckHyphens(false),
	idna.VerifyDNSLength(true),
)

// ToASCII converts domain to its ASCII (xn--) form.
func ToASCII(domain string) (string, error) {
	return lookup.ToASCII(domain)
}

// LengthOK reports whether url stays under MaxURLLength once domain is
// replaced by asciiDomain. URLs without a scheme are measured as if
// "https://" were prepended.
func LengthOK(url, domain, asciiDomain string, hasScheme bool) bool {
	n := 0
	if !hasScheme {
		n = len("https://")
	}
	return n+len(url)-len(domain)+len(asciiDomain) < MaxURLLength
}

// ValidPunycode reports whether domain converts cleanly and the resulting
// URL fits the length bound.
func ValidPunycode(url, domain string, hasScheme bool) bool {
	ascii, err := ToASCII(domain)
	if err != nil {
		return false
	}
	return LengthOK(url, domain, ascii, hasScheme)
}
