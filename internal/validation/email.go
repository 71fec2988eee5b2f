package validation

import "strings"

var (
	gmailDomains   = map[string]bool{"gmail.com": true, "googlemail.com": true}
	icloudDomains  = map[string]bool{"icloud.com": true, "me.com": true, "mac.com": true}
	outlookDomains = map[string]bool{
		"hotmail.at": true, "hotmail.be": true, "hotmail.ca": true, "hotmail.co.uk": true,
		"hotmail.com": true, "hotmail.de": true, "hotmail.es": true, "hotmail.fr": true,
		"hotmail.it": true, "live.ca": true, "live.co.uk": true, "live.com": true,
		"live.de": true, "live.fr": true, "live.it": true, "msn.com": true,
		"outlook.com": true, "outlook.de": true, "outlook.fr": true, "passport.com": true,
	}
	yahooDomains = map[string]bool{
		"rocketmail.com": true, "yahoo.ca": true, "yahoo.co.uk": true, "yahoo.com": true,
		"yahoo.de": true, "yahoo.fr": true, "yahoo.in": true, "yahoo.it": true, "ymail.com": true,
	}
)

// NormalizeEmail folds an address so that equivalent spellings compare
// equal: everything is lower-cased, provider sub-addresses are dropped
// (`+tag`, or `-tag` for Yahoo) and googlemail.com becomes gmail.com.
// Dots in Gmail local parts are kept. Input without an "@" is only
// trimmed and lower-cased.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return email
	}
	local, domain := email[:at], email[at+1:]

	switch {
	case gmailDomains[domain]:
		local = cutAt(local, "+")
		domain = "gmail.com"
	case icloudDomains[domain], outlookDomains[domain]:
		local = cutAt(local, "+")
	case yahooDomains[domain]:
		local = cutAt(local, "-")
	}
	if local == "" {
		return email
	}
	return local + "@" + domain
}

func cutAt(s, sep string) string {
	before, _, _ := strings.Cut(s, sep)
	return before
}
