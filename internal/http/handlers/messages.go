// Package handlers – response message localization.
//
// The service predates this rewrite as a Dutch deployment, so success
// messages are served in Dutch or English depending on the request's
// Accept-Language header. Matching uses golang.org/x/text; anything that is
// not Dutch falls back to English.
package handlers

import (
	"golang.org/x/text/language"

	"github.com/tbourn/go-issues-backend/internal/domain"
)

// supportedLangs lists the languages we can answer in. The first entry is
// the fallback.
var supportedLangs = []language.Tag{
	language.English,
	language.Dutch,
}

var langMatcher = language.NewMatcher(supportedLangs)

// uploadMessages maps language -> category -> success message.
var uploadMessages = map[language.Tag]map[domain.Category]string{
	language.English: {
		domain.CategoryPhotos: "Photos uploaded successfully",
		domain.CategoryFiles:  "Files uploaded successfully",
	},
	language.Dutch: {
		domain.CategoryPhotos: "Foto's succesvol geüpload",
		domain.CategoryFiles:  "Bestanden succesvol geüpload",
	},
}

// uploadSuccessMessage picks the upload confirmation for the request's
// Accept-Language value.
func uploadSuccessMessage(acceptLanguage string, category domain.Category) string {
	tag, _ := language.MatchStrings(langMatcher, acceptLanguage)
	// Matcher may return a regional variant; reduce to a supported base.
	base := language.English
	if b, _ := tag.Base(); b.String() == "nl" {
		base = language.Dutch
	}
	return uploadMessages[base][category]
}
