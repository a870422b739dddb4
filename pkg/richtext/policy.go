package richtext

import (
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// policyCache keeps one bluemonday policy per whitelist signature. Policies are
// safe for concurrent Sanitize calls once built.
var policyCache sync.Map

// whitelistPolicy returns the policy for the feature set. A nil feature set
// means every feature is enabled.
func whitelistPolicy(features *FeatureSet, handlers *Handlers) *bluemonday.Policy {
	set := AllFeatures()
	if features != nil {
		set = *features
	}
	linkTypes := handlers.types(EntityLink, features)
	embedTypes := handlers.types(EntityEmbed, features)
	slices.Sort(linkTypes)
	slices.Sort(embedTypes)
	linkAttrs := handlers.editorAttributes(EntityLink, features)
	embedAttrs := handlers.editorAttributes(EntityEmbed, features)

	key := strings.Join([]string{
		set.Key(),
		strings.Join(linkTypes, ","),
		strings.Join(embedTypes, ","),
		strings.Join(linkAttrs, ","),
		strings.Join(embedAttrs, ","),
	}, "|")
	if cached, ok := policyCache.Load(key); ok {
		return cached.(*bluemonday.Policy)
	}
	policy := buildPolicy(set, linkTypes, embedTypes, linkAttrs, embedAttrs)
	actual, _ := policyCache.LoadOrStore(key, policy)
	return actual.(*bluemonday.Policy)
}

func buildPolicy(set FeatureSet, linkTypes, embedTypes, linkAttrs, embedAttrs []string) *bluemonday.Policy {
	policy := bluemonday.NewPolicy()
	policy.AllowElements(set.elements()...)

	if set.Has(FeatureLink) {
		policy.AllowStandardURLs()
		policy.AllowRelativeURLs(true)
		policy.AllowURLSchemes("http", "https", "mailto", "tel")
		policy.RequireNoFollowOnLinks(false)
		policy.AllowAttrs("href").OnElements("a")
	}
	if len(linkTypes) > 0 {
		policy.AllowAttrs("data-linktype").Matching(choiceRegexp(linkTypes)).OnElements("a")
		policy.AllowAttrs("data-id").OnElements("a")
		if len(linkAttrs) > 0 {
			policy.AllowAttrs(linkAttrs...).OnElements("a")
		}
	}
	if len(embedTypes) > 0 {
		policy.AllowAttrs("data-embedtype").Matching(choiceRegexp(embedTypes)).OnElements("img")
		policy.AllowAttrs("data-id", "data-format", "data-alt", "data-url").OnElements("img")
		if len(embedAttrs) > 0 {
			policy.AllowAttrs(embedAttrs...).OnElements("img")
		}
	}
	return policy
}

func choiceRegexp(values []string) *regexp.Regexp {
	quoted := make([]string, 0, len(values))
	for _, value := range values {
		quoted = append(quoted, regexp.QuoteMeta(value))
	}
	return regexp.MustCompile(`^(` + strings.Join(quoted, "|") + `)$`)
}
