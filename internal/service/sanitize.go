package service

import (
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	bodyPolicyOnce sync.Once
	bodyPolicy     *bluemonday.Policy

	slugPattern = regexp.MustCompile(`[^A-Za-z0-9]+`)
)

// sanitizeBody strips markup a post body must not carry. Post bodies arrive
// as the inner HTML of the editable region.
func sanitizeBody(raw string) string {
	bodyPolicyOnce.Do(func() {
		bodyPolicy = bluemonday.UGCPolicy()
	})
	return strings.TrimSpace(bodyPolicy.Sanitize(raw))
}

// slugify turns a title into the lower-case dash separated url of a post.
func slugify(title string) string {
	s := slugPattern.ReplaceAllString(title, "-")
	return strings.ToLower(strings.Trim(s, "-"))
}
