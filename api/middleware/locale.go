package middleware

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"

	"github.com/angelmondragon/hubs-storefront/pkg/logger"
)

const (
	LocaleQueryParam = "locale"
	LocaleCookieName = "sf_locale"
)

// LocaleNegotiator picks one of the supported storefront locales for a request.
type LocaleNegotiator struct {
	supported []string
	matcher   language.Matcher
}

// NewLocaleNegotiator orders the default locale first so it wins when nothing
// else matches. Unparseable locales are skipped.
func NewLocaleNegotiator(defaultLocale string, supported []string) *LocaleNegotiator {
	ordered := make([]string, 0, len(supported)+1)
	seen := map[string]bool{}
	for _, raw := range append([]string{defaultLocale}, supported...) {
		loc := strings.ToLower(strings.TrimSpace(raw))
		if loc == "" || seen[loc] {
			continue
		}
		if _, err := language.Parse(loc); err != nil {
			continue
		}
		seen[loc] = true
		ordered = append(ordered, loc)
	}
	if len(ordered) == 0 {
		ordered = []string{"en"}
	}

	tags := make([]language.Tag, len(ordered))
	for i, loc := range ordered {
		tags[i] = language.MustParse(loc)
	}
	return &LocaleNegotiator{supported: ordered, matcher: language.NewMatcher(tags)}
}

// Negotiate checks the query parameter, then the locale cookie, then
// Accept-Language.
func (n *LocaleNegotiator) Negotiate(r *http.Request) string {
	candidates := make([]string, 0, 3)
	if q := strings.TrimSpace(r.URL.Query().Get(LocaleQueryParam)); q != "" {
		candidates = append(candidates, q)
	}
	if c, err := r.Cookie(LocaleCookieName); err == nil && strings.TrimSpace(c.Value) != "" {
		candidates = append(candidates, c.Value)
	}
	if h := r.Header.Get("Accept-Language"); h != "" {
		candidates = append(candidates, h)
	}
	for _, candidate := range candidates {
		if loc, ok := n.exact(candidate); ok {
			return loc
		}
	}
	_, idx := language.MatchStrings(n.matcher, candidates...)
	if idx < 0 || idx >= len(n.supported) {
		return n.supported[0]
	}
	return n.supported[idx]
}

func (n *LocaleNegotiator) exact(candidate string) (string, bool) {
	candidate = strings.ToLower(strings.TrimSpace(candidate))
	for _, loc := range n.supported {
		if candidate == loc {
			return loc, true
		}
	}
	return "", false
}

// Default is the locale used when negotiation has nothing to go on.
func (n *LocaleNegotiator) Default() string {
	return n.supported[0]
}

// Locale resolves the request locale and stores it in the context.
func Locale(negotiator *LocaleNegotiator, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			loc := negotiator.Negotiate(r)
			ctx := WithLocale(r.Context(), loc)
			if logg != nil {
				ctx = logg.WithLocale(ctx, loc)
			}
			w.Header().Set("Content-Language", loc)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
