package middleware

import (
	"net/http"
	"strings"
)

var crawlerTokens = []string{
	"googlebot", "bingbot", "duckduckbot", "yandex", "baiduspider",
	"facebookexternalhit", "twitterbot", "linkedinbot", "whatsapp",
	"slackbot", "applebot", "bot/", "crawler", "spider",
}

// Crawler flags requests from known bots. Pages render every revealable
// section visible for them since they never scroll.
func Crawler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := WithCrawler(r.Context(), IsCrawlerAgent(r.UserAgent()))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IsCrawlerAgent matches a User-Agent against known bot tokens.
func IsCrawlerAgent(ua string) bool {
	ua = strings.ToLower(ua)
	if ua == "" {
		return false
	}
	for _, t := range crawlerTokens {
		if strings.Contains(ua, t) {
			return true
		}
	}
	return false
}
