package apidoc

import (
	"encoding/json"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type uiURL struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

// UIHandler serves the interactive documentation UI under /swagger/, with a selector
// listing every registry document. Mount it on a "/swagger/" prefix.
func UIHandler(r *Registry) http.Handler {
	urls := make([]uiURL, 0, len(r.keys))
	for _, key := range r.keys {
		info, _ := r.Info(key)
		urls = append(urls, uiURL{URL: JSONPath(key), Name: info.Title + " " + info.Version})
	}
	urlsJS, _ := json.Marshal(urls)

	first := r.keys[0]
	return httpSwagger.Handler(
		httpSwagger.URL(JSONPath(first)),
		httpSwagger.InstanceName(first),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.Layout(httpSwagger.StandaloneLayout),
		httpSwagger.UIConfig(map[string]string{
			"urls":                    string(urlsJS),
			"defaultModelExpandDepth": "2",
			"defaultModelRendering":   `"example"`,
			"tryItOutEnabled":         "true",
			// highlighting stalls rendering of large example bodies
			"syntaxHighlight":        "false",
			"displayRequestDuration": "true",
		}),
	)
}
