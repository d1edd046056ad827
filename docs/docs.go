// Package docs serves the OpenAPI description consumed by the swagger
// UI mounted under /swagger/.
package docs

import (
	_ "embed"
	"net/http"
)

//go:embed swagger.json
var openAPISpec []byte

func ServeOpenAPISpec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(openAPISpec)
}
