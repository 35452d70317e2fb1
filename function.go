// Package function is the Cloud Functions entrypoint.
package function

import (
	"net/http"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"

	"github.com/pep299/update-simplifier/internal/transport/server"
)

func init() {
	functions.HTTP("SimplifyText", SimplifyText)
}

// SimplifyText serves every route of the service from one function.
func SimplifyText(w http.ResponseWriter, r *http.Request) {
	server.HandleRequest(w, r)
}
