package handler

import (
	"net/http"

	"github.com/basel-ax/imagegate/internal/domain"
)

// GeneratePath is where the generation endpoint is mounted
const GeneratePath = "/api/generate-meme"

// NewRouter wires every route served by imagegate
func NewRouter(svc domain.ImageGenerationService) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle(GeneratePath, NewGenerateHandler(svc))
	mux.HandleFunc("GET /healthz", Health)
	return mux
}
