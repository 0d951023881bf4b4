package collection

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

var ErrIndexTypeNotImplemented = errors.New("collection: index type not wired to an ingester yet")

// VectorIngester is implemented by each index subsystem (dense, sparse,
// tf_idf) that actually stores a decoded vector. Only the sparse path is
// this module's concern; dense and tf_idf are documented seams.
type VectorIngester interface {
	Ingest(collectionName string, dto CreateVectorDto) error
}

// Handler is the HTTP ingestion boundary: decode the tagged DTO, hand it
// to the ingester for the collection named in the path.
type Handler struct {
	Ingester VectorIngester
}

// Router builds the gorilla/mux router exposing the ingestion boundary.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/collections/{name}/vectors", h.createVector).Methods(http.MethodPost)
	return r
}

func (h *Handler) createVector(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	var dto CreateVectorDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Ingester.Ingest(name, dto); err != nil {
		if errors.Is(err, ErrIndexTypeNotImplemented) {
			http.Error(w, err.Error(), http.StatusNotImplemented)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
}
