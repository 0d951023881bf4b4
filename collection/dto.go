package collection

import "encoding/json"

// MetadataFields is an opaque bag of per-vector metadata, round-tripped
// but never interpreted here (metadata filtering is out of scope).
type MetadataFields map[string]any

// CreateDenseVectorDto is the dense-vector creation request. Values.len()
// must equal the owning collection's configured dimension; that check is
// made by the caller, which knows the collection.
type CreateDenseVectorDto struct {
	ID       VectorID        `json:"id"`
	Values   []float32       `json:"values"`
	Metadata *MetadataFields `json:"metadata,omitempty"`
}

// CreateSparseVectorDto is the sparse-vector creation request. Its wire
// form carries parallel values/indices arrays; UnmarshalJSON zips them
// into ordered pairs.
type CreateSparseVectorDto struct {
	ID     VectorID     `json:"id"`
	Values []SparsePair `json:"-"`
}

// CreateTFIDFDocumentDto is the TF-IDF document creation request.
type CreateTFIDFDocumentDto struct {
	ID   VectorID `json:"id"`
	Text string   `json:"text"`
}

// UnmarshalJSON zips parallel values/indices arrays into ordered
// SparsePairs, preserving input order, rejecting unknown fields and
// length mismatches the way the parallel-array wire form implies.
func (d *CreateSparseVectorDto) UnmarshalJSON(data []byte) error {
	var wire struct {
		ID      VectorID  `json:"id"`
		Values  []float32 `json:"values"`
		Indices []uint32  `json:"indices"`
	}
	dec := json.NewDecoder(bytesReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&wire); err != nil {
		return err
	}
	if len(wire.Values) != len(wire.Indices) {
		return errLengthMismatch
	}

	pairs := make([]SparsePair, len(wire.Indices))
	for i, idx := range wire.Indices {
		pairs[i] = SparsePair{Index: idx, Value: wire.Values[i]}
	}

	d.ID = wire.ID
	d.Values = pairs
	return nil
}

// MarshalJSON emits the DTO back in its zipped (non-parallel-array) form,
// since the on-the-wire parallel-array shape is only a decode convenience.
func (d CreateSparseVectorDto) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID     VectorID     `json:"id"`
		Values []SparsePair `json:"values"`
	}{d.ID, d.Values})
}

// CreateVectorDto is the index_type-tagged union of the three creation
// DTOs.
type CreateVectorDto struct {
	Dense *CreateDenseVectorDto
	Sparse *CreateSparseVectorDto
	TFIDF  *CreateTFIDFDocumentDto
}

// UnmarshalJSON decodes index_type and routes to the matching DTO, the Go
// equivalent of serde's internally-tagged enum.
func (d *CreateVectorDto) UnmarshalJSON(data []byte) error {
	var tagged struct {
		IndexType string `json:"index_type"`
	}
	if err := json.Unmarshal(data, &tagged); err != nil {
		return err
	}
	switch tagged.IndexType {
	case "dense":
		var dense CreateDenseVectorDto
		if err := json.Unmarshal(data, &dense); err != nil {
			return err
		}
		d.Dense = &dense
	case "sparse":
		// index_type belongs to the union, not to the sparse DTO, whose
		// decoder rejects unknown fields; strip it before handing over.
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(data, &fields); err != nil {
			return err
		}
		delete(fields, "index_type")
		inner, err := json.Marshal(fields)
		if err != nil {
			return err
		}
		var sparse CreateSparseVectorDto
		if err := sparse.UnmarshalJSON(inner); err != nil {
			return err
		}
		d.Sparse = &sparse
	case "tf_idf":
		var tfidf CreateTFIDFDocumentDto
		if err := json.Unmarshal(data, &tfidf); err != nil {
			return err
		}
		d.TFIDF = &tfidf
	default:
		return errUnknownIndexType
	}
	return nil
}

// UpdateVectorDto updates a dense vector's values.
type UpdateVectorDto struct {
	Values []float32 `json:"values"`
}

// SimilarVector is one entry of a similarity search response.
type SimilarVector struct {
	ID    VectorID `json:"id"`
	Score float32  `json:"score"`
}
