package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsEmptyName(t *testing.T) {
	_, err := New(t.TempDir(), "", nil, DenseVectorOptions{}, SparseVectorOptions{}, TFIDFOptions{}, nil, Config{})
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestNewSucceedsAndComputesKey(t *testing.T) {
	c, err := New(t.TempDir(), "wiki", nil, DenseVectorOptions{Enabled: true, Dimension: 128}, SparseVectorOptions{Enabled: true}, TFIDFOptions{}, nil, Config{})
	require.NoError(t, err)

	// key must be stable across calls
	assert.Equal(t, c.Key(), c.Key())
}

func TestRegistryPersistGetDelete(t *testing.T) {
	dir := t.TempDir()
	reg, err := OpenRegistry(dir + "/registry.db")
	require.NoError(t, err)
	defer reg.Close()

	c, err := New(t.TempDir(), "wiki", nil, DenseVectorOptions{Enabled: true, Dimension: 128}, SparseVectorOptions{Enabled: true}, TFIDFOptions{}, nil, Config{})
	require.NoError(t, err)

	require.NoError(t, reg.Persist(c))

	got, err := reg.Get("wiki")
	require.NoError(t, err)
	assert.Equal(t, c.Name, got.Name)
	assert.Equal(t, c.DenseVector, got.DenseVector)

	require.NoError(t, reg.Delete("wiki"))
	_, err = reg.Get("wiki")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateSparseVectorDtoZipsIndicesAndValues(t *testing.T) {
	body := []byte(`{"id":"v1","indices":[3,17,200],"values":[0.5,1.5,2.5]}`)

	var dto CreateSparseVectorDto
	require.NoError(t, dto.UnmarshalJSON(body))

	assert.Equal(t, VectorID("v1"), dto.ID)
	assert.Equal(t, []SparsePair{
		{Index: 3, Value: 0.5},
		{Index: 17, Value: 1.5},
		{Index: 200, Value: 2.5},
	}, dto.Values)
}

func TestCreateSparseVectorDtoRejectsLengthMismatch(t *testing.T) {
	body := []byte(`{"id":"v1","indices":[3,17],"values":[0.5]}`)
	var dto CreateSparseVectorDto
	assert.Error(t, dto.UnmarshalJSON(body))
}

func TestCreateVectorDtoRoutesByIndexType(t *testing.T) {
	var dto CreateVectorDto
	require.NoError(t, dto.UnmarshalJSON([]byte(`{"index_type":"sparse","id":"v1","indices":[1],"values":[2.0]}`)))
	require.NotNil(t, dto.Sparse)
	assert.Nil(t, dto.Dense)
	assert.Nil(t, dto.TFIDF)
}
