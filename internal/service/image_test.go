package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDataURL(t *testing.T) {
	contentType, data, err := decodeDataURL("data:image/png;base64,aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)
	assert.Equal(t, []byte("hello"), data)
}

func TestDecodeDataURLBareBase64DefaultsToJPEG(t *testing.T) {
	contentType, data, err := decodeDataURL("aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", contentType)
	assert.Equal(t, []byte("hello"), data)
}

func TestDecodeDataURLMalformed(t *testing.T) {
	_, _, err := decodeDataURL("data:image/jpeg;base64")
	assert.Error(t, err)

	_, _, err = decodeDataURL("data:image/jpeg;base64,###")
	assert.Error(t, err)
}
