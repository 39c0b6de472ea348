package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/xmlprobe/pkg/client"
)

func TestDocumentCache(t *testing.T) {
	c, err := NewDocumentCache(2, time.Minute)
	require.NoError(t, err)

	a := &client.Document{URL: "http://a", Body: []byte("<a/>")}
	b := &client.Document{URL: "http://b", Body: []byte("<b/>")}
	d := &client.Document{URL: "http://d", Body: []byte("<d/>")}

	c.Put(a.URL, a)
	c.Put(b.URL, b)

	got, ok := c.Get(a.URL)
	require.True(t, ok)
	assert.Equal(t, a, got)

	// a was used last, so b is evicted
	c.Put(d.URL, d)
	assert.Equal(t, 2, c.Len())
	_, ok = c.Get(b.URL)
	assert.False(t, ok)
}

func TestDocumentCache_Expiry(t *testing.T) {
	c, err := NewDocumentCache(4, 20*time.Millisecond)
	require.NoError(t, err)

	c.Put("http://a", &client.Document{URL: "http://a"})
	_, ok := c.Get("http://a")
	require.True(t, ok)

	assert.Eventually(t, func() bool {
		_, ok := c.Get("http://a")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestNewDocumentCache_Invalid(t *testing.T) {
	_, err := NewDocumentCache(0, time.Minute)
	assert.Error(t, err)

	_, err = NewDocumentCache(1, 0)
	assert.Error(t, err)
}
