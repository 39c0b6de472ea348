package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const arisXML = `<?xml version="1.0"?>
<aris version="2">
	<lastUpdate>1660199401</lastUpdate>
	<partition name="gpu">
		<running_jobs>5</running_jobs>
		<state_up>up</state_up>
		<note/>
	</partition>
	<partition name="cpu" queue="long">
		<running_jobs>59</running_jobs>
		<state_up>down</state_up>
		<note>drained for maintenance</note>
	</partition>
</aris>`

func TestExtractOutline(t *testing.T) {
	out, err := ExtractOutline([]byte(arisXML), 0, 0)
	require.NoError(t, err)

	var paths []string
	for _, p := range out.Paths {
		paths = append(paths, p.XPath)
	}
	assert.Equal(t, []string{
		"/aris",
		"/aris/lastUpdate",
		"/aris/partition",
		"/aris/partition/running_jobs",
		"/aris/partition/state_up",
		"/aris/partition/note",
	}, paths)
	assert.Equal(t, 3, out.MaxDepth)
	assert.False(t, out.Truncated)

	root := out.Paths[0]
	assert.Equal(t, 1, root.Count)
	assert.Equal(t, []string{"version"}, root.Attributes)
	assert.False(t, root.Leaf)

	partition := out.Paths[2]
	assert.Equal(t, 2, partition.Count)
	assert.Equal(t, []string{"name", "queue"}, partition.Attributes)

	jobs := out.Paths[3]
	assert.Equal(t, 2, jobs.Count)
	assert.True(t, jobs.Leaf)
	assert.Equal(t, "5", jobs.Sample)

	note := out.Paths[5]
	assert.True(t, note.Leaf)
	assert.Equal(t, "drained for maintenance", note.Sample, "empty occurrences do not set the sample")
}

func TestExtractOutline_Limits(t *testing.T) {
	out, err := ExtractOutline([]byte(arisXML), 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, out.MaxDepth)
	assert.True(t, out.Truncated)
	assert.Len(t, out.Paths, 3)

	out, err = ExtractOutline([]byte(arisXML), 0, 2)
	require.NoError(t, err)
	assert.Len(t, out.Paths, 2)
	assert.True(t, out.Truncated)
}

func TestExtractOutline_Namespaces(t *testing.T) {
	doc := `<feed xmlns="http://www.w3.org/2005/Atom" xmlns:x="urn:x"><x:entry><title>t</title></x:entry></feed>`
	out, err := ExtractOutline([]byte(doc), 0, 0)
	require.NoError(t, err)
	require.Len(t, out.Paths, 3)
	assert.Equal(t, "/feed/urn:x:entry/title", out.Paths[2].XPath)
}

func TestExtractOutline_Errors(t *testing.T) {
	_, err := ExtractOutline([]byte(""), 0, 0)
	assert.Error(t, err)

	_, err = ExtractOutline([]byte("<aris><partition>"), 0, 0)
	assert.Error(t, err)
}
