package loader_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/umlconf/internal/codegen/loader"
	"github.com/Alia5/umlconf/internal/codegen/model"
	umltest "github.com/Alia5/umlconf/internal/testing"
)

func TestLoadBTSModel(t *testing.T) {
	m, stats, err := loader.Load(strings.NewReader(umltest.BTSModelXML))
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Classes)
	assert.Equal(t, 1, stats.Aggregations)
	assert.Empty(t, stats.Ignored)

	entities := m.Entities()
	require.Len(t, entities, 2)

	bts := entities[0]
	assert.Equal(t, "BTS", bts.Name)
	assert.True(t, bts.IsRoot)
	assert.Equal(t, "Base transceiver station", bts.Documentation)
	assert.Equal(t, []model.Attribute{
		{Name: "frequency", Type: "int"},
		{Name: "id", Type: "string"},
	}, bts.Attributes)

	antenna := entities[1]
	assert.Equal(t, "Antenna", antenna.Name)
	assert.False(t, antenna.IsRoot)
	assert.Equal(t, "", antenna.Documentation)
	assert.Equal(t, []model.Attribute{{Name: "height", Type: "float"}}, antenna.Attributes)

	rels := m.Relationships()
	require.Len(t, rels, 1)
	assert.Equal(t, model.Relationship{
		Source:             "Antenna",
		Target:             "BTS",
		SourceMultiplicity: "1..10",
		TargetMultiplicity: "1",
	}, rels[0])
}

func TestLoadDefaultsAndIgnoredElements(t *testing.T) {
	doc := `<Model>
  <Note text="skip me"/>
  <Class name="A" isRoot="TRUE">
    <Attribute name="x"/>
    <Comment/>
    <Attribute type="y"/>
  </Class>
  <Aggregation source="A"/>
</Model>`

	m, stats, err := loader.Load(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"Note"}, stats.Ignored)

	a, ok := m.Entity("A")
	require.True(t, ok)
	assert.False(t, a.IsRoot, "only the exact string \"true\" marks a root")
	assert.Equal(t, []model.Attribute{{Name: "x", Type: ""}, {Name: "", Type: "y"}}, a.Attributes)

	rels := m.Relationships()
	require.Len(t, rels, 1)
	assert.Equal(t, "", rels[0].Target)
	assert.Equal(t, model.Multiplicity(""), rels[0].SourceMultiplicity)
}

func TestLoadClassWithoutAttributes(t *testing.T) {
	m, _, err := loader.Load(strings.NewReader(`<Model><Class name="Empty"/></Model>`))
	require.NoError(t, err)
	e, ok := m.Entity("Empty")
	require.True(t, ok)
	assert.NotNil(t, e.Attributes)
	assert.Empty(t, e.Attributes)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{name: "empty document", doc: "", wantErr: model.ErrMalformedInput},
		{name: "only whitespace", doc: "  \n ", wantErr: model.ErrMalformedInput},
		{name: "unclosed element", doc: "<Model><Class name=\"A\">", wantErr: model.ErrMalformedInput},
		{name: "mismatched tags", doc: "<Model></Other>", wantErr: model.ErrMalformedInput},
		{name: "second document element", doc: "<Model/><Model/>", wantErr: model.ErrMalformedInput},
		{name: "trailing text", doc: "<Model/>junk", wantErr: model.ErrMalformedInput},
		{name: "unknown encoding", doc: `<?xml version="1.0" encoding="x-unknown"?><Model/>`, wantErr: model.ErrMalformedInput},
		{name: "class without name", doc: `<Model><Class name="A"/><Class isRoot="true"/></Model>`, wantErr: model.ErrMissingName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _, err := loader.Load(strings.NewReader(tt.doc))
			assert.Nil(t, m)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadMissingNameReportsIndex(t *testing.T) {
	_, _, err := loader.Load(strings.NewReader(`<Model><Class name="A"/><Class/></Model>`))
	var mne *model.MissingNameError
	require.True(t, errors.As(err, &mne))
	assert.Equal(t, 1, mne.Index)
}

func TestLoadTrailingCommentIsAccepted(t *testing.T) {
	_, _, err := loader.Load(strings.NewReader("<Model/>\n<!-- generated -->\n"))
	assert.NoError(t, err)
}

func TestLoadDeclaredEncodings(t *testing.T) {
	tests := []struct {
		encoding string
		doc      string
		want     string
	}{
		{encoding: "ISO-8859-1", doc: "Caf\xe9 na\xefve", want: "Café naïve"},
		{encoding: "windows-1251", doc: "\xc1\xe0\xe7\xee\xe2\xe0\xff \xf1\xf2\xe0\xed\xf6\xe8\xff", want: "Базовая станция"},
	}

	for _, tt := range tests {
		t.Run(tt.encoding, func(t *testing.T) {
			doc := `<?xml version="1.0" encoding="` + tt.encoding + `"?>` +
				`<Model><Class name="BTS" isRoot="true" documentation="` + tt.doc + `"/></Model>`

			m, _, err := loader.Load(strings.NewReader(doc))
			require.NoError(t, err)

			root, err := m.Root()
			require.NoError(t, err)
			assert.Equal(t, "BTS", root.Name)
			assert.Equal(t, tt.want, root.Documentation)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.xml")
	require.NoError(t, os.WriteFile(path, []byte(umltest.BTSModelXML), 0o644))

	m, _, err := loader.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Len())

	_, _, err = loader.LoadFile(filepath.Join(dir, "missing.xml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
