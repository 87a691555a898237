package configtree_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/umlconf/internal/codegen/configtree"
	"github.com/Alia5/umlconf/internal/codegen/model"
	umltest "github.com/Alia5/umlconf/internal/testing"
)

func TestBuildBTS(t *testing.T) {
	m := umltest.LoadModel(t, umltest.BTSModelXML)

	tree, err := configtree.Build(m)
	require.NoError(t, err)

	assert.Equal(t, "BTS", tree.Name)
	assert.False(t, tree.IsLeaf())
	require.Len(t, tree.Children, 3)

	leaves := tree.Leaves()
	require.Len(t, leaves, 2)
	assert.Equal(t, "frequency", leaves[0].Name)
	assert.Equal(t, "int", leaves[0].Value)
	assert.Equal(t, "id", leaves[1].Name)
	assert.Equal(t, "string", leaves[1].Value)

	antenna, ok := tree.Find("Antenna")
	require.True(t, ok)
	assert.False(t, antenna.IsLeaf())
	require.Len(t, antenna.Children, 1)
	assert.Equal(t, "height", antenna.Children[0].Name)
	assert.Equal(t, "float", antenna.Children[0].Value)
}

func TestBuildUnresolvedSourceGivesEmptyContainer(t *testing.T) {
	m := umltest.NewModel(
		[]*model.Entity{{Name: "Root", IsRoot: true, Attributes: []model.Attribute{{Name: "a", Type: "int"}}}},
		model.Relationship{Source: "Ghost", Target: "Root", SourceMultiplicity: "1"},
	)

	tree, err := configtree.Build(m)
	require.NoError(t, err)

	ghost, ok := tree.Find("Ghost")
	require.True(t, ok)
	assert.False(t, ghost.IsLeaf())
	assert.Empty(t, ghost.Children)
}

func TestBuildOnlyDirectAggregationsOfRoot(t *testing.T) {
	m := umltest.NewModel(
		[]*model.Entity{
			{Name: "Site", IsRoot: true},
			{Name: "Rack", Attributes: []model.Attribute{{Name: "slots", Type: "int"}, {Name: "label", Type: "string"}}},
			{Name: "Card", Attributes: []model.Attribute{{Name: "serial", Type: "string"}}},
		},
		model.Relationship{Source: "Card", Target: "Rack", SourceMultiplicity: "0..8"},
		model.Relationship{Source: "Rack", Target: "Site", SourceMultiplicity: "1..*"},
		model.Relationship{Source: "Card", Target: "Site", SourceMultiplicity: "0..1"},
	)

	tree, err := configtree.Build(m)
	require.NoError(t, err)

	containers := tree.Containers()
	require.Len(t, containers, 2)
	assert.Equal(t, "Rack", containers[0].Name)
	assert.Equal(t, "Card", containers[1].Name)

	// depth is fixed at two levels: Rack holds its own leaves only
	for _, c := range containers[0].Children {
		assert.True(t, c.IsLeaf())
	}
	assert.Equal(t, "slots", containers[0].Children[0].Name)
	assert.Equal(t, "label", containers[0].Children[1].Name)
}

func TestBuildRootErrors(t *testing.T) {
	_, err := configtree.Build(umltest.NewModel([]*model.Entity{{Name: "A"}}))
	assert.ErrorIs(t, err, model.ErrNoRootEntity)

	_, err = configtree.Build(umltest.NewModel([]*model.Entity{{Name: "A", IsRoot: true}, {Name: "B", IsRoot: true}}))
	assert.ErrorIs(t, err, model.ErrMultipleRoots)
}

func TestEncodeXML(t *testing.T) {
	tree := configtree.Container("BTS",
		configtree.Leaf("frequency", "int"),
		configtree.Leaf("id", "string"),
		configtree.Container("Antenna", configtree.Leaf("height", "float")),
		configtree.Container("Ghost"),
	)

	var buf bytes.Buffer
	require.NoError(t, configtree.Encode(&buf, "xml", tree, "  "))

	expected := `<?xml version="1.0" encoding="UTF-8"?>
<BTS>
  <frequency>int</frequency>
  <id>string</id>
  <Antenna>
    <height>float</height>
  </Antenna>
  <Ghost></Ghost>
</BTS>
`
	assert.Equal(t, expected, buf.String())
}

func TestEncodeXMLCompactAndEscaping(t *testing.T) {
	tree := configtree.Container("Root", configtree.Leaf("map", "map<string,int>"))

	var buf bytes.Buffer
	require.NoError(t, configtree.EncodeXML(&buf, tree, ""))
	assert.Equal(t, `<?xml version="1.0" encoding="UTF-8"?>`+"\n"+`<Root><map>map&lt;string,int&gt;</map></Root>`+"\n", buf.String())
}

func TestEncodeXMLRejectsEmptyName(t *testing.T) {
	tree := configtree.Container("Root", configtree.Leaf("", "int"))
	var buf bytes.Buffer
	assert.Error(t, configtree.EncodeXML(&buf, tree, "  "))
}

func TestEncodeYAMLPreservesOrder(t *testing.T) {
	tree := configtree.Container("BTS",
		configtree.Leaf("zeta", "int"),
		configtree.Leaf("alpha", "true"),
		configtree.Container("Antenna", configtree.Leaf("height", "float")),
		configtree.Container("Ghost"),
	)

	var buf bytes.Buffer
	require.NoError(t, configtree.Encode(&buf, "yaml", tree, "  "))

	expected := `BTS:
  zeta: int
  alpha: "true"
  Antenna:
    height: float
  Ghost: {}
`
	assert.Equal(t, expected, buf.String())
}

func TestEncodeJSONPreservesOrder(t *testing.T) {
	tree := configtree.Container("BTS",
		configtree.Leaf("zeta", "int"),
		configtree.Leaf("alpha", "string"),
		configtree.Container("Antenna", configtree.Leaf("height", "float")),
	)

	var buf bytes.Buffer
	require.NoError(t, configtree.Encode(&buf, "json", tree, ""))
	assert.Equal(t, `{"BTS":{"zeta":"int","alpha":"string","Antenna":{"height":"float"}}}`+"\n", buf.String())

	buf.Reset()
	require.NoError(t, configtree.Encode(&buf, "json", tree, "  "))
	assert.Contains(t, buf.String(), "\n  \"BTS\": {\n    \"zeta\": \"int\",")
}

func TestEncodeUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := configtree.Encode(&buf, "ini", configtree.Container("X"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config format")
	assert.Equal(t, []string{"json", "xml", "yaml"}, configtree.Formats())
}
