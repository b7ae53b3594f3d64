package edmx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseNode(t *testing.T, src string) *Node {
	t.Helper()
	doc, err := ParseBytes([]byte(src))
	require.NoError(t, err)
	return doc.Root()
}

func TestHasTag(t *testing.T) {
	n := parseNode(t, `<Property Name="A"/>`)
	assert.True(t, HasTag(n, "Property"))
	assert.False(t, HasTag(n, "property"))
	assert.False(t, HasTag(n, "Prop"))
	assert.False(t, HasTag(nil, "Property"))
}

func TestIsEntityNamed(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{`<EntityType Name="Customer"/>`, true},
		{`<EntityType Name="Customers"/>`, false},
		{`<EntityType/>`, false},
		{`<ComplexType Name="Customer"/>`, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsEntityNamed(parseNode(t, tt.src), "Customer"), tt.src)
	}
}

func TestDisallowsEdit(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{`<Annotation Term="NAV.AllowEdit" Bool="false"/>`, true},
		{`<Annotation Term="NAV.AllowEdit" Bool="true"/>`, false},
		{`<Annotation Term="NAV.AllowEdit"/>`, false},
		{`<Annotation Bool="false"/>`, false},
		{`<Annotation Term="NAV.AllowEditOnCreate" Bool="false"/>`, false},
		{`<PropertyValue Term="NAV.AllowEdit" Bool="false"/>`, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DisallowsEdit(parseNode(t, tt.src)), tt.src)
	}
}

func TestIsEditableProperty(t *testing.T) {
	t.Run("plain property is editable", func(t *testing.T) {
		assert.True(t, IsEditableProperty(parseNode(t, `<Property Name="A" Type="Edm.String"/>`)))
	})

	t.Run("non-property is never editable", func(t *testing.T) {
		assert.False(t, IsEditableProperty(parseNode(t, `<NavigationProperty Name="A"/>`)))
	})

	t.Run("direct annotation disallows", func(t *testing.T) {
		n := parseNode(t, `<Property Name="A"><Annotation Term="NAV.AllowEdit" Bool="false"/></Property>`)
		assert.False(t, IsEditableProperty(n))
	})

	// Disallowal propagates from any depth below the property, not only
	// from direct annotations.
	t.Run("nested annotation disallows", func(t *testing.T) {
		n := parseNode(t, `<Property Name="A"><Annotation Term="X"><Record>`+
			`<PropertyValue Term="NAV.AllowEdit" Bool="false"/></Record></Annotation></Property>`)
		assert.False(t, IsEditableProperty(n))
	})

	t.Run("allow true keeps editable", func(t *testing.T) {
		n := parseNode(t, `<Property Name="A"><Annotation Term="NAV.AllowEdit" Bool="true"/></Property>`)
		assert.True(t, IsEditableProperty(n))
	})

	t.Run("self attributes are not inspected", func(t *testing.T) {
		n := parseNode(t, `<Property Name="A" Term="NAV.AllowEdit" Bool="false"/>`)
		assert.True(t, IsEditableProperty(n))
	})
}

func TestFilterEditable(t *testing.T) {
	doc := loadTestdata(t)
	customer := doc.Find(func(n *Node) bool { return IsEntityNamed(n, "Customer") })
	require.NotNil(t, customer)

	assert.Equal(t,
		[]string{"No", "Name", "Blocked", "Last_Date_Modified", "Credit_Limit", "Balance"},
		names(customer.Filter(IsProperty)))
	assert.Equal(t,
		[]string{"Name", "Blocked", "Last_Date_Modified", "Credit_Limit", "Balance"},
		names(customer.Filter(IsEditableProperty)))
}

func TestCombinators(t *testing.T) {
	n := parseNode(t, `<Property Name="A"><Annotation Term="NAV.AllowEdit" Bool="false"/></Property>`)

	assert.True(t, And(IsProperty, Not(IsEditableProperty))(n))
	assert.False(t, And(IsProperty, IsEditableProperty)(n))
	assert.True(t, Or(IsPropertyRef, IsProperty)(n))
	assert.False(t, Or(IsPropertyRef, IsEditableProperty)(n))
	assert.True(t, And()(n))
	assert.False(t, Or()(n))
}
