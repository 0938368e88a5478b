package introspect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nodeXML = `<?xml version="1.0" encoding="UTF-8"?>
<node xmlns:doc="http://www.freedesktop.org/dbus/1.0/doc.dtd">
  <interface name="org.example.Node">
    <signal name="RemoveNode">
      <arg name="name" type="s"/>
      <arg name="path" type="o"/>
    </signal>
    <method name="Notify">
      <arg name="app_name" type="s" direction="in"/>
      <arg name="id" type="u" direction="out"/>
    </method>
    <property name="InUse" type="b" access="read"/>
  </interface>
</node>
`

func TestParseString(t *testing.T) {
	doc, err := ParseString(nodeXML, "node.xml")
	require.NoError(t, err)
	assert.Equal(t, "node.xml", doc.Identity)
	require.Len(t, doc.Interfaces, 1)

	iface := doc.Interfaces[0]
	assert.Equal(t, "org.example.Node", iface.Name)

	t.Run("Signal", func(t *testing.T) {
		sig := iface.SignalByName("RemoveNode")
		require.NotNil(t, sig)
		require.Len(t, sig.Args, 2)
		assert.Equal(t, "name", sig.Args[0].Name)
		assert.Equal(t, "s", sig.Args[0].Type)
		assert.Equal(t, "o", sig.Args[1].Type)
	})

	t.Run("Method", func(t *testing.T) {
		m := iface.MethodByName("Notify")
		require.NotNil(t, m)
		require.Len(t, m.Args, 2)
		assert.Equal(t, "in", m.Args[0].Direction)
		assert.Equal(t, "out", m.Args[1].Direction)
	})

	t.Run("Property", func(t *testing.T) {
		p := iface.PropertyByName("InUse")
		require.NotNil(t, p)
		assert.Equal(t, "b", p.Type)
		assert.Equal(t, "read", p.Access)
	})

	t.Run("Missing Members", func(t *testing.T) {
		assert.Nil(t, iface.SignalByName("AddNode"))
		assert.Nil(t, iface.MethodByName("CancelNotify"))
		assert.Nil(t, iface.PropertyByName("Available"))
	})
}

func TestParse_Malformed(t *testing.T) {
	_, err := ParseString("<node><interface", "broken.xml")
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "broken.xml", perr.Identity)
	assert.Contains(t, err.Error(), "broken.xml")
}

func TestSet(t *testing.T) {
	a, err := ParseString(`<node><interface name="org.example.A"><signal name="Ping"/></interface></node>`, "a.xml")
	require.NoError(t, err)
	b, err := ParseString(`<node><interface name="org.example.B"/><interface name="org.example.A"/></node>`, "b.xml")
	require.NoError(t, err)

	set := NewSet()
	set.Add(a)
	set.Add(b)

	assert.Equal(t, 2, set.Len())
	require.Len(t, set.Documents(), 2)
	assert.Equal(t, "a.xml", set.Documents()[0].Identity)

	t.Run("Lookup Orders By Document", func(t *testing.T) {
		located := set.Lookup("org.example.A")
		require.Len(t, located, 2)
		assert.Equal(t, "a.xml", located[0].Document)
		assert.Equal(t, "b.xml", located[1].Document)
		require.Len(t, located[0].Interface.Signals, 1)
	})

	t.Run("Lookup Missing", func(t *testing.T) {
		assert.Empty(t, set.Lookup("org.example.C"))
	})
}
