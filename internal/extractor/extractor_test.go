package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lockstep/internal/introspect"
)

func notificationsIface(t *testing.T) *introspect.Interface {
	t.Helper()
	doc, err := introspect.ParseString(`
<node>
  <interface name="org.freedesktop.Notifications">
    <method name="Notify">
      <arg type="s" name="app_name" direction="in"/>
      <arg type="u" name="replaces_id" direction="in"/>
      <arg type="s" name="app_icon" direction="in"/>
      <arg type="s" name="summary" direction="in"/>
      <arg type="s" name="body" direction="in"/>
      <arg type="as" name="actions" direction="in"/>
      <arg type="a{sv}" name="hints" direction="in"/>
      <arg type="i" name="expire_timeout" direction="in"/>
      <arg type="u" name="id" direction="out"/>
    </method>
    <signal name="ActionInvoked">
      <arg type="u" name="id"/>
      <arg type="s" name="action_key"/>
    </signal>
    <property name="Vendor" type="s" access="read"/>
  </interface>
</node>`, "notifications.xml")
	require.NoError(t, err)
	return &doc.Interfaces[0]
}

func TestExtract_SignalBody(t *testing.T) {
	iface := notificationsIface(t)

	got, err := Extract(iface, Query{Kind: SignalBody, Member: "ActionInvoked"})
	require.NoError(t, err)
	assert.Equal(t, "us", got)

	t.Run("Single Arg", func(t *testing.T) {
		got, err := Extract(iface, Query{Kind: SignalBody, Member: "ActionInvoked", Arg: "action_key"})
		require.NoError(t, err)
		assert.Equal(t, "s", got)
	})

	t.Run("Arg Not Found", func(t *testing.T) {
		_, err := Extract(iface, Query{Kind: SignalBody, Member: "ActionInvoked", Arg: "missing"})
		var anf *ArgNotFoundError
		require.ErrorAs(t, err, &anf)
		assert.Equal(t, "missing", anf.Arg)
	})
}

func TestExtract_MethodDirections(t *testing.T) {
	iface := notificationsIface(t)

	got, err := Extract(iface, Query{Kind: MethodArgs, Member: "Notify"})
	require.NoError(t, err)
	assert.Equal(t, "susssasa{sv}i", got)

	got, err = Extract(iface, Query{Kind: MethodReturn, Member: "Notify"})
	require.NoError(t, err)
	assert.Equal(t, "u", got)

	t.Run("Named Arg Overrides Direction", func(t *testing.T) {
		// "id" travels out but must still be reachable from an args query.
		got, err := Extract(iface, Query{Kind: MethodArgs, Member: "Notify", Arg: "id"})
		require.NoError(t, err)
		assert.Equal(t, "u", got)

		got, err = Extract(iface, Query{Kind: MethodReturn, Member: "Notify", Arg: "hints"})
		require.NoError(t, err)
		assert.Equal(t, "a{sv}", got)
	})
}

func TestExtract_DefaultDirectionIsIn(t *testing.T) {
	doc, err := introspect.ParseString(`
<node>
  <interface name="org.example.Calc">
    <method name="Add">
      <arg type="i" name="a"/>
      <arg type="i" name="b"/>
      <arg type="i" name="sum" direction="out"/>
    </method>
  </interface>
</node>`, "calc.xml")
	require.NoError(t, err)

	got, err := Extract(&doc.Interfaces[0], Query{Kind: MethodArgs, Member: "Add"})
	require.NoError(t, err)
	assert.Equal(t, "ii", got)
}

func TestExtract_Property(t *testing.T) {
	iface := notificationsIface(t)

	got, err := Extract(iface, Query{Kind: Property, Member: "Vendor"})
	require.NoError(t, err)
	assert.Equal(t, "s", got)

	// Arg names are not applicable to properties and are ignored.
	got, err = Extract(iface, Query{Kind: Property, Member: "Vendor", Arg: "anything"})
	require.NoError(t, err)
	assert.Equal(t, "s", got)
}

func TestExtract_MemberNotFound(t *testing.T) {
	iface := notificationsIface(t)

	for _, kind := range []Kind{SignalBody, MethodArgs, MethodReturn, Property} {
		_, err := Extract(iface, Query{Kind: kind, Member: "Nope"})
		var mnf *MemberNotFoundError
		require.ErrorAs(t, err, &mnf, "kind %s", kind)
		assert.Equal(t, "Nope", mnf.Member)
		assert.Contains(t, err.Error(), "org.freedesktop.Notifications")
	}
}

func TestExtract_EmptyBody(t *testing.T) {
	doc, err := introspect.ParseString(`
<node>
  <interface name="org.example.Ping">
    <signal name="Pong"/>
  </interface>
</node>`, "ping.xml")
	require.NoError(t, err)

	got, err := Extract(&doc.Interfaces[0], Query{Kind: SignalBody, Member: "Pong"})
	require.NoError(t, err)
	assert.Equal(t, "", got)
}
