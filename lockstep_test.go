package lockstep

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const boltXML = `<?xml version="1.0" encoding="UTF-8"?>
<node xmlns:doc="http://www.freedesktop.org/dbus/1.0/doc.dtd">
<interface name="org.freedesktop.bolt1.Manager">
  <signal name="DeviceAdded">
    <arg name="device" type="o"/>
  </signal>
</interface>
</node>`

const notificationsXML = `<?xml version="1.0" encoding="UTF-8"?>
<node xmlns:doc="http://www.freedesktop.org/dbus/1.0/doc.dtd">
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
 </interface>
</node>`

const accessibleXML = `<?xml version="1.0" encoding="UTF-8"?>
<node xmlns:doc="http://www.freedesktop.org/dbus/1.0/doc.dtd">
  <interface name="org.a11y.atspi.Cache">
    <signal name="AddAccessible">
      <arg name="nodeAdded" type="((so)(so)(so)iiassusau)"/>
      <annotation name="org.qtproject.QtDBus.QtTypeName.In0" value="QSpiAccessibleCacheItem"/>
    </signal>
  </interface>
  <interface name="org.a11y.atspi.Accessible">
    <method name="GetRole">
      <arg name="role" type="u" direction="out"/>
    </method>
  </interface>
</node>`

const geoclueXML = `<node>
<interface name="org.freedesktop.GeoClue2.Manager">
  <property type="b" name="InUse" access="read"/>
</interface>
</node>`

type DeviceEvent struct {
	Device ObjectPath
}

type Notification struct {
	AppName       string
	ReplacesID    uint32
	AppIcon       string
	Summary       string
	Body          string
	Actions       []string
	Hints         map[string]any
	ExpireTimeout int32
}

func TestGetSignalBodyType(t *testing.T) {
	got, err := GetSignalBodyType(strings.NewReader(boltXML), "org.freedesktop.bolt1.Manager", "DeviceAdded", "")
	require.NoError(t, err)
	assert.Equal(t, "o", got)

	// Signal bodies omit the struct parentheses, so the raw strings differ
	// while the shapes agree.
	reported, err := SignatureOf(DeviceEvent{})
	require.NoError(t, err)
	assert.NotEqual(t, got, reported)
	assert.True(t, Equal(got, reported))

	t.Run("Named Arg", func(t *testing.T) {
		got, err := GetSignalBodyType(strings.NewReader(boltXML), "org.freedesktop.bolt1.Manager", "DeviceAdded", "device")
		require.NoError(t, err)
		assert.Equal(t, "o", got)
	})

	t.Run("Interface Not Found", func(t *testing.T) {
		_, err := GetSignalBodyType(strings.NewReader(boltXML), "org.freedesktop.bolt2.Manager", "DeviceAdded", "")
		var inf *InterfaceNotFoundError
		require.ErrorAs(t, err, &inf)
	})
}

func TestGetMethodArgsType(t *testing.T) {
	got, err := GetMethodArgsType(strings.NewReader(notificationsXML), "org.freedesktop.Notifications", "Notify", "")
	require.NoError(t, err)
	assert.Equal(t, "susssasa{sv}i", got)

	reported, err := SignatureOf(Notification{})
	require.NoError(t, err)
	assert.True(t, Equal(got, reported))
}

func TestGetMethodReturnType(t *testing.T) {
	got, err := GetMethodReturnType(strings.NewReader(accessibleXML), "org.a11y.atspi.Accessible", "GetRole", "")
	require.NoError(t, err)
	assert.Equal(t, "u", got)
}

func TestGetPropertyType(t *testing.T) {
	got, err := GetPropertyType(strings.NewReader(geoclueXML), "org.freedesktop.GeoClue2.Manager", "InUse")
	require.NoError(t, err)
	assert.Equal(t, "b", got)
	assert.True(t, Equal("b", got))
}

func TestGetSignalBodyType_NestedStructs(t *testing.T) {
	type Accessible struct {
		Name string
		Path ObjectPath
	}
	type CacheItem struct {
		Obj           Accessible
		Application   Accessible
		Parent        Accessible
		IndexInParent int32
		ChildCount    int32
		Interfaces    []string
		Name          string
		Role          uint32
		Description   string
		StateSet      []uint32
	}

	got, err := GetSignalBodyType(strings.NewReader(accessibleXML), "org.a11y.atspi.Cache", "AddAccessible", "")
	require.NoError(t, err)

	reported, err := SignatureOf(CacheItem{})
	require.NoError(t, err)
	assert.Equal(t, got, reported)
	assert.True(t, Equal(got, reported))
}

type failRecorder struct {
	failed bool
	msg    string
}

func (f *failRecorder) Helper() {}
func (f *failRecorder) Errorf(format string, args ...any) {
	f.msg = fmt.Sprintf(format, args...)
}
func (f *failRecorder) FailNow() { f.failed = true }

func TestAssertEqual(t *testing.T) {
	rec := &failRecorder{}
	AssertEqual(rec, "so", "(so)")
	assert.False(t, rec.failed)

	AssertEqual(rec, "so", "(ss)")
	assert.True(t, rec.failed)
	assert.Contains(t, rec.msg, `"so"`)
	assert.Contains(t, rec.msg, `"(ss)"`)
}
