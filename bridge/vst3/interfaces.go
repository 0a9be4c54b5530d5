// File: bridge/vst3/interfaces.go
// Package vst3 contains the proxied interface families of the bridged
// plugin ABI. Each family follows the same pattern: a construct-args
// snapshot captured once at proxy creation, a proxy type forwarding every
// method through the shared invoker, and a host-side registration that
// routes inbound calls to a real local implementation. The catalogue here
// is not exhaustive; new families repeat the pattern.

package vst3

import "github.com/Javier97sm/yabridge/api"

// Interface identifiers on the wire.
const (
	InterfaceHostApplication api.InterfaceID = iota + 1
	InterfaceComponentHandler
	InterfaceUnitHandler
	InterfacePlugFrame
)

// HostApplication methods.
const (
	MethodGetName api.MethodID = iota + 1
)

// ComponentHandler methods.
const (
	MethodBeginEdit api.MethodID = iota + 1
	MethodPerformEdit
	MethodEndEdit
	MethodRestartComponent
)

// UnitHandler methods. NotifyUnitByBusChange belongs to the optional
// UnitHandler2 extension but shares the interface id on the wire.
const (
	MethodNotifyUnitSelection api.MethodID = iota + 1
	MethodNotifyProgramListChange
	MethodNotifyUnitByBusChange
)

// PlugFrame methods.
const (
	MethodResizeView api.MethodID = iota + 1
)

// Plugin ABI scalar types.
type (
	ParamID       = uint32
	ParamValue    = float64
	UnitID        = int32
	ProgramListID = int32
)

// HostApplication names the host to the plugin.
type HostApplication interface {
	GetName() (string, api.Result)
}

// ComponentHandler receives parameter edit notifications from the plugin's
// edit controller.
type ComponentHandler interface {
	BeginEdit(id ParamID) api.Result
	PerformEdit(id ParamID, value ParamValue) api.Result
	EndEdit(id ParamID) api.Result
	RestartComponent(flags int32) api.Result
}

// UnitHandler receives unit and program list notifications.
type UnitHandler interface {
	NotifyUnitSelection(unitID UnitID) api.Result
	NotifyProgramListChange(listID ProgramListID, programIndex int32) api.Result
}

// UnitHandler2 is the optional extension of UnitHandler.
type UnitHandler2 interface {
	UnitHandler
	NotifyUnitByBusChange() api.Result
}

// PlugFrame is the host-provided frame a plugin view asks to be resized in.
// Plugins call it from inside the message pump, which makes it the usual
// customer of mutually recursive sends.
type PlugFrame interface {
	ResizeView(viewID api.InstanceID, width, height int32) api.Result
}
