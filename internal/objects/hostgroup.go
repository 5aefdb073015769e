package objects

import (
	"context"

	"github.com/mimiro-io/zabbix-objects/internal/api"
)

// HostGroup is a group of hosts. Hosts is keyed by visible host name and is filled
// from the reply the group was built from.
type HostGroup struct {
	*Entity
	Hosts map[string]*Host
}

func NewHostGroup(caller Caller, row api.Row) (*HostGroup, error) {
	g := &HostGroup{}
	e, err := newEntity(caller, HostGroupSchema, row, g.resolve)
	if err != nil {
		return nil, err
	}
	g.Entity = e
	return g, nil
}

// CreateHostGroup creates a group and returns the id the server assigned to it.
func CreateHostGroup(ctx context.Context, caller Caller, name string) (string, error) {
	raw, err := caller.Call(ctx, HostGroupSchema.method("create"), api.Params{"name": name})
	if err != nil {
		return "", err
	}
	ids, err := api.DecodeIDs(raw, "groupids")
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", &api.Error{Code: api.CodeInvalidReply, Message: "no id in reply", Data: string(raw)}
	}
	return ids[0], nil
}

// HostGroupByName returns the first group named name, or nil.
func HostGroupByName(ctx context.Context, caller Caller, name string) (*HostGroup, error) {
	row, err := first(ctx, caller, HostGroupSchema, api.Params{
		"output":      "extend",
		"filter":      map[string]any{"name": name},
		"selectHosts": "extend",
	})
	if err != nil || row == nil {
		return nil, err
	}
	return NewHostGroup(caller, row)
}

func (g *HostGroup) resolve(e *Entity, row api.Row) error {
	g.Hosts = make(map[string]*Host)
	for _, r := range nested(row, "hosts") {
		h, err := NewHost(e.caller, r)
		if err != nil {
			return err
		}
		if name := h.Text("name"); name != "" {
			g.Hosts[name] = h
		}
	}
	return nil
}

// AddHost adds host to the group. It is true only when the server reports exactly
// that host as affected.
func (g *HostGroup) AddHost(ctx context.Context, host *Host) (bool, error) {
	raw, err := g.caller.Call(ctx, "host.massadd", api.Params{
		"groups": []map[string]any{{"groupid": g.ID()}},
		"hosts":  []map[string]any{{"hostid": host.ID()}},
	})
	if err != nil {
		return false, err
	}
	ids, err := api.DecodeIDs(raw, "hostids")
	if err != nil {
		return false, err
	}
	return len(ids) == 1 && ids[0] == host.ID(), nil
}

var HostGroupSchema = newSchema("HostGroup", "name", map[string]Descriptor{
	"groupid": {
		Doc:      "ID of the host group.",
		ID:       true,
		ReadOnly: true,
	},
	"name": {
		Doc: "Name of the host group.",
	},
	"flags": {
		Doc:      "Origin of the host group.",
		Kind:     Enum,
		ReadOnly: true,
		Values: map[int64]string{
			0: "a plain host group",
			4: "a discovered host group",
		},
	},
	"internal": {
		Doc:      "Whether the group is used internally by the system. An internal group cannot be deleted.",
		Kind:     Enum,
		ReadOnly: true,
		Values: map[int64]string{
			0: "not internal (default)",
			1: "internal",
		},
	},
})
