package objects

import (
	"context"

	"github.com/mimiro-io/zabbix-objects/internal/api"
)

// Host is a monitored host. Groups and ItemsByKey are filled from the collections
// embedded in the reply it was built from; Items and Triggers always re-fetch.
type Host struct {
	*Entity
	Groups     map[string]*HostGroup
	ItemsByKey map[string]*Item
}

func NewHost(caller Caller, row api.Row) (*Host, error) {
	h := &Host{}
	e, err := newEntity(caller, HostSchema, row, h.resolve)
	if err != nil {
		return nil, err
	}
	h.Entity = e
	return h, nil
}

// HostByName returns the first host whose visible name is name, or nil.
func HostByName(ctx context.Context, caller Caller, name string) (*Host, error) {
	row, err := first(ctx, caller, HostSchema, api.Params{
		"output":       "extend",
		"filter":       map[string]any{"name": name},
		"selectGroups": "extend",
		"selectItems":  "extend",
	})
	if err != nil || row == nil {
		return nil, err
	}
	return NewHost(caller, row)
}

func (h *Host) resolve(e *Entity, row api.Row) error {
	h.Groups = make(map[string]*HostGroup)
	for _, r := range nested(row, "groups") {
		g, err := NewHostGroup(e.caller, r)
		if err != nil {
			return err
		}
		if name := g.Text("name"); name != "" {
			h.Groups[name] = g
		}
	}

	h.ItemsByKey = make(map[string]*Item)
	for _, r := range nested(row, "items") {
		item, err := NewItem(e.caller, r)
		if err != nil {
			return err
		}
		if key := item.Text("key_"); key != "" {
			h.ItemsByKey[key] = item
		}
	}
	return nil
}

// Items fetches the items of the host.
func (h *Host) Items(ctx context.Context) ([]*Item, error) {
	rows, err := list(ctx, h.caller, ItemSchema, api.Params{"output": "extend", "hostids": h.ID()})
	if err != nil {
		return nil, err
	}
	items := make([]*Item, 0, len(rows))
	for _, r := range rows {
		item, err := NewItem(h.caller, r)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// Triggers fetches the triggers of the host.
func (h *Host) Triggers(ctx context.Context) ([]*Trigger, error) {
	rows, err := list(ctx, h.caller, TriggerSchema, api.Params{"output": "extend", "hostids": h.ID()})
	if err != nil {
		return nil, err
	}
	triggers := make([]*Trigger, 0, len(rows))
	for _, r := range rows {
		t, err := NewTrigger(h.caller, r)
		if err != nil {
			return nil, err
		}
		triggers = append(triggers, t)
	}
	return triggers, nil
}

var HostSchema = newSchema("Host", "", map[string]Descriptor{
	"hostid": {
		Doc:      "ID of the host.",
		ID:       true,
		ReadOnly: true,
	},
	"host": {
		Doc: "Technical name of the host.",
	},
	"available": {
		Doc:      "Availability of the agent.",
		Kind:     Enum,
		ReadOnly: true,
		Values:   available,
	},
	"disable_until": {
		Doc:      "The next polling time of an unavailable Zabbix agent.",
		Kind:     Timestamp,
		ReadOnly: true,
	},
	"error": {
		Doc:      "Error text if Zabbix agent is unavailable.",
		ReadOnly: true,
	},
	"errors_from": {
		Doc:      "Time when Zabbix agent became unavailable.",
		Kind:     Timestamp,
		ReadOnly: true,
	},
	"flags": {
		Doc:      "Origin of the host.",
		Kind:     Enum,
		ReadOnly: true,
		Values: map[int64]string{
			0: "a plain host",
			4: "a discovered host",
		},
	},
	"ipmi_authtype": {
		Doc:  "IPMI authentication algorithm.",
		Kind: Enum,
		Values: map[int64]string{
			-1: "default",
			0:  "none",
			1:  "MD2",
			2:  "MD5",
			4:  "straight",
			5:  "OEM",
			6:  "RMCP+",
		},
	},
	"ipmi_available": {
		Doc:      "Availability of IPMI agent.",
		Kind:     Enum,
		ReadOnly: true,
		Values:   available,
	},
	"ipmi_disable_until": {
		Doc:      "The next polling time of an unavailable IPMI agent.",
		Kind:     Timestamp,
		ReadOnly: true,
	},
	"ipmi_error": {
		Doc:      "Error text if IPMI agent is unavailable.",
		ReadOnly: true,
	},
	"ipmi_errors_from": {
		Doc:      "Time when IPMI agent became unavailable.",
		Kind:     Timestamp,
		ReadOnly: true,
	},
	"ipmi_password": {
		Doc: "IPMI password.",
	},
	"ipmi_privilege": {
		Doc:  "IPMI privilege level.",
		Kind: Enum,
		Values: map[int64]string{
			1: "callback",
			2: "user (default)",
			3: "operator",
			4: "admin",
			5: "OEM",
		},
	},
	"ipmi_username": {
		Doc: "IPMI username.",
	},
	"jmx_available": {
		Doc:      "Availability of JMX agent.",
		Kind:     Enum,
		ReadOnly: true,
		Values:   available,
	},
	"jmx_disable_until": {
		Doc:      "The next polling time of an unavailable JMX agent.",
		Kind:     Timestamp,
		ReadOnly: true,
	},
	"jmx_error": {
		Doc:      "Error text if JMX agent is unavailable.",
		ReadOnly: true,
	},
	"jmx_errors_from": {
		Doc:      "Time when JMX agent became unavailable.",
		Kind:     Timestamp,
		ReadOnly: true,
	},
	"maintenance_from": {
		Doc:      "Starting time of the effective maintenance.",
		Kind:     Timestamp,
		ReadOnly: true,
	},
	"maintenance_status": {
		Doc:      "Effective maintenance status.",
		Kind:     Enum,
		ReadOnly: true,
		Values: map[int64]string{
			0: "no maintenance (default)",
			1: "maintenance in effect",
		},
	},
	"maintenance_type": {
		Doc:      "Effective maintenance type.",
		Kind:     Enum,
		ReadOnly: true,
		Values: map[int64]string{
			0: "maintenance with data collection (default)",
			1: "maintenance without data collection",
		},
	},
	"maintenanceid": {
		Doc:      "ID of the maintenance that is currently in effect on the host.",
		ReadOnly: true,
	},
	"name": {
		Doc: "Visible name of the host, defaults to the host property value.",
	},
	"proxy_hostid": {
		Doc: "ID of the proxy that is used to monitor the host.",
	},
	"snmp_available": {
		Doc:      "Availability of SNMP agent.",
		Kind:     Enum,
		ReadOnly: true,
		Values:   available,
	},
	"snmp_disable_until": {
		Doc:      "The next polling time of an unavailable SNMP agent.",
		Kind:     Timestamp,
		ReadOnly: true,
	},
	"snmp_error": {
		Doc:      "Error text if SNMP agent is unavailable.",
		ReadOnly: true,
	},
	"snmp_errors_from": {
		Doc:      "Time when SNMP agent became unavailable.",
		Kind:     Timestamp,
		ReadOnly: true,
	},
	"status": {
		Doc:  "Status and function of the host.",
		Kind: Enum,
		Values: map[int64]string{
			0: "monitored host (default)",
			1: "unmonitored host",
		},
	},
})
