package objects

import (
	"context"

	"github.com/mimiro-io/zabbix-objects/internal/api"
)

type Item struct {
	*Entity
}

func NewItem(caller Caller, row api.Row) (*Item, error) {
	e, err := newEntity(caller, ItemSchema, row, nil)
	if err != nil {
		return nil, err
	}
	return &Item{Entity: e}, nil
}

// Hosts fetches the hosts carrying this item.
func (i *Item) Hosts(ctx context.Context) ([]*Host, error) {
	rows, err := list(ctx, i.caller, HostSchema, api.Params{"output": "extend", "itemids": i.ID()})
	if err != nil {
		return nil, err
	}
	hosts := make([]*Host, 0, len(rows))
	for _, r := range rows {
		h, err := NewHost(i.caller, r)
		if err != nil {
			return nil, err
		}
		hosts = append(hosts, h)
	}
	return hosts, nil
}

var ItemSchema = newSchema("Item", "key_", map[string]Descriptor{
	"itemid": {
		Doc:      "ID of the item.",
		ID:       true,
		Kind:     Integer,
		ReadOnly: true,
	},
	"delay": {
		Doc:  "Update interval of the item in seconds.",
		Kind: Integer,
	},
	"hostid": {
		Doc: "ID of the host that the item belongs to.",
	},
	"interfaceid": {
		Doc: "ID of the item's host interface. Used only for host items. Optional for Zabbix agent (active), Zabbix internal, Zabbix trapper, Zabbix aggregate, database monitor and calculated items.",
	},
	"key_": {
		Doc: "Item key.",
	},
	"name": {
		Doc: "Name of the item.",
	},
	"type": {
		Doc:  "Type of the item.",
		Kind: Enum,
		Values: map[int64]string{
			0:  "Zabbix agent",
			1:  "SNMPv1 agent",
			2:  "Zabbix trapper",
			3:  "simple check",
			4:  "SNMPv2 agent",
			5:  "Zabbix internal",
			6:  "SNMPv3 agent",
			7:  "Zabbix agent (active)",
			8:  "Zabbix aggregate",
			9:  "web item",
			10: "external check",
			11: "database monitor",
			12: "IPMI agent",
			13: "SSH agent",
			14: "TELNET agent",
			15: "calculated",
			16: "JMX agent",
			17: "SNMP trap",
		},
	},
	"value_type": {
		Doc:  "Type of information of the item.",
		Kind: Enum,
		Values: map[int64]string{
			0: "numeric float",
			1: "character",
			2: "log",
			3: "numeric unsigned",
			4: "text",
		},
	},
	"authtype": {
		Doc:  "SSH authentication method. Used only by SSH agent items.",
		Kind: Enum,
		Values: map[int64]string{
			0: "password (default)",
			1: "public key",
		},
	},
	"data_type": {
		Doc:  "Data type of the item.",
		Kind: Enum,
		Values: map[int64]string{
			0: "decimal (default)",
			1: "octal",
			2: "hexadecimal",
			3: "boolean",
		},
	},
	"delay_flex": {
		Doc: "Flexible intervals as a serialized string. Each serialized flexible interval consists of an update interval and a time period separated by a forward slash. Multiple intervals are separated by a colon.",
	},
	"delta": {
		Doc:  "Value that will be stored.",
		Kind: Enum,
		Values: map[int64]string{
			0: "as is (default)",
			1: "Delta, speed per second",
			2: "Delta, simple change",
		},
	},
	"description": {
		Doc: "Description of the item.",
	},
	"error": {
		Doc:      "Error text if there are problems updating the item.",
		ReadOnly: true,
	},
	"flags": {
		Doc:      "Origin of the item.",
		Kind:     Enum,
		ReadOnly: true,
		Values: map[int64]string{
			0: "a plain item",
			4: "a discovered item",
		},
	},
	"formula": {
		Doc:  "Custom multiplier.",
		Kind: Integer,
	},
	"history": {
		Doc:  "Number of days to keep item's history data.",
		Kind: Integer,
	},
	"inventory_link": {
		Doc:  "ID of the host inventory field that is populated by the item.",
		Kind: Integer,
	},
	"ipmi_sensor": {
		Doc: "IPMI sensor. Used only by IPMI items.",
	},
	"lastclock": {
		Doc:      "Time when the item was last updated.",
		Kind:     Timestamp,
		ReadOnly: true,
	},
	"lastns": {
		Doc:      "Nanoseconds when the item was last updated.",
		Kind:     Integer,
		ReadOnly: true,
	},
	"lastvalue": {
		Doc:      "Last value of the item.",
		ReadOnly: true,
	},
	"logtimefmt": {
		Doc: "Format of the time in log entries. Used only by log items.",
	},
	"mtime": {
		Doc:  "Time when the monitored log file was last updated. Used only by log items.",
		Kind: Timestamp,
	},
	"multiplier": {
		Doc:  "Whether to use a custom multiplier.",
		Kind: Integer,
	},
	"params": {
		Doc: "Additional parameters depending on the type of the item: executed script for SSH and Telnet items, SQL query for database monitor items, formula for calculated items.",
	},
	"password": {
		Doc: "Password for authentication. Used by simple check, SSH, Telnet, database monitor and JMX items.",
	},
	"port": {
		Doc: "Port monitored by the item. Used only by SNMP items.",
	},
	"prevvalue": {
		Doc:      "Previous value of the item.",
		ReadOnly: true,
	},
	"privatekey": {
		Doc: "Name of the private key file.",
	},
	"publickey": {
		Doc: "Name of the public key file.",
	},
	"snmp_community": {
		Doc: "SNMP community. Used only by SNMPv1 and SNMPv2 items.",
	},
	"snmp_oid": {
		Doc: "SNMP OID.",
	},
	"snmpv3_authpassphrase": {
		Doc: "SNMPv3 auth passphrase. Used only by SNMPv3 items.",
	},
	"snmpv3_authprotocol": {
		Doc:  "SNMPv3 authentication protocol. Used only by SNMPv3 items.",
		Kind: Enum,
		Values: map[int64]string{
			0: "MD5 (default)",
			1: "SHA",
		},
	},
	"snmpv3_contextname": {
		Doc: "SNMPv3 context name. Used only by SNMPv3 items.",
	},
	"snmpv3_privpassphrase": {
		Doc: "SNMPv3 priv passphrase. Used only by SNMPv3 items.",
	},
	"snmpv3_privprotocol": {
		Doc:  "SNMPv3 privacy protocol. Used only by SNMPv3 items.",
		Kind: Enum,
		Values: map[int64]string{
			0: "DES (default)",
			1: "AES",
		},
	},
	"snmpv3_securitylevel": {
		Doc:  "SNMPv3 security level. Used only by SNMPv3 items.",
		Kind: Enum,
		Values: map[int64]string{
			0: "noAuthNoPriv",
			1: "authNoPriv",
			2: "authPriv",
		},
	},
	"snmpv3_securityname": {
		Doc: "SNMPv3 security name. Used only by SNMPv3 items.",
	},
	"state": {
		Doc:      "State of the item.",
		Kind:     Enum,
		ReadOnly: true,
		Values: map[int64]string{
			0: "normal (default)",
			1: "not supported",
		},
	},
	"status": {
		Doc:  "Status of the item.",
		Kind: Enum,
		Values: map[int64]string{
			0: "enabled item (default)",
			1: "disabled item",
		},
	},
	"templateid": {
		Doc:      "ID of the parent template item.",
		ReadOnly: true,
	},
	"trapper_hosts": {
		Doc: "Allowed hosts. Used only by trapper items.",
	},
	"trends": {
		Doc:  "Number of days to keep item's trends data.",
		Kind: Integer,
	},
	"units": {
		Doc: "Value units.",
	},
	"username": {
		Doc: "Username for authentication. Used by simple check, SSH, Telnet, database monitor and JMX items. Required by SSH and Telnet items.",
	},
	"valuemapid": {
		Doc: "ID of the associated value map.",
	},
})
