package objects

import (
	"context"
	"errors"
	"testing"

	"github.com/franela/goblin"
	"github.com/mimiro-io/zabbix-objects/internal/api"
)

const hostReply = `[{
	"hostid": "10084",
	"host": "web01",
	"name": "Web 01",
	"status": "0",
	"available": "1",
	"disable_until": "0",
	"groups": [
		{"groupid": "2", "name": "Linux servers", "internal": "0", "flags": "0"},
		{"groupid": "14", "name": "Puppetized", "internal": "0", "flags": "0"}
	],
	"items": [
		{"itemid": "23296", "key_": "vm.memory.size[available]", "name": "Available memory", "value_type": "3", "lastclock": "1400000000"},
		{"itemid": "23297", "key_": "system.cpu.load[percpu,avg1]", "name": "Processor load", "value_type": "0"}
	]
}]`

func TestHost(t *testing.T) {
	g := goblin.Goblin(t)
	ctx := context.Background()

	g.Describe("Looking up a host by name", func() {
		g.It("should return nil when nothing matched", func() {
			caller := &fakeCaller{}
			caller.reply(`[]`)
			h, err := HostByName(ctx, caller, "missing")
			g.Assert(err).IsNil()
			g.Assert(h == nil).IsTrue()
		})
		g.It("should ask for the embedded groups and items", func() {
			caller := &fakeCaller{}
			caller.reply(`[]`)
			_, _ = HostByName(ctx, caller, "Web 01")
			g.Assert(caller.calls[0].method).Equal("host.get")
			p := caller.calls[0].params
			g.Assert(p["output"]).Equal("extend")
			g.Assert(p["filter"]).Equal(map[string]any{"name": "Web 01"})
			g.Assert(p["selectGroups"]).Equal("extend")
			g.Assert(p["selectItems"]).Equal("extend")
		})
		g.It("should use the first of several matches", func() {
			caller := &fakeCaller{}
			caller.reply(`[{"hostid":"1","name":"dup"},{"hostid":"2","name":"dup"}]`)
			h, err := HostByName(ctx, caller, "dup")
			g.Assert(err).IsNil()
			g.Assert(h.ID()).Equal("1")
		})
		g.It("should pass server errors through", func() {
			caller := &fakeCaller{}
			_, err := HostByName(ctx, caller, "web01")
			g.Assert(api.IsProtocol(err)).IsTrue()
		})
	})

	g.Describe("A host built from a reply with embedded records", func() {
		g.It("should key groups by name and items by key without further calls", func() {
			caller := &fakeCaller{}
			caller.reply(hostReply)
			h, err := HostByName(ctx, caller, "Web 01")
			g.Assert(err).IsNil()
			g.Assert(len(caller.calls)).Equal(1)

			g.Assert(len(h.Groups)).Equal(2)
			g.Assert(h.Groups["Puppetized"].ID()).Equal("14")
			g.Assert(h.Groups["Linux servers"].Schema()).Equal(HostGroupSchema)

			g.Assert(len(h.ItemsByKey)).Equal(2)
			mem := h.ItemsByKey["vm.memory.size[available]"]
			g.Assert(mem.ID()).Equal("23296")
			g.Assert(mem.Time("lastclock").Unix()).Equal(int64(1400000000))
			label, _ := mem.Entity.props["value_type"].Label()
			g.Assert(label).Equal("numeric unsigned")
			g.Assert(len(caller.calls)).Equal(1)
		})
		g.It("should ignore embedded collections that are not lists of records", func() {
			caller := &fakeCaller{}
			caller.reply(`[{"hostid":"45","name":"MyHost","items":"42"}]`)
			h, err := HostByName(ctx, caller, "MyHost")
			g.Assert(err).IsNil()
			g.Assert(len(h.ItemsByKey)).Equal(0)
			g.Assert(len(h.Groups)).Equal(0)
		})
	})

	g.Describe("Fetching related records of a host", func() {
		g.It("should re-fetch items on every call", func() {
			caller := &fakeCaller{}
			caller.reply(hostReply)
			h, _ := HostByName(ctx, caller, "Web 01")

			caller.reply(`[{"itemid":"1","key_":"Memory","value_type":"3"}]`)
			items, err := h.Items(ctx)
			g.Assert(err).IsNil()
			g.Assert(len(items)).Equal(1)
			g.Assert(items[0].Text("key_")).Equal("Memory")
			g.Assert(caller.calls[1].method).Equal("item.get")
			g.Assert(caller.calls[1].params["hostids"]).Equal("10084")
			g.Assert(len(h.ItemsByKey)).Equal(2)

			caller.reply(`[]`)
			items, err = h.Items(ctx)
			g.Assert(err).IsNil()
			g.Assert(len(items)).Equal(0)
			g.Assert(len(caller.calls)).Equal(3)
		})
		g.It("should fetch triggers", func() {
			caller := &fakeCaller{}
			h, _ := NewHost(caller, rowOf(t, `{"hostid":"45","name":"MyHost"}`))
			caller.reply(`[{"triggerid":"13491","description":"Processor load is too high on {HOST.NAME}","priority":"2","value":"0","lastchange":"0"}]`)
			triggers, err := h.Triggers(ctx)
			g.Assert(err).IsNil()
			g.Assert(len(triggers)).Equal(1)
			g.Assert(triggers[0].ID()).Equal("13491")
			g.Assert(triggers[0].Int("priority")).Equal(int64(2))
			g.Assert(caller.calls[0].method).Equal("trigger.get")
			g.Assert(caller.calls[0].params["hostids"]).Equal("45")
		})
		g.It("should fail the whole list on an invalid record", func() {
			caller := &fakeCaller{}
			h, _ := NewHost(caller, rowOf(t, `{"hostid":"45"}`))
			caller.reply(`[{"triggerid":"1"},{"triggerid":"2","priority":"9"}]`)
			triggers, err := h.Triggers(ctx)
			g.Assert(triggers == nil).IsTrue()
			g.Assert(errors.Is(err, api.ErrInvalidValue)).IsTrue()
		})
		g.It("should fetch the hosts of an item", func() {
			caller := &fakeCaller{}
			item, _ := NewItem(caller, rowOf(t, `{"itemid":"23296","key_":"Memory"}`))
			caller.reply(`[{"hostid":"45","name":"MyHost"}]`)
			hosts, err := item.Hosts(ctx)
			g.Assert(err).IsNil()
			g.Assert(len(hosts)).Equal(1)
			g.Assert(hosts[0].ID()).Equal("45")
			g.Assert(caller.calls[0].method).Equal("host.get")
			g.Assert(caller.calls[0].params["itemids"]).Equal("23296")
		})
	})
}

func TestHostGroup(t *testing.T) {
	g := goblin.Goblin(t)
	ctx := context.Background()

	g.Describe("Creating a host group", func() {
		g.It("should return the new id", func() {
			caller := &fakeCaller{}
			caller.reply(`{"groupids":["42"]}`)
			id, err := CreateHostGroup(ctx, caller, "Puppetized")
			g.Assert(err).IsNil()
			g.Assert(id).Equal("42")
			g.Assert(caller.calls[0].method).Equal("hostgroup.create")
			g.Assert(caller.calls[0].params["name"]).Equal("Puppetized")
		})
		g.It("should fail when the reply has no id", func() {
			caller := &fakeCaller{}
			caller.reply(`{"groupids":[]}`)
			_, err := CreateHostGroup(ctx, caller, "Puppetized")
			g.Assert(api.Code(err)).Equal(api.CodeInvalidReply)
		})
	})

	g.Describe("Looking up a host group by name", func() {
		g.It("should return nil when nothing matched", func() {
			caller := &fakeCaller{}
			caller.reply(`[]`)
			hg, err := HostGroupByName(ctx, caller, "missing")
			g.Assert(err).IsNil()
			g.Assert(hg == nil).IsTrue()
			g.Assert(caller.calls[0].method).Equal("hostgroup.get")
			g.Assert(caller.calls[0].params["selectHosts"]).Equal("extend")
		})
		g.It("should key embedded hosts by name", func() {
			caller := &fakeCaller{}
			caller.reply(`[{"groupid":"14","name":"Puppetized","internal":"0","flags":"0","hosts":[{"hostid":"45","name":"MyHost"}]}]`)
			hg, err := HostGroupByName(ctx, caller, "Puppetized")
			g.Assert(err).IsNil()
			g.Assert(hg.ID()).Equal("14")
			g.Assert(hg.Hosts["MyHost"].ID()).Equal("45")
		})
	})

	g.Describe("Adding a host to a group", func() {
		var (
			caller *fakeCaller
			host   *Host
			group  *HostGroup
		)
		g.BeforeEach(func() {
			caller = &fakeCaller{}
			host, _ = NewHost(caller, rowOf(t, `{"hostid":"45","name":"MyHost","items":"42"}`))
			group, _ = NewHostGroup(caller, rowOf(t, `{"hosts":[],"internal":"0","flags":"0","groupid":"14","name":"Puppetized"}`))
		})

		g.It("should succeed when exactly that host was affected", func() {
			caller.reply(`{"hostids":["45"]}`)
			ok, err := group.AddHost(ctx, host)
			g.Assert(err).IsNil()
			g.Assert(ok).IsTrue()
			g.Assert(caller.calls[0].method).Equal("host.massadd")
			g.Assert(caller.calls[0].params["groups"]).Equal([]map[string]any{{"groupid": "14"}})
			g.Assert(caller.calls[0].params["hosts"]).Equal([]map[string]any{{"hostid": "45"}})
		})
		g.It("should fail for another host", func() {
			caller.reply(`{"hostids":["40"]}`)
			ok, err := group.AddHost(ctx, host)
			g.Assert(err).IsNil()
			g.Assert(ok).IsFalse()
		})
		g.It("should fail when nothing was affected", func() {
			caller.reply(`{"hostids":[]}`)
			ok, _ := group.AddHost(ctx, host)
			g.Assert(ok).IsFalse()
		})
		g.It("should fail when more hosts were affected", func() {
			caller.reply(`{"hostids":["45","46"]}`)
			ok, _ := group.AddHost(ctx, host)
			g.Assert(ok).IsFalse()
		})
	})
}
