package objects

import "github.com/mimiro-io/zabbix-objects/internal/api"

type Trigger struct {
	*Entity
}

func NewTrigger(caller Caller, row api.Row) (*Trigger, error) {
	e, err := newEntity(caller, TriggerSchema, row, nil)
	if err != nil {
		return nil, err
	}
	return &Trigger{Entity: e}, nil
}

var TriggerSchema = newSchema("Trigger", "", map[string]Descriptor{
	"triggerid": {
		Doc:      "ID of the trigger.",
		ID:       true,
		ReadOnly: true,
	},
	"description": {
		Doc: "Name of the trigger.",
	},
	"expression": {
		Doc: "Reduced trigger expression.",
	},
	"comments": {
		Doc: "Additional comments to the trigger.",
	},
	"error": {
		Doc:      "Error text if there have been any problems when updating the state of the trigger.",
		ReadOnly: true,
	},
	"flags": {
		Doc:      "Origin of the trigger.",
		Kind:     Enum,
		ReadOnly: true,
		Values: map[int64]string{
			0: "a plain trigger (default)",
			4: "a discovered trigger",
		},
	},
	"lastchange": {
		Doc:      "Time when the trigger last changed its state.",
		Kind:     Timestamp,
		ReadOnly: true,
	},
	"priority": {
		Doc:  "Severity of the trigger.",
		Kind: Enum,
		Values: map[int64]string{
			0: "not classified (default)",
			1: "information",
			2: "warning",
			3: "average",
			4: "high",
			5: "disaster",
		},
	},
	"state": {
		Doc:      "State of the trigger.",
		Kind:     Enum,
		ReadOnly: true,
		Values: map[int64]string{
			0: "trigger state is up to date (default)",
			1: "current trigger state is unknown",
		},
	},
	"status": {
		Doc:  "Whether the trigger is enabled or disabled.",
		Kind: Enum,
		Values: map[int64]string{
			0: "enabled (default)",
			1: "disabled",
		},
	},
	"templateid": {
		Doc:      "ID of the parent template trigger.",
		ReadOnly: true,
	},
	"type": {
		Doc:  "Whether the trigger can generate multiple problem events.",
		Kind: Enum,
		Values: map[int64]string{
			0: "do not generate multiple events (default)",
			1: "generate multiple events",
		},
	},
	"url": {
		Doc: "URL associated with the trigger.",
	},
	"value": {
		Doc:      "Whether the trigger is in OK or problem state.",
		Kind:     Enum,
		ReadOnly: true,
		Values: map[int64]string{
			0: "OK (default)",
			1: "problem",
		},
	},
})
