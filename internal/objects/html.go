package objects

import (
	"bytes"
	"fmt"
	"html/template"
)

var entityTable = template.Must(template.New("entity").Parse(
	`<table><thead><tr><th>Name</th><th>Value</th><th>Type</th><th>Dirty</th><th>Read-Only</th><th>Description</th></tr></thead><tbody>
{{range .}}<tr><td>{{.Name}}</td><td>{{.Value}}</td><td>{{.Kind}}</td><td>{{.Dirty}}</td><td>{{.ReadOnly}}</td><td>{{.Doc}}</td></tr>
{{end}}</tbody></table>`))

type htmlRow struct {
	Name     string
	Value    string
	Kind     Kind
	Dirty    bool
	ReadOnly bool
	Doc      string
}

func (p *Property) htmlRow() htmlRow {
	val := fmt.Sprint(p.Plain())
	if label, ok := p.Label(); ok {
		val = fmt.Sprintf("%s: %s", val, label)
	}
	return htmlRow{
		Name:     p.name,
		Value:    val,
		Kind:     p.kind,
		Dirty:    p.dirty,
		ReadOnly: p.readOnly,
		Doc:      p.doc,
	}
}

// HTML renders the property as a one row table.
func (p *Property) HTML() (string, error) {
	return render([]htmlRow{p.htmlRow()})
}

// HTML renders all properties as a table sorted by name.
func (e *Entity) HTML() (string, error) {
	props := e.Properties()
	rows := make([]htmlRow, 0, len(props))
	for _, p := range props {
		rows = append(rows, p.htmlRow())
	}
	return render(rows)
}

func render(rows []htmlRow) (string, error) {
	var buf bytes.Buffer
	if err := entityTable.Execute(&buf, rows); err != nil {
		return "", err
	}
	return buf.String(), nil
}
