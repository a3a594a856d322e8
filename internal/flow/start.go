package flow

import "github.com/snedea/smartsheets-issue-monitor-flowise/internal/models"

const (
	StartID    = StartName + "_0"
	startColor = "#81c784"
	startType  = "StartAgent"
)

var startPosition = models.Position{X: 300, Y: 400}

// StartNode builds the form node every run of the workflow begins at.
func StartNode(form models.StartForm) Node {
	return Node{
		ID:       StartID,
		Position: startPosition,
		Data: NodeData{
			ID:          StartID,
			Label:       form.Title,
			Version:     1.2,
			Name:        StartName,
			Type:        startType,
			Color:       startColor,
			BaseClasses: []string{startType},
			Category:    category,
			Description: "Start agent for workflow with form inputs",
			InputParams: []InputParam{
				{
					Label:       "Form Title",
					Name:        "formTitle",
					Type:        "string",
					Placeholder: form.Title,
					ID:          inputID(StartID, "formTitle", "string"),
				},
				{
					Label:       "Form Description",
					Name:        "formDescription",
					Type:        "string",
					Rows:        3,
					Placeholder: form.Placeholder,
					ID:          inputID(StartID, "formDescription", "string"),
				},
				{
					Label: "Form Input Types",
					Name:  "formInputTypes",
					Type:  "datagrid",
					Datagrid: []GridColumn{
						{Field: "type", HeaderName: "Type", Type: "singleSelect", ValueOptions: []string{"string", "number", "boolean", "date", "file"}},
						{Field: "name", HeaderName: "Name", Editable: true},
						{Field: "label", HeaderName: "Label", Editable: true},
					},
					ID: inputID(StartID, "formInputTypes", "datagrid"),
				},
			},
			InputAnchors: []any{},
			Inputs: &StartInputs{
				FormTitle:       form.Title,
				FormDescription: form.Description,
				FormInputTypes:  []models.FormField{form.Field},
			},
			OutputAnchors: []OutputAnchor{
				{
					ID:          StartHandle,
					Label:       startType,
					Name:        StartName,
					Description: startType,
					Type:        startType,
				},
			},
			Outputs: map[string]any{},
		},
		Type:             NodeType,
		Width:            nodeWidth,
		Height:           nodeHeight,
		PositionAbsolute: startPosition,
	}
}

// StartHandle is the start node's single output handle.
const StartHandle = StartID + "-output-" + StartName + "-" + startType

func inputID(nodeID, name, kind string) string {
	return nodeID + "-input-" + name + "-" + kind
}
