package micbridge

import (
	"encoding/xml"
	"fmt"

	"github.com/leandrodaf/micbridge/sdk/contracts"
)

// PanelLocation is where the device shows the panel's button.
type PanelLocation string

const (
	// LocationControlPanel is used on Microsoft Teams rooms, which own the home screen.
	LocationControlPanel PanelLocation = "ControlPanel"
	LocationHomeScreen   PanelLocation = "HomeScreenAndCallControls"
)

const (
	activityCustom = "Custom"
	sliderOptions  = "size=3"
	muteOptions    = "size=1;icon=mic_muted"
)

type extensionsDoc struct {
	XMLName xml.Name `xml:"Extensions"`
	Panel   panelDoc `xml:"Panel"`
}

type panelDoc struct {
	Location     PanelLocation `xml:"Location"`
	Icon         string        `xml:"Icon"`
	Name         string        `xml:"Name"`
	ActivityType string        `xml:"ActivityType"`
	Order        *int          `xml:"Order,omitempty"`
	Page         pageDoc       `xml:"Page"`
}

type pageDoc struct {
	Name string   `xml:"Name"`
	Rows []rowDoc `xml:"Row"`
}

type rowDoc struct {
	Name    string      `xml:"Name"`
	Widgets []widgetDoc `xml:"Widget"`
}

type widgetDoc struct {
	WidgetID string `xml:"WidgetId"`
	Type     string `xml:"Type"`
	Options  string `xml:"Options"`
}

// PanelSpec is everything needed to render the panel document.
type PanelSpec struct {
	Panel       contracts.PanelConfig
	Microphones []int
	Location    PanelLocation
	// Order keeps the panel's position among other custom extensions.
	// Nil lets the device append it.
	Order *int
}

// BuildPanel renders the UI extension document for the panel: one page with
// a row per microphone, each holding a gain slider and a mute button.
func BuildPanel(spec PanelSpec) ([]byte, error) {
	rows := make([]rowDoc, 0, len(spec.Microphones))
	for _, mic := range spec.Microphones {
		rows = append(rows, rowDoc{
			Name: fmt.Sprintf("Mic %d", mic),
			Widgets: []widgetDoc{
				{WidgetID: GainWidget(spec.Panel.ID, mic).String(), Type: "Slider", Options: sliderOptions},
				{WidgetID: MuteWidget(spec.Panel.ID, mic).String(), Type: "Button", Options: muteOptions},
			},
		})
	}

	doc := extensionsDoc{
		Panel: panelDoc{
			Location:     spec.Location,
			Icon:         spec.Panel.Icon,
			Name:         spec.Panel.Name,
			ActivityType: activityCustom,
			Order:        spec.Order,
			Page: pageDoc{
				Name: spec.Panel.Name,
				Rows: rows,
			},
		},
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode panel: %w", err)
	}
	return out, nil
}
