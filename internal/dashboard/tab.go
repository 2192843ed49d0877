package dashboard

import "strings"

// Tab is the active view of the dashboard.
type Tab string

const (
	TabData   Tab = "Data"
	TabGraphs Tab = "Graphs"
)

// RangeSliderPrompt is shown above the range-slider option on the Graphs tab.
const RangeSliderPrompt = "Turn on Range Slider"

// ParseTab maps UI values and their aliases to a Tab. Anything that is not
// the data tab selects the chart tab.
func ParseTab(s string) Tab {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "data", "data view", "table":
		return TabData
	default:
		return TabGraphs
	}
}

// TabState is the tab-switch reaction: status text plus the visibility of
// the range-slider option control.
type TabState struct {
	Tab                   Tab    `json:"tab"`
	Message               string `json:"message"`
	ShowRangeSliderOption bool   `json:"show_range_slider_option"`
	Display               string `json:"display"` // CSS display value for the option control
}

// SwitchTab computes the tab-switch reaction. It never touches data.
func (c *Controller) SwitchTab(tab Tab) TabState {
	if tab == TabData {
		return TabState{Tab: TabData, Message: "", ShowRangeSliderOption: false, Display: "none"}
	}
	return TabState{Tab: TabGraphs, Message: RangeSliderPrompt, ShowRangeSliderOption: true, Display: "block"}
}
