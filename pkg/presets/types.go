package presets

import "encoding/xml"

type PresetRegistry struct {
	XMLName xml.Name `xml:"layoutPresets"`
	Routes  []Route  `xml:"route"`
}

type Route struct {
	Path    string   `xml:"path,attr"`
	Layouts []Layout `xml:"layout"`
}

type Layout struct {
	ID      string   `xml:"id,attr"`
	Widgets []Widget `xml:"widget"`
}

type Widget struct {
	ID        string    `xml:"id,attr"`
	Component string    `xml:"component,attr"`
	X         int       `xml:"x,attr"`
	Y         int       `xml:"y,attr"`
	W         int       `xml:"w,attr"`
	H         int       `xml:"h,attr"`
	Settings  []Setting `xml:"setting"`
}

type Setting struct {
	Key   string `xml:"key,attr"`
	Value string `xml:"value,attr"`
}
