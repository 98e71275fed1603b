package models

import "encoding/xml"

// Model represents a 3MF model document (3D/3dmodel.model or a referenced
// sub-model document)
type Model struct {
	XMLName   xml.Name   `xml:"model"`
	Unit      string     `xml:"unit,attr"`
	Lang      string     `xml:"lang,attr"`
	Metadata  []Metadata `xml:"metadata"`
	Resources Resources  `xml:"resources"`
	Build     Build      `xml:"build"`
}

type Metadata struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

type Resources struct {
	Objects []Object `xml:"object"`
}

type Object struct {
	ID         string      `xml:"id,attr"`
	Name       string      `xml:"name,attr"`
	Type       string      `xml:"type,attr"`
	Mesh       *Mesh       `xml:"mesh"`
	Components *Components `xml:"components"`
}

type Mesh struct {
	Vertices  Vertices  `xml:"vertices"`
	Triangles Triangles `xml:"triangles"`
}

type Vertices struct {
	Vertex []Vertex `xml:"vertex"`
}

// Vertex coordinates stay strings at this layer; malformed numbers are
// dropped record by record instead of failing the whole document
type Vertex struct {
	X string `xml:"x,attr"`
	Y string `xml:"y,attr"`
	Z string `xml:"z,attr"`
}

type Triangles struct {
	Triangle []Triangle `xml:"triangle"`
}

type Triangle struct {
	V1 string `xml:"v1,attr"`
	V2 string `xml:"v2,attr"`
	V3 string `xml:"v3,attr"`
}

type Components struct {
	Component []Component `xml:"component"`
}

// Component references another object, possibly in a different sub-model
// document (the path attribute, used by the 3MF production extension)
type Component struct {
	ObjectID  string `xml:"objectid,attr"`
	Path      string `xml:"path,attr"`
	Transform string `xml:"transform,attr"`
}

type Build struct {
	Items []Item `xml:"item"`
}

type Item struct {
	ObjectID  string `xml:"objectid,attr"`
	Transform string `xml:"transform,attr"`
	Printable string `xml:"printable,attr"`
}

// SlicerConfig represents the vendor plate documents:
// Metadata/model_settings.config and Metadata/slice_info.config share this
// <config><plate>...</plate></config> shape.
type SlicerConfig struct {
	XMLName xml.Name      `xml:"config"`
	Plates  []ConfigPlate `xml:"plate"`
}

type ConfigPlate struct {
	Metadata  []ConfigMetadata `xml:"metadata"`
	Instances []ModelInstance  `xml:"model_instance"`
	Filaments []Filament       `xml:"filament"`
}

type ConfigMetadata struct {
	Key   string `xml:"key,attr"`
	Value string `xml:"value,attr"`
}

type ModelInstance struct {
	Metadata []ConfigMetadata `xml:"metadata"`
}

type Filament struct {
	ID    string `xml:"id,attr"`
	Type  string `xml:"type,attr"`
	Color string `xml:"color,attr"`
	UsedM string `xml:"used_m,attr"`
	UsedG string `xml:"used_g,attr"`
}
