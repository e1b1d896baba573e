package urdf

import "encoding/xml"

type xmlRobot struct {
	XMLName xml.Name   `xml:"robot"`
	Name    string     `xml:"name,attr"`
	Links   []xmlLink  `xml:"link"`
	Joints  []xmlJoint `xml:"joint"`
}

type xmlLink struct {
	Name       string         `xml:"name,attr"`
	Collisions []xmlCollision `xml:"collision"`
}

type xmlCollision struct {
	Name     string       `xml:"name,attr"`
	Origin   *xmlOrigin   `xml:"origin"`
	Geometry *xmlGeometry `xml:"geometry"`
}

type xmlOrigin struct {
	XYZ string `xml:"xyz,attr"`
	RPY string `xml:"rpy,attr"`
}

type xmlGeometry struct {
	Mesh     *xmlMesh     `xml:"mesh"`
	Box      *xmlBox      `xml:"box"`
	Cylinder *xmlCylinder `xml:"cylinder"`
	Sphere   *xmlSphere   `xml:"sphere"`
}

type xmlMesh struct {
	Filename string `xml:"filename,attr"`
	Scale    string `xml:"scale,attr"`
}

type xmlBox struct {
	Size string `xml:"size,attr"`
}

type xmlCylinder struct {
	Radius string `xml:"radius,attr"`
	Length string `xml:"length,attr"`
}

type xmlSphere struct {
	Radius string `xml:"radius,attr"`
}

type xmlJoint struct {
	Name   string     `xml:"name,attr"`
	Type   string     `xml:"type,attr"`
	Parent xmlLinkRef `xml:"parent"`
	Child  xmlLinkRef `xml:"child"`
}

type xmlLinkRef struct {
	Link string `xml:"link,attr"`
}
