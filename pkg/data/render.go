package data

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/fxamacker/cbor/v2"
)

// view is the serialised form of an Entry shared by the JSON, XML and
// CBOR renderers.
type view struct {
	XMLName  xml.Name        `cbor:"-" json:"-" xml:"entry"`
	Meta     []MetaAttribute `cbor:"1,keyasint,omitempty" json:"meta,omitempty" xml:"meta-data>meta,omitempty"`
	Simple   *simpleView     `cbor:"2,keyasint,omitempty" json:"simple,omitempty" xml:"simple,omitempty"`
	Compound *compoundView   `cbor:"3,keyasint,omitempty" json:"compound,omitempty" xml:"compound,omitempty"`
}

type simpleView struct {
	Name  string `cbor:"1,keyasint" json:"name" xml:"name"`
	Type  string `cbor:"2,keyasint" json:"type" xml:"type"`
	Value string `cbor:"3,keyasint" json:"value" xml:"value"`
}

type compoundView struct {
	Name    string  `cbor:"1,keyasint" json:"name" xml:"name"`
	Entries []*view `cbor:"2,keyasint" json:"entries" xml:"entries>entry"`
}

func toView(e *Entry) *view {
	v := &view{Meta: e.Meta}
	switch e.Kind {
	case KindSimple:
		v.Simple = &simpleView{Name: e.Name, Type: e.Type, Value: e.Value}
	case KindCompound:
		c := &compoundView{Name: e.Name, Entries: make([]*view, 0, len(e.Children))}
		for _, child := range e.Children {
			c.Entries = append(c.Entries, toView(child))
		}
		v.Compound = c
	}
	return v
}

func fromView(v *view) *Entry {
	e := &Entry{Meta: v.Meta}
	switch {
	case v.Simple != nil:
		e.Kind = KindSimple
		e.Name, e.Type, e.Value = v.Simple.Name, v.Simple.Type, v.Simple.Value
	case v.Compound != nil:
		e.Kind = KindCompound
		e.Name = v.Compound.Name
		for _, c := range v.Compound.Entries {
			e.Children = append(e.Children, fromView(c))
		}
	}
	return e
}

func (l List) views() []*view {
	out := make([]*view, 0, len(l))
	for _, e := range l {
		out = append(out, toView(e))
	}
	return out
}

// EncodeJSON renders l as a JSON array of entries.
func EncodeJSON(l List) ([]byte, error) {
	return json.Marshal(l.views())
}

type xmlList struct {
	XMLName xml.Name `xml:"data-list"`
	Entries []*view
}

// EncodeXML renders l as a <data-list> document. Every entry is wrapped
// in <entry> with its <meta-data> first.
func EncodeXML(l List) ([]byte, error) {
	b, err := xml.MarshalIndent(xmlList{Entries: l.views()}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), b...), nil
}

var cborEnc cbor.EncMode

func init() {
	var err error
	cborEnc, err = cbor.EncOptions{
		Sort:        cbor.SortCanonical,
		IndefLength: cbor.IndefLengthForbidden,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR encoder mode: %v", err))
	}
}

// EncodeCBOR renders l as a CBOR array with integer keys.
func EncodeCBOR(l List) ([]byte, error) {
	return cborEnc.Marshal(l.views())
}

// DecodeCBOR parses the output of EncodeCBOR.
func DecodeCBOR(b []byte) (List, error) {
	var vs []*view
	if err := cbor.Unmarshal(b, &vs); err != nil {
		return nil, err
	}
	l := make(List, 0, len(vs))
	for _, v := range vs {
		l = append(l, fromView(v))
	}
	return l, nil
}

// EncodeText renders l as an indented tree, one entry per line.
func EncodeText(l List) string {
	var sb strings.Builder
	for _, e := range l {
		writeText(&sb, e, 0)
	}
	return sb.String()
}

// WriteText writes the text rendering of l to w.
func WriteText(w io.Writer, l List) error {
	_, err := io.WriteString(w, EncodeText(l))
	return err
}

func writeText(sb *strings.Builder, e *Entry, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(e.Name)
	if e.Kind == KindSimple {
		fmt.Fprintf(sb, " (%s) = %s", e.Type, e.Value)
	}
	if len(e.Meta) > 0 {
		sb.WriteString(" [")
		for i, m := range e.Meta {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(m.Name)
			sb.WriteByte('=')
			sb.WriteString(m.Value)
		}
		sb.WriteByte(']')
	}
	sb.WriteByte('\n')
	for _, c := range e.Children {
		writeText(sb, c, depth+1)
	}
}
