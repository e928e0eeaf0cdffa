package service

import "github.com/phd-protocol/phd-go/pkg/data"

func (c *Context) on(t EventType, fn func(Event)) {
	c.OnEvent(func(ev Event) {
		if ev.Type == t {
			fn(ev)
		}
	})
}

// OnAssociated registers fn for accepted associations.
func (c *Context) OnAssociated(fn func()) {
	c.on(EventAssociated, func(Event) { fn() })
}

// OnConfigured registers fn for the move to Operating.
func (c *Context) OnConfigured(fn func()) {
	c.on(EventConfigured, func(Event) { fn() })
}

// OnMeasurement registers fn for every decoded event report. handle is
// the reporting object.
func (c *Context) OnMeasurement(fn func(handle uint16, l data.List)) {
	c.on(EventMeasurement, func(ev Event) { fn(ev.Handle, ev.Data) })
}

// OnSegmentData registers fn for decoded PM-segment data.
func (c *Context) OnSegmentData(fn func(store uint16, l data.List)) {
	c.on(EventSegmentData, func(ev Event) { fn(ev.Handle, ev.Data) })
}

// OnDisassociated registers fn for the end of an association. reason is
// the abort reason, or "released" for an orderly release.
func (c *Context) OnDisassociated(fn func(reason string)) {
	c.on(EventDisassociated, func(ev Event) { fn(ev.Reason) })
}
