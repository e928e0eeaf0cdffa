package service

// Transmitter sends encoded APDUs to the peer. It is implemented by the
// transport that carries the association.
type Transmitter interface {
	Send(apdu []byte) error
}

// TransmitterFunc adapts a function to Transmitter.
type TransmitterFunc func(apdu []byte) error

// Send calls f.
func (f TransmitterFunc) Send(apdu []byte) error { return f(apdu) }
