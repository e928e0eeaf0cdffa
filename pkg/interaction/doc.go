// Package interaction implements the service/request layer: it allocates
// invoke-ids, tracks outstanding confirmed requests and correlates each
// response with the request that caused it.
//
// # Usage
//
//	table := interaction.NewTable(interaction.Config{
//	    OnTimeout: func(req *interaction.Request) { ... },
//	})
//
//	id, err := table.Add(&interaction.Request{
//	    Choice:  wire.RoivGet,
//	    Handle:  0,
//	    Timeout: 3 * time.Second,
//	})
//
//	// later, when a response with invoke-id id arrives
//	if table.Known(id) {
//	    req, _ := table.Retire(id)
//	    ...
//	}
//
// A request leaves the table exactly once: either it is retired by its
// response or its timeout fires. Whichever happens first wins and the other
// becomes a no-op.
package interaction
