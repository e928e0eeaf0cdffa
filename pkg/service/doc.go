// Package service runs one association between a PHD manager and an agent.
//
// A Context owns the DIM model of the remote device (on a manager) or of
// the local device (on an agent), the pending request table and the
// association state machine. Bytes received from the transport are handed
// to ProcessAPDU; every APDU the context produces goes out through the
// Transmitter supplied at construction.
//
// # Manager
//
//	cfg := service.DefaultManagerConfig()
//	cfg.ConfigStore = persistence.NewFileStore(dir)
//	ctx, err := service.NewContext(cfg, tx)
//	ctx.OnEvent(func(ev service.Event) { ... })
//	ctx.TransportConnected()
//	for apdu := range incoming {
//		ctx.ProcessAPDU(apdu)
//	}
//
// On an AARQ the manager answers with an AARE. A known configuration
// moves straight to Operating; an unknown one waits for the agent's
// configuration report, builds the DIM tree from it and acknowledges it.
// In Operating, event reports update the DIM tree and are delivered to
// event handlers as data.List values.
//
// # Agent
//
//	cfg := service.DefaultAgentConfig()
//	cfg.Agent.MDS, _ = specialization.ThermometerMDS(systemID)
//	cfg.Agent.Config = specialization.ThermometerConfig()
//	ctx, err := service.NewContext(cfg, tx)
//	ctx.TransportConnected()
//	ctx.Associate()
//
// # Concurrency
//
// All entry points of a Context are serialised. Event handlers and request
// completion callbacks run after the context lock is released, in the
// order they were raised, so they may call back into the context.
package service
