// Package core defines the shared data model and collaborator contracts of
// the linebrain boundary layer: outgoing message variants, inbound platform
// events, reasoning-engine lifecycle notifications and the interfaces the
// surrounding packages (gateway, dispatch, render) depend on.
//
// The package deliberately contains no behavior beyond small accessors. Sum
// types use unexported marker methods so each set of variants stays closed
// and exhaustively switchable at the rendering and dispatch boundaries.
package core
