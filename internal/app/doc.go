// Package app wires the toolkit together: it builds the application logger,
// loads the configuration model, populates the registry from the compiled-in
// bean modules, checks configured contracts against the compiled-in ones,
// and runs the requested action (serve, query, invoke, register,
// unregister).
package app
