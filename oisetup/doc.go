/*
Package oisetup installs a process wide TracerProvider that exports over
OTLP.

Setup and SetupPhoenix are alternatives. Use one of them, once, early in
main:

	tracerProvider, err := oisetup.SetupPhoenix(ctx, "http://localhost:6006/v1/traces", "demo")
	if err != nil {
		return err
	}
	defer tracerProvider.Shutdown(context.Background())

SetupPhoenix always installs a new TracerProvider and so silently replaces
any provider installed before it. Setup adds to an SDK TracerProvider if
one is already installed.
*/
package oisetup
