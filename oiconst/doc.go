/*
Package oiconst declares the two attribute vocabularies that oitrace translates
between: the GenAI semantic conventions written by instrumentation and the
OpenInference conventions that Arize Phoenix displays.

The key names are a wire contract with the backend.
*/
package oiconst
